package scripting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wudi/noticepdf/layout"
)

func TestHeadingRuleScript(t *testing.T) {
	rule, err := NewHeadingRule(`
function isHeading(line) {
  return line.indexOf("SCHEDULE") === 0 || defaultIsHeading(line);
}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := map[string]bool{
		"SCHEDULE A":         true,
		"1. FACTS":           true,
		"SUBJECT: Notice":    true,
		"plain body text":    false,
		"schedule lowercase": false,
	}
	for line, want := range cases {
		if got := rule.IsHeading(line); got != want {
			t.Errorf("IsHeading(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestHeadingRuleDrivesNormalize(t *testing.T) {
	rule, err := NewHeadingRule(`function isHeading(line) { return line.endsWith(":"); }`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	lines := layout.Normalize("Particulars:\nAmount due", rule)
	if len(lines) != 2 || !lines[0].Heading || lines[1].Heading {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestHeadingRuleRejectsBadScripts(t *testing.T) {
	if _, err := NewHeadingRule(`function isHeading(line {`); err == nil {
		t.Fatal("expected syntax error")
	}
	if _, err := NewHeadingRule(`var x = 1;`); !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("expected ErrNoEntryPoint, got %v", err)
	}
}

func TestHeadingRuleBudget(t *testing.T) {
	rule, err := NewHeadingRule(`function isHeading(line) { while (true) {} }`, WithBudget(25*time.Millisecond))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if rule.IsHeading("1. FACTS") {
		t.Fatal("a script that runs out of time must classify as body text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	if _, err := rule.Evaluate(ctx, "1. FACTS"); !errors.Is(err, ErrBudget) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected budget error, got %v", err)
	}
}

func TestHeadingRuleCancelled(t *testing.T) {
	rule, err := NewHeadingRule(`function isHeading(line) { return true; }`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rule.Evaluate(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestHeadingRuleFingerprint(t *testing.T) {
	const src = `function isHeading(line) { return defaultIsHeading(line); }`
	a, err := NewHeadingRule(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := NewHeadingRule(src, WithBudget(time.Second))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	c, err := NewHeadingRule(`function isHeading(line) { return false; }`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("same source gave %q and %q", a.Fingerprint(), b.Fingerprint())
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different sources share fingerprint %q", a.Fingerprint())
	}
}
