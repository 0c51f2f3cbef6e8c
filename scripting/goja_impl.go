package scripting

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"golang.org/x/crypto/blake2b"

	"github.com/wudi/noticepdf/layout"
	"github.com/wudi/noticepdf/observability"
)

// HeadingRule is a compiled heading script. It implements layout.HeadingRule
// and is safe for concurrent use: every call runs in a fresh runtime.
type HeadingRule struct {
	prog   *goja.Program
	digest string
	budget time.Duration
	log    observability.Logger
}

// Option configures a HeadingRule.
type Option func(*HeadingRule)

// WithBudget sets the per-call time budget.
func WithBudget(d time.Duration) Option {
	return func(h *HeadingRule) {
		if d > 0 {
			h.budget = d
		}
	}
}

// WithLogger reports script failures to l.
func WithLogger(l observability.Logger) Option {
	return func(h *HeadingRule) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHeadingRule compiles src and checks that it defines isHeading.
func NewHeadingRule(src string, opts ...Option) (*HeadingRule, error) {
	prog, err := goja.Compile("heading.js", src, true)
	if err != nil {
		return nil, fmt.Errorf("scripting: compile: %w", err)
	}
	sum := blake2b.Sum256([]byte(src))
	h := &HeadingRule{
		prog:   prog,
		digest: "script:" + hex.EncodeToString(sum[:8]),
		budget: DefaultBudget,
		log:    observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.budget)
	defer cancel()
	if _, _, err := h.load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Fingerprint identifies the script source.
func (h *HeadingRule) Fingerprint() string { return h.digest }

// IsHeading runs the script for line. A script error or an exhausted budget
// classifies the line as body text.
func (h *HeadingRule) IsHeading(line string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), h.budget)
	defer cancel()
	ok, err := h.Evaluate(ctx, line)
	if err != nil {
		h.log.Warn("heading script failed", observability.String("line", line), observability.Error("error", err))
		return false
	}
	return ok
}

// Evaluate runs isHeading(line) until it returns or ctx is done.
func (h *HeadingRule) Evaluate(ctx context.Context, line string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	vm, fn, err := h.load(ctx)
	if err != nil {
		return false, err
	}
	var out bool
	err = interruptible(ctx, vm, func() error {
		v, err := fn(goja.Undefined(), vm.ToValue(line))
		if err != nil {
			return err
		}
		out = v.ToBoolean()
		return nil
	})
	return out, err
}

// load runs the program in a new runtime and returns its entry point.
func (h *HeadingRule) load(ctx context.Context) (*goja.Runtime, goja.Callable, error) {
	vm := goja.New()
	if err := vm.Set("defaultIsHeading", layout.IsSectionHeading); err != nil {
		return nil, nil, err
	}
	err := interruptible(ctx, vm, func() error {
		_, err := vm.RunProgram(h.prog)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	fn, ok := goja.AssertFunction(vm.Get(entryPoint))
	if !ok {
		return nil, nil, ErrNoEntryPoint
	}
	return vm, fn, nil
}

func interruptible(ctx context.Context, vm *goja.Runtime, run func() error) error {
	done := make(chan struct{})
	defer close(done)
	defer vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	err := run()
	if err == nil {
		return nil
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		cause := interrupted.Unwrap()
		switch {
		case cause == nil:
			return context.Canceled
		case errors.Is(cause, context.DeadlineExceeded):
			return fmt.Errorf("%w: %w", ErrBudget, cause)
		default:
			return cause
		}
	}
	return fmt.Errorf("scripting: %w", err)
}

var _ layout.HeadingRule = (*HeadingRule)(nil)
