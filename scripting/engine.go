// Package scripting lets operators supply heading classification as a small
// JavaScript program instead of recompiling the renderer.
//
// A script must define a function isHeading(line) returning a boolean. The
// built-in rule is available to scripts as defaultIsHeading(line).
package scripting

import (
	"errors"
	"time"
)

// DefaultBudget bounds a single isHeading call.
const DefaultBudget = 50 * time.Millisecond

// entryPoint is the function every heading script must define.
const entryPoint = "isHeading"

var (
	ErrNoEntryPoint = errors.New("scripting: script does not define isHeading")
	ErrBudget       = errors.New("scripting: time budget exceeded")
)
