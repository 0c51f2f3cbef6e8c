// Package defect reports structural defects: internal invariant violations
// that abort document generation. A defect is never recovered from; the
// caller gets an error and no output bytes.
package defect

import (
	"errors"
	"fmt"
)

// ErrStructural matches every defect with errors.Is.
var ErrStructural = errors.New("structural defect")

// Location pins a defect to the stage that detected it.
type Location struct {
	Component  string
	ObjectNum  int
	ByteOffset int64
}

func (l Location) String() string {
	s := l.Component
	if l.ObjectNum > 0 {
		s += fmt.Sprintf(" obj %d", l.ObjectNum)
	}
	if l.ByteOffset > 0 {
		s += fmt.Sprintf(" @%d", l.ByteOffset)
	}
	return s
}

// Error is a structural defect found at Location.
type Error struct {
	Location Location
	Detail   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStructural, e.Location, e.Detail)
}

func (e *Error) Unwrap() error { return ErrStructural }

// New builds a defect for component.
func New(component, format string, args ...any) *Error {
	return &Error{Location: Location{Component: component}, Detail: fmt.Sprintf(format, args...)}
}

// AtObject builds a defect tied to an object identity and byte offset.
func AtObject(component string, num int, offset int64, format string, args ...any) *Error {
	return &Error{
		Location: Location{Component: component, ObjectNum: num, ByteOffset: offset},
		Detail:   fmt.Sprintf(format, args...),
	}
}

// Is reports whether err carries a structural defect.
func Is(err error) bool { return errors.Is(err, ErrStructural) }
