// Package raw is the PDF object model: the handful of object kinds a notice
// document needs, an arena that assigns identities by position, and their
// textual serialization.
package raw

import "fmt"

// ObjectRef uniquely identifies an indirect PDF object.
type ObjectRef struct {
	Num int
	Gen int
}

func (r ObjectRef) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Object is the base interface for all raw PDF objects.
type Object interface {
	Type() string
}

// Arena stores indirect objects in identity order. The identity of an object
// is its position plus one, so identities are contiguous from 1.
type Arena struct {
	objects []Object
}

// Add appends obj and returns the reference it was assigned.
func (a *Arena) Add(obj Object) ObjectRef {
	a.objects = append(a.objects, obj)
	return ObjectRef{Num: len(a.objects)}
}

// Get returns the object with identity num.
func (a *Arena) Get(num int) (Object, bool) {
	if num < 1 || num > len(a.objects) {
		return nil, false
	}
	return a.objects[num-1], true
}

// Len is the number of objects, which is also the highest identity.
func (a *Arena) Len() int { return len(a.objects) }

// Each visits objects in ascending identity order.
func (a *Arena) Each(fn func(ref ObjectRef, obj Object)) {
	for i, o := range a.objects {
		fn(ObjectRef{Num: i + 1}, o)
	}
}
