package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes callers branch on.
var (
	// ErrNotFound indicates a named element does not exist where one was required.
	ErrNotFound = errors.New("schema: element not found")
	// ErrInvalidReference indicates a reference that does not resolve to any element.
	ErrInvalidReference = errors.New("schema: invalid reference")
	// ErrRecursion indicates a cyclic inlined reference chain.
	ErrRecursion = errors.New("schema: recursive inlined reference")
	// ErrNameCollision indicates the same name defined in more than one namespace.
	ErrNameCollision = errors.New("schema: name collision")
	// ErrInheritanceCycle indicates an is_a chain that loops.
	ErrInheritanceCycle = errors.New("schema: inheritance cycle")
	// ErrSentinelCollision indicates a schema element using a reserved name.
	ErrSentinelCollision = errors.New("schema: reserved name redefined")
	// ErrPrefixConflict indicates a prefix bound to two different namespaces.
	ErrPrefixConflict = errors.New("schema: conflicting prefix")
	// ErrRenameCollision indicates two attributes renamed to the same name.
	ErrRenameCollision = errors.New("schema: attribute rename collision")
)

// NotFoundError reports a missing element
type NotFoundError struct {
	Kind ElementKind
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in schema", e.Kind, e.Name)
}

// Is reports whether the target matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Reference kinds used by InvalidReferenceError
const (
	RefRange  = "range"
	RefIsA    = "is_a"
	RefSlot   = "slots"
	RefTypeOf = "typeof"
)

// InvalidReferenceError reports an element referring to a name that does
// not resolve.
type InvalidReferenceError struct {
	Element   string // element holding the reference
	Attribute string // attribute or slot name, if the reference sits on one
	Ref       string // kind of reference (range, is_a, slots, typeof)
	Target    string // the unresolved name
}

// Error implements the error interface.
func (e *InvalidReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("invalid reference")
	if e.Element != "" {
		b.WriteString(" in ")
		b.WriteString(e.Element)
		if e.Attribute != "" {
			b.WriteString(".")
			b.WriteString(e.Attribute)
		}
	}
	fmt.Fprintf(&b, ": %s %q does not resolve", e.Ref, e.Target)
	return b.String()
}

// Is reports whether the target matches ErrInvalidReference.
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// RecursionError reports an inlined reference back onto the current path
type RecursionError struct {
	Path  []string // classes being generated, outermost first
	Class string   // range that closes the loop
	Slot  string
}

// Error implements the error interface.
func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursive inlined reference via %q: %s -> %s",
		e.Slot, strings.Join(e.Path, " -> "), e.Class)
}

// Is reports whether the target matches ErrRecursion.
func (e *RecursionError) Is(target error) bool {
	return target == ErrRecursion
}

// CollisionError reports a name defined in more than one namespace
type CollisionError struct {
	Name  string
	Kinds []ElementKind
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	kinds := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("name %q is defined as %s", e.Name, strings.Join(kinds, " and "))
}

// Is reports whether the target matches ErrNameCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}
