package schema

import (
	"errors"
	"fmt"
)

// Severity classifies a lint problem
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Problem is a single finding reported by Lint
type Problem struct {
	Severity Severity
	Element  string
	Message  string
}

// String formats the problem as "severity: element: message"
func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Element, p.Message)
}

// HasErrors reports whether any problem is an error
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Lint checks a schema for broken references and questionable definitions.
// Unlike the other operations it does not stop at the first problem; every
// problem found is returned, in declaration order.
func Lint(s *Schema) []Problem {
	s = s.Clone()
	s.normalize()

	var problems []Problem
	report := func(sev Severity, element, format string, args ...any) {
		problems = append(problems, Problem{Severity: sev, Element: element, Message: fmt.Sprintf(format, args...)})
	}

	resolves := func(name string) bool {
		return s.Classes.Has(name) || s.Types.Has(name) || s.Enums.Has(name) || IsBuiltinType(name)
	}

	for name := range s.Classes.All() {
		var kinds []string
		if s.Types.Has(name) {
			kinds = append(kinds, KindType.String())
		}
		if s.Enums.Has(name) {
			kinds = append(kinds, KindEnum.String())
		}
		for _, k := range kinds {
			report(SeverityError, name, "name is defined as both class and %s", k)
		}
	}
	for name := range s.Types.All() {
		if s.Enums.Has(name) {
			report(SeverityError, name, "name is defined as both type and enum")
		}
	}

	if s.Classes.Has(SentinelTypeName) || s.Slots.Has(SentinelTypeName) || s.Enums.Has(SentinelTypeName) {
		report(SeverityError, SentinelTypeName, "name is reserved for the profiler placeholder type")
	} else if t, ok := s.Types.Get(SentinelTypeName); ok && !IsSentinelType(t) {
		report(SeverityError, SentinelTypeName, "type differs from the profiler placeholder type")
	}

	for name, t := range s.Types.All() {
		if t.TypeOf != "" && !s.Types.Has(t.TypeOf) && !IsBuiltinType(t.TypeOf) {
			report(SeverityError, name, "typeof %q does not resolve", t.TypeOf)
		}
	}

	checkSlot := func(element string, slot *Slot) {
		if slot.Range != "" && !resolves(slot.Range) {
			report(SeverityError, element, "range %q does not resolve", slot.Range)
		}
		if slot.Identifier && !slot.Required {
			report(SeverityWarning, element, "identifier slot is not marked required")
		}
		if slot.Identifier && slot.Multivalued {
			report(SeverityError, element, "identifier slot cannot be multivalued")
		}
		if slot.Range != "" && !s.Classes.Has(slot.Range) && (slot.Inlined != nil || slot.InlinedAsList != nil) {
			report(SeverityWarning, element, "inlining has no effect on non-class range %q", slot.Range)
		}
	}

	if s.DefaultRange != "" && !resolves(s.DefaultRange) {
		report(SeverityError, "default_range", "range %q does not resolve", s.DefaultRange)
	}

	for name, slot := range s.Slots.All() {
		checkSlot(name, slot)
	}

	for name, c := range s.Classes.All() {
		if c.IsA != "" && !s.Classes.Has(c.IsA) {
			report(SeverityError, name, "is_a %q does not resolve", c.IsA)
		}
		for _, slotName := range c.Slots {
			if !s.Slots.Has(slotName) {
				report(SeverityError, name, "slot %q is not defined", slotName)
			}
		}
		identifiers := 0
		for attrName, attr := range c.Attributes.All() {
			checkSlot(name+"."+attrName, attr)
			if attr.Identifier {
				identifiers++
			}
		}
		for _, slotName := range c.Slots {
			if slot, ok := s.Slots.Get(slotName); ok && slot.Identifier {
				identifiers++
			}
		}
		if identifiers > 1 {
			report(SeverityError, name, "declares %d identifier slots", identifiers)
		}
	}

	if _, err := NewView(s); err != nil && !isCollision(err) {
		report(SeverityError, s.Name, "%v", err)
	}
	return problems
}

func isCollision(err error) bool {
	return errors.Is(err, ErrNameCollision)
}
