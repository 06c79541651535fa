package schema

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Field is one member of an object definition.
type Field struct {
	Name string
	Kind string
	// Element describes the item of a list or array field. Its Name is
	// ignored.
	Element *Field
	// Length is the fixed size of an array field.
	Length int
	// Ref names the target object of a reference field.
	Ref string
	// Mandatory fields must be present when loading from XML.
	Mandatory bool
}

// AccessorName is the field name with its first letter upper-cased.
func (f *Field) AccessorName() string { return capitalize(f.Name) }

// Validate checks the field against the kinds it is resolved with.
func (f *Field) Validate(kinds *KindRegistry) error {
	if !isIdentifier(f.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, f.Name)
	}
	return f.validateKind(kinds)
}

func (f *Field) validateKind(kinds *KindRegistry) error {
	k, err := kinds.Lookup(f.Kind)
	if err != nil {
		return err
	}
	if k.Reference && !isIdentifier(f.Ref) {
		return fmt.Errorf("%w: %q", ErrMissingReference, f.Ref)
	}
	if !k.Collection {
		return nil
	}
	if f.Element == nil {
		return ErrMissingElement
	}
	if f.Kind == KindArray && f.Length <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, f.Length)
	}
	return f.Element.validateKind(kinds)
}

// references appends every reference target reachable from f.
func (f *Field) references(kinds *KindRegistry, refs []string) []string {
	for cur := f; cur != nil; cur = cur.Element {
		if k, err := kinds.Lookup(cur.Kind); err == nil && k.Reference {
			refs = append(refs, cur.Ref)
		}
	}
	return refs
}

// MemberName is the private storage name for a field name.
func MemberName(name string) string { return "m" + capitalize(name) }

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
