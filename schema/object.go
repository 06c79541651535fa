package schema

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Object is a named, ordered collection of fields.
type Object struct {
	Name   string
	Fields []*Field
	// Persistent objects carry a stable identity.
	Persistent bool
	// Kinds resolves field kinds. DefaultKinds is used when nil.
	Kinds *KindRegistry
}

func (o *Object) KindRegistry() *KindRegistry {
	if o.Kinds != nil {
		return o.Kinds
	}
	return DefaultKinds()
}

// Validate reports the first problem found in the definition. Field
// failures are returned as *FieldError.
func (o *Object) Validate() error {
	if !isIdentifier(o.Name) {
		return fmt.Errorf("%w: object %q", ErrInvalidName, o.Name)
	}
	kinds := o.KindRegistry()
	seen := make(map[string]struct{}, len(o.Fields))
	for _, f := range o.Fields {
		if f == nil {
			return &FieldError{Object: o.Name, Err: ErrInvalidName}
		}
		if _, dup := seen[f.Name]; dup {
			return &FieldError{Object: o.Name, Field: f.Name, Err: ErrDuplicateField}
		}
		seen[f.Name] = struct{}{}
		if err := f.Validate(kinds); err != nil {
			return &FieldError{Object: o.Name, Field: f.Name, Err: err}
		}
	}
	return nil
}

// References returns the distinct names of the objects referenced by
// this one, in ascending order.
func (o *Object) References() []string {
	kinds := o.KindRegistry()
	var refs []string
	for _, f := range o.Fields {
		refs = f.references(kinds, refs)
	}
	refs = lo.Uniq(lo.Compact(refs))
	slices.Sort(refs)
	return refs
}

// DynamicSizeCount is the number of variable length fields.
func (o *Object) DynamicSizeCount() int {
	kinds := o.KindRegistry()
	return lo.CountBy(o.Fields, func(f *Field) bool {
		if f == nil {
			return false
		}
		k, err := kinds.Lookup(f.Kind)
		return err == nil && k.Variable
	})
}
