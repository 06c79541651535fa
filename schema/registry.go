package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Registry holds a set of object definitions keyed by name. It is safe
// for concurrent use.
type Registry struct {
	objects *xsync.Map[string, *Object]
}

func NewRegistry() *Registry {
	return &Registry{objects: xsync.NewMap[string, *Object]()}
}

// Add validates obj and stores it. Names are unique within a registry.
func (r *Registry) Add(obj *Object) error {
	if obj == nil {
		return ErrInvalidName
	}
	if err := obj.Validate(); err != nil {
		return err
	}
	if _, loaded := r.objects.LoadOrStore(obj.Name, obj); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.Name)
	}
	return nil
}

func (r *Registry) Get(name string) (*Object, bool) {
	return r.objects.Load(name)
}

func (r *Registry) Len() int { return r.objects.Size() }

// Objects returns the definitions ordered by name.
func (r *Registry) Objects() []*Object {
	objs := make([]*Object, 0, r.objects.Size())
	r.objects.Range(func(_ string, obj *Object) bool {
		objs = append(objs, obj)
		return true
	})
	slices.SortFunc(objs, func(a, b *Object) int { return strings.Compare(a.Name, b.Name) })
	return objs
}

// Resolve checks that every reference names a registered object. All
// unresolved references are reported together.
func (r *Registry) Resolve() error {
	var errs []error
	for _, obj := range r.Objects() {
		if err := r.ResolveObject(obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResolveObject checks the references of a single object, registered or
// not, against the registry.
func (r *Registry) ResolveObject(obj *Object) error {
	if obj == nil {
		return nil
	}
	var errs []error
	for _, ref := range obj.References() {
		if _, ok := r.objects.Load(ref); !ok {
			errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrUnresolvedReference, obj.Name, ref))
		}
	}
	return errors.Join(errs...)
}
