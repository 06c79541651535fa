package schema

import (
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"
)

// Context is what a kind needs from the emitter while rendering text.
type Context interface {
	// Tab returns the indentation for the given nesting level.
	Tab(level int) string
	// MemberName returns the private storage name of a field.
	MemberName(f *Field) string
}

// TypeFunc returns the declared type of a field of a kind.
type TypeFunc func(kinds *KindRegistry, f *Field) (string, error)

// AccessorsFunc renders the public accessor declarations for a field.
// Every line is indented by ctx.Tab(1) and terminated by a newline.
type AccessorsFunc func(ctx Context, obj *Object, f *Field, name string) (string, error)

// StorageFunc renders the private storage declaration for a field,
// without indentation or a trailing newline.
type StorageFunc func(ctx Context, obj *Object, f *Field, member string) (string, error)

// Kind is one variant of the field kind union.
type Kind struct {
	Name string
	// Variable kinds contribute one dynamic size each.
	Variable bool
	// Collection kinds require an Element.
	Collection bool
	// Reference kinds require a Ref target.
	Reference bool

	Type      TypeFunc
	Accessors AccessorsFunc
	Storage   StorageFunc
}

func (k *Kind) validate() error {
	if k == nil || !isIdentifier(k.Name) {
		return ErrInvalidName
	}
	if k.Type == nil || k.Accessors == nil || k.Storage == nil {
		return fmt.Errorf("%w: kind=%s", ErrIncompleteKind, k.Name)
	}
	return nil
}

// KindRegistry maps kind names to their handlers. It is safe for
// concurrent use.
type KindRegistry struct {
	kinds *xsync.Map[string, *Kind]
}

func NewKindRegistry() *KindRegistry {
	return &KindRegistry{kinds: xsync.NewMap[string, *Kind]()}
}

// Register adds a kind. Names are unique within a registry.
func (r *KindRegistry) Register(k *Kind) error {
	if err := k.validate(); err != nil {
		return err
	}
	if _, loaded := r.kinds.LoadOrStore(k.Name, k); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, k.Name)
	}
	return nil
}

func (r *KindRegistry) Lookup(name string) (*Kind, error) {
	k, ok := r.kinds.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Names returns the registered kind names in ascending order.
func (r *KindRegistry) Names() []string {
	names := make([]string, 0, r.kinds.Size())
	r.kinds.Range(func(name string, _ *Kind) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// TypeOf resolves the declared type of f.
func (r *KindRegistry) TypeOf(f *Field) (string, error) {
	if f == nil {
		return "", ErrMissingElement
	}
	k, err := r.Lookup(f.Kind)
	if err != nil {
		return "", err
	}
	return k.Type(r, f)
}

var defaultKinds *KindRegistry

// The built-in kinds reach DefaultKinds through their accessors, so the
// registry is filled in init rather than by a package-level initializer.
func init() {
	defaultKinds = NewKindRegistry()
	for _, k := range builtinKinds() {
		if err := defaultKinds.Register(k); err != nil {
			panic(err)
		}
	}
}

// DefaultKinds returns the shared registry holding the built-in kinds.
// Kinds registered on it are visible to every object that does not
// carry its own registry.
func DefaultKinds() *KindRegistry { return defaultKinds }
