package schema

import (
	"fmt"
	"strings"
)

// Built-in kind names.
const (
	KindBool   = "bool"
	KindS8     = "s8"
	KindS16    = "s16"
	KindS32    = "s32"
	KindS64    = "s64"
	KindU8     = "u8"
	KindU16    = "u16"
	KindU32    = "u32"
	KindU64    = "u64"
	KindFloat  = "float"
	KindDouble = "double"
	KindString = "string"
	KindList   = "list"
	KindArray  = "array"
	KindRef    = "ref"
)

const (
	// StringType is the declared type of string fields.
	StringType = "libcomp::String"
	// Namespace holds every generated class.
	Namespace = "objects"
)

func builtinKinds() []*Kind {
	kinds := []*Kind{
		scalarKind(KindBool, "bool"),
		scalarKind(KindS8, "int8_t"),
		scalarKind(KindS16, "int16_t"),
		scalarKind(KindS32, "int32_t"),
		scalarKind(KindS64, "int64_t"),
		scalarKind(KindU8, "uint8_t"),
		scalarKind(KindU16, "uint16_t"),
		scalarKind(KindU32, "uint32_t"),
		scalarKind(KindU64, "uint64_t"),
		scalarKind(KindFloat, "float"),
		scalarKind(KindDouble, "double"),
	}
	return append(kinds,
		&Kind{
			Name:      KindString,
			Variable:  true,
			Type:      fixedType(StringType),
			Accessors: valueAccessors,
			Storage:   declareStorage,
		},
		&Kind{
			Name:       KindList,
			Variable:   true,
			Collection: true,
			Type:       listType,
			Accessors:  listAccessors,
			Storage:    declareStorage,
		},
		&Kind{
			Name:       KindArray,
			Collection: true,
			Type:       arrayType,
			Accessors:  arrayAccessors,
			Storage:    declareStorage,
		},
		&Kind{
			Name:      KindRef,
			Reference: true,
			Type:      refType,
			Accessors: valueAccessors,
			Storage:   declareStorage,
		},
	)
}

func scalarKind(name, typ string) *Kind {
	return &Kind{
		Name:      name,
		Type:      fixedType(typ),
		Accessors: valueAccessors,
		Storage:   declareStorage,
	}
}

func fixedType(typ string) TypeFunc {
	return func(*KindRegistry, *Field) (string, error) { return typ, nil }
}

func listType(kinds *KindRegistry, f *Field) (string, error) {
	elem, err := kinds.TypeOf(f.Element)
	if err != nil {
		return "", err
	}
	return "std::list<" + elem + ">", nil
}

func arrayType(kinds *KindRegistry, f *Field) (string, error) {
	elem, err := kinds.TypeOf(f.Element)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("std::array<%s, %d>", elem, f.Length), nil
}

func refType(_ *KindRegistry, f *Field) (string, error) {
	if f.Ref == "" {
		return "", ErrMissingReference
	}
	return "std::shared_ptr<" + Namespace + "::" + f.Ref + ">", nil
}

// paramType returns how a value of f is passed into a setter. Scalars go
// by value, everything else by const reference.
func paramType(kinds *KindRegistry, f *Field) (string, error) {
	typ, err := kinds.TypeOf(f)
	if err != nil {
		return "", err
	}
	k, err := kinds.Lookup(f.Kind)
	if err != nil {
		return "", err
	}
	if k.Variable || k.Collection || k.Reference {
		return "const " + typ + "&", nil
	}
	return typ, nil
}

func lines(ctx Context, decls ...string) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(ctx.Tab(1))
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func valueAccessors(ctx Context, obj *Object, f *Field, name string) (string, error) {
	kinds := obj.KindRegistry()
	typ, err := kinds.TypeOf(f)
	if err != nil {
		return "", err
	}
	param, err := paramType(kinds, f)
	if err != nil {
		return "", err
	}
	return lines(ctx,
		fmt.Sprintf("%s Get%s() const;", typ, name),
		fmt.Sprintf("bool Set%s(%s val);", name, param),
	), nil
}

func listAccessors(ctx Context, obj *Object, f *Field, name string) (string, error) {
	kinds := obj.KindRegistry()
	typ, err := kinds.TypeOf(f)
	if err != nil {
		return "", err
	}
	elem, err := paramType(kinds, f.Element)
	if err != nil {
		return "", err
	}
	return lines(ctx,
		fmt.Sprintf("%s Get%s() const;", typ, name),
		fmt.Sprintf("size_t %sCount() const;", name),
		fmt.Sprintf("bool Append%s(%s val);", name, elem),
		fmt.Sprintf("bool Clear%s();", name),
		fmt.Sprintf("bool Set%s(const %s& val);", name, typ),
	), nil
}

func arrayAccessors(ctx Context, obj *Object, f *Field, name string) (string, error) {
	kinds := obj.KindRegistry()
	typ, err := kinds.TypeOf(f)
	if err != nil {
		return "", err
	}
	elemType, err := kinds.TypeOf(f.Element)
	if err != nil {
		return "", err
	}
	elem, err := paramType(kinds, f.Element)
	if err != nil {
		return "", err
	}
	return lines(ctx,
		fmt.Sprintf("%s Get%s() const;", typ, name),
		fmt.Sprintf("%s Get%s(size_t index) const;", elemType, name),
		fmt.Sprintf("bool Set%s(size_t index, %s val);", name, elem),
		fmt.Sprintf("bool Set%s(const %s& val);", name, typ),
	), nil
}

func declareStorage(_ Context, obj *Object, f *Field, member string) (string, error) {
	typ, err := obj.KindRegistry().TypeOf(f)
	if err != nil {
		return "", err
	}
	return typ + " " + member + ";", nil
}
