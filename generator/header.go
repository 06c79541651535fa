package generator

import (
	"fmt"
	"strings"

	"github.com/oy3o/objgen/schema"
	"go.uber.org/zap"
)

// HeaderGenerator emits a C++ header declaring one class per schema
// object. It holds no mutable state and is safe for concurrent use.
type HeaderGenerator struct {
	cfg Config
	log *zap.Logger
}

var (
	_ Generator      = (*HeaderGenerator)(nil)
	_ schema.Context = (*HeaderGenerator)(nil)
)

func NewHeaderGenerator(cfg Config, opts ...Option) (*HeaderGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &HeaderGenerator{cfg: cfg, log: o.log}, nil
}

func (g *HeaderGenerator) Language() string      { return "c++" }
func (g *HeaderGenerator) FileExtension() string { return ".h" }

func (g *HeaderGenerator) Tab(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", g.cfg.IndentWidth*level)
}

func (g *HeaderGenerator) MemberName(f *schema.Field) string {
	return schema.MemberName(f.Name)
}

// GenerateHeaderDefine returns the include guard token for an object name.
func (g *HeaderGenerator) GenerateHeaderDefine(name string) string {
	return strings.ToUpper(g.cfg.GuardPrefix + "_" + name + "_H")
}

// Generate renders the whole header. The output depends only on obj and
// the config. Nothing is returned when any field fails to render.
func (g *HeaderGenerator) Generate(obj *schema.Object) ([]byte, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	class, err := g.GenerateClass(obj)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, line := range g.cfg.Banner {
		sb.WriteString("// " + line + "\n")
	}
	if len(g.cfg.Banner) > 0 {
		sb.WriteByte('\n')
	}

	guard := g.GenerateHeaderDefine(obj.Name)
	fmt.Fprintf(&sb, "#ifndef %s\n#define %s\n\n", guard, guard)

	for _, group := range g.cfg.Includes {
		if group.Comment != "" {
			sb.WriteString("// " + group.Comment + "\n")
		}
		for _, file := range group.Files {
			sb.WriteString("#include <" + file + ">\n")
		}
		sb.WriteByte('\n')
	}

	if refs := obj.References(); len(refs) > 0 {
		sb.WriteString("namespace " + schema.Namespace + "\n{\n\n")
		sb.WriteString("// Forward Declare the Object\n")
		sb.WriteString("class " + obj.Name + ";\n\n")
		sb.WriteString("// Referenced Objects\n")
		for _, ref := range refs {
			sb.WriteString("class " + ref + ";\n")
		}
		sb.WriteString("\n} // namespace " + schema.Namespace + "\n\n")
	}

	sb.WriteString("namespace " + schema.Namespace + "\n{\n\n")
	sb.WriteString(class)
	sb.WriteString("\n} // namespace " + schema.Namespace + "\n\n")
	sb.WriteString("#endif // " + guard + "\n")

	g.log.Debug("generated header",
		zap.String("object", obj.Name),
		zap.Int("fields", len(obj.Fields)),
		zap.Int("bytes", sb.Len()))
	return []byte(sb.String()), nil
}

// GenerateClass renders the class declaration alone. Field failures are
// returned as *schema.FieldError.
func (g *HeaderGenerator) GenerateClass(obj *schema.Object) (string, error) {
	if obj == nil {
		return "", ErrNilObject
	}
	base := g.cfg.BaseClass
	if obj.Persistent {
		base = g.cfg.PersistentBaseClass
	}
	tab, tab2 := g.Tab(1), g.Tab(2)

	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s : public %s\n{\npublic:\n", obj.Name, base)
	fmt.Fprintf(&sb, "%s%s();\n", tab, obj.Name)
	fmt.Fprintf(&sb, "%svirtual ~%s();\n\n", tab, obj.Name)

	sb.WriteString(tab + "virtual bool IsValid(bool recursive = true) const;\n\n")
	sb.WriteString(tab + "virtual bool Load(libcomp::ObjectInStream& stream);\n\n")
	sb.WriteString(tab + "virtual bool Save(libcomp::ObjectOutStream& stream) const;\n\n")
	sb.WriteString(tab + "virtual bool Load(std::istream& stream, bool flat = false);\n\n")
	sb.WriteString(tab + "virtual bool Save(std::ostream& stream, bool flat = false) const;\n\n")
	sb.WriteString(tab + "virtual bool Load(const tinyxml2::XMLDocument& doc,\n")
	sb.WriteString(tab2 + "const tinyxml2::XMLElement& root);\n\n")
	sb.WriteString(tab + "virtual bool Save(tinyxml2::XMLDocument& doc,\n")
	sb.WriteString(tab2 + "tinyxml2::XMLElement& root) const;\n\n")
	sb.WriteString(tab + "virtual uint16_t GetDynamicSizeCount() const;\n\n")

	kinds := obj.KindRegistry()
	storage := make([]string, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		k, err := kinds.Lookup(f.Kind)
		if err != nil {
			return "", &schema.FieldError{Object: obj.Name, Field: f.Name, Err: err}
		}
		acc, err := k.Accessors(g, obj, f, f.AccessorName())
		if err != nil {
			return "", &schema.FieldError{Object: obj.Name, Field: f.Name, Err: err}
		}
		decl, err := k.Storage(g, obj, f, g.MemberName(f))
		if err != nil {
			return "", &schema.FieldError{Object: obj.Name, Field: f.Name, Err: err}
		}
		sb.WriteString(acc)
		sb.WriteByte('\n')
		storage = append(storage, decl)
	}

	sb.WriteString("private:\n")
	for _, decl := range storage {
		sb.WriteString(tab + decl + "\n")
	}
	sb.WriteString("};\n")
	return sb.String(), nil
}
