package objgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Element and attribute names shared by every object's XML form.
const (
	XMLListElement = "element"
	XMLUUIDAttr    = "uid"
)

// XMLChild returns the first child of root named name, or nil.
//
// Duplicate siblings are legal XML; only the first in document order is
// bound to a field.
func XMLChild(root *etree.Element, name string) *etree.Element {
	if root == nil {
		return nil
	}
	return root.SelectElement(name)
}

// XMLChildren returns every child of root named name in document order.
func XMLChildren(root *etree.Element, name string) []*etree.Element {
	if root == nil {
		return nil
	}
	return root.SelectElements(name)
}

// XMLMembers maps the children of root by element name. The first child of
// each name wins.
func XMLMembers(root *etree.Element) map[string]*etree.Element {
	members := make(map[string]*etree.Element)
	if root == nil {
		return members
	}
	for _, child := range root.ChildElements() {
		if _, ok := members[child.Tag]; !ok {
			members[child.Tag] = child
		}
	}
	return members
}

// XMLText returns the trimmed text of el.
func XMLText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// SetXMLMember appends a child named name holding text.
func SetXMLMember(root *etree.Element, name, text string) *etree.Element {
	el := root.CreateElement(name)
	el.SetText(text)
	return el
}

func xmlMember(root *etree.Element, name string, mandatory bool) (*etree.Element, error) {
	el := XMLChild(root, name)
	if el == nil && mandatory {
		return nil, fmt.Errorf("%w: %s", ErrMissingMember, name)
	}
	return el, nil
}

func isSigned[T constraints.Integer]() bool {
	var z T
	return z-1 < z
}

func parseInteger[T constraints.Integer](text string) (T, error) {
	if isSigned[T]() {
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil || int64(T(n)) != n {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMember, text)
		}
		return T(n), nil
	}
	n, err := strconv.ParseUint(text, 0, 64)
	if err != nil || uint64(T(n)) != n {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMember, text)
	}
	return T(n), nil
}

// XMLInteger parses the member name of root into dst. A missing optional
// member leaves dst untouched.
func XMLInteger[T constraints.Integer](root *etree.Element, name string, dst *T, mandatory bool) error {
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return err
	}
	v, err := parseInteger[T](XMLText(el))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = v
	return nil
}

// XMLFloat parses the member name of root into dst.
func XMLFloat[T constraints.Float](root *etree.Element, name string, dst *T, mandatory bool) error {
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return err
	}
	text := XMLText(el)
	v, err := strconv.ParseFloat(text, floatBits[T]())
	if err != nil {
		return fmt.Errorf("%s: %w: %q", name, ErrInvalidMember, text)
	}
	*dst = T(v)
	return nil
}

// floatBits is 32 when T is backed by float32.
func floatBits[T constraints.Float]() int {
	tiny := math.SmallestNonzeroFloat64
	if T(tiny) == 0 {
		return 32
	}
	return 64
}

// XMLBool parses the member name of root into dst.
func XMLBool(root *etree.Element, name string, dst *bool, mandatory bool) error {
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return err
	}
	text := XMLText(el)
	v, err := strconv.ParseBool(text)
	if err != nil {
		return fmt.Errorf("%s: %w: %q", name, ErrInvalidMember, text)
	}
	*dst = v
	return nil
}

// XMLString copies the untrimmed text of the member name of root into dst.
func XMLString(root *etree.Element, name string, dst *string, mandatory bool) error {
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return err
	}
	*dst = el.Text()
	return nil
}

// FormatInteger renders v the way XMLInteger parses it.
func FormatInteger[T constraints.Integer](v T) string {
	if isSigned[T]() {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// FormatFloat renders v with the fewest digits that parse back exactly.
func FormatFloat[T constraints.Float](v T) string {
	return fmt.Sprint(v)
}

func FormatBool(v bool) string { return strconv.FormatBool(v) }

// SaveXMLList writes items as <name><element>..</element>..</name>.
func SaveXMLList[T any](root *etree.Element, name string, items []T, format func(T) string) *etree.Element {
	list := root.CreateElement(name)
	for _, item := range items {
		SetXMLMember(list, XMLListElement, format(item))
	}
	return list
}

// LoadXMLList reads a list written by SaveXMLList. A missing optional list
// yields nil.
func LoadXMLList[T any](root *etree.Element, name string, parse func(string) (T, error), mandatory bool) ([]T, error) {
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return nil, err
	}
	children := XMLChildren(el, XMLListElement)
	if len(children) == 0 {
		return nil, nil
	}
	items := make([]T, 0, len(children))
	for i, child := range children {
		item, err := parse(child.Text())
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseInteger adapts the integer parser of XMLInteger for LoadXMLList.
func ParseInteger[T constraints.Integer](text string) (T, error) {
	return parseInteger[T](strings.TrimSpace(text))
}

// SaveXMLRef writes ref as a child element named name. Persistent targets
// carry their UUID in the uid attribute. A nil ref writes nothing.
func SaveXMLRef[T Object](doc *etree.Document, root *etree.Element, name string, ref T) error {
	if isNilObject(ref) {
		return nil
	}
	el := root.CreateElement(name)
	if p, ok := any(ref).(Persistent); ok {
		el.CreateAttr(XMLUUIDAttr, p.UUID().String())
	}
	return ref.SaveXML(doc, el)
}

// LoadXMLRef reads a reference written by SaveXMLRef.
func LoadXMLRef[T Object](doc *etree.Document, root *etree.Element, name string, factory func() T, mandatory bool) (T, error) {
	var zero T
	el, err := xmlMember(root, name, mandatory)
	if el == nil {
		return zero, err
	}
	obj := factory()
	if p, ok := any(obj).(Persistent); ok {
		if attr := el.SelectAttr(XMLUUIDAttr); attr != nil {
			id, err := uuid.Parse(attr.Value)
			if err != nil {
				return zero, fmt.Errorf("%s: %w: %v", name, ErrInvalidMember, err)
			}
			p.SetUUID(id)
		}
	}
	if err := obj.LoadXML(doc, el); err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return obj, nil
}

// SaveXMLDocument saves obj into a new document under a root element.
func SaveXMLDocument(obj Object, rootName string) (*etree.Document, error) {
	if obj == nil {
		return nil, ErrNilObject
	}
	doc := etree.NewDocument()
	// Carriage returns are written as character references so that the
	// parser's line-ending normalization does not drop them.
	doc.WriteSettings.CanonicalText = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootName)
	if err := obj.SaveXML(doc, root); err != nil {
		return nil, err
	}
	if err := CheckXMLText(root); err != nil {
		return nil, err
	}
	return doc, nil
}

// CheckXMLText reports the first text or attribute value below el that XML
// 1.0 cannot carry.
func CheckXMLText(el *etree.Element) error {
	for _, a := range el.Attr {
		if !isXMLText(a.Value) {
			return fmt.Errorf("%w: %s@%s holds a character xml cannot represent", ErrInvalidMember, el.Tag, a.Key)
		}
	}
	for _, tok := range el.Child {
		switch tok := tok.(type) {
		case *etree.CharData:
			if !isXMLText(tok.Data) {
				return fmt.Errorf("%w: %s holds a character xml cannot represent", ErrInvalidMember, el.Tag)
			}
		case *etree.Element:
			if err := CheckXMLText(tok); err != nil {
				return err
			}
		}
	}
	return nil
}

func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}

// LoadXMLDocument loads obj from the root element of doc.
func LoadXMLDocument(doc *etree.Document, obj Object) error {
	if obj == nil {
		return ErrNilObject
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: document has no root element", ErrMissingMember)
	}
	return obj.LoadXML(doc, root)
}
