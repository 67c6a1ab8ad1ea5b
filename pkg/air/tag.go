// Package air provides the component vocabulary available to live blocks and
// to Go callers: HTML tags as renderable trees, a raw fragment and a
// childless grouping node. Trees are serialised with golang.org/x/net/html so
// text children and attribute values are always escaped.
package air

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// Attribute is a single tag attribute. Boolean attributes render with an
// empty value.
type Attribute struct {
	Key   string
	Value string
}

// Tag is an HTML element with ordered children. Children may be strings,
// numbers, booleans, nil (skipped), nested components or slices of those.
type Tag struct {
	name     string
	children []any
	attrs    []Attribute
}

var _ interfaces.Component = (*Tag)(nil)

// New creates a tag with the provided element name and children.
func New(name string, children ...any) *Tag {
	return &Tag{
		name:     strings.ToLower(strings.TrimSpace(name)),
		children: append([]any(nil), children...),
	}
}

// Name reports the element name.
func (t *Tag) Name() string {
	return t.name
}

// Children returns a copy of the tag children.
func (t *Tag) Children() []any {
	return append([]any(nil), t.children...)
}

// Attrs returns a copy of the tag attributes in insertion order.
func (t *Tag) Attrs() []Attribute {
	return append([]Attribute(nil), t.attrs...)
}

// Attr sets an attribute and returns the tag for chaining. Setting an
// existing key replaces its value. A false boolean value removes the key.
func (t *Tag) Attr(key string, value any) *Tag {
	key = NormalizeAttrKey(key)
	if key == "" {
		return t
	}
	rendered, keep := attrValue(value)
	for i, attr := range t.attrs {
		if attr.Key != key {
			continue
		}
		if !keep {
			t.attrs = append(t.attrs[:i], t.attrs[i+1:]...)
			return t
		}
		t.attrs[i].Value = rendered
		return t
	}
	if keep {
		t.attrs = append(t.attrs, Attribute{Key: key, Value: rendered})
	}
	return t
}

// WithAttrs applies attributes in sorted key order so output stays
// deterministic for map input.
func (t *Tag) WithAttrs(attrs map[string]any) *Tag {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		t.Attr(key, attrs[key])
	}
	return t
}

// Render serialises the tag tree to HTML.
func (t *Tag) Render() (string, error) {
	node, err := t.node()
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	if err := html.Render(&builder, node); err != nil {
		return "", fmt.Errorf("air: render %s: %w", t.name, err)
	}
	return builder.String(), nil
}

func (t *Tag) node() (*html.Node, error) {
	if t.name == "" {
		return nil, fmt.Errorf("air: tag name is required")
	}
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     t.name,
		DataAtom: atom.Lookup([]byte(t.name)),
	}
	for _, attr := range t.attrs {
		node.Attr = append(node.Attr, html.Attribute{Key: attr.Key, Val: attr.Value})
	}
	if err := appendChildren(node, t.children); err != nil {
		return nil, err
	}
	return node, nil
}

func appendChildren(parent *html.Node, children []any) error {
	for _, child := range children {
		switch value := child.(type) {
		case nil:
		case []any:
			if err := appendChildren(parent, value); err != nil {
				return err
			}
		case *Tag:
			node, err := value.node()
			if err != nil {
				return err
			}
			parent.AppendChild(node)
		case interfaces.Component:
			rendered, err := value.Render()
			if err != nil {
				return err
			}
			parent.AppendChild(&html.Node{Type: html.RawNode, Data: rendered})
		default:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: textOf(value)})
		}
	}
	return nil
}

func textOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func attrValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return "", v
	default:
		return textOf(v), true
	}
}

// NormalizeAttrKey maps keyword style keys onto HTML attribute names:
// a trailing underscore is dropped (class_ -> class) and inner underscores
// become hyphens (hx_get -> hx-get).
func NormalizeAttrKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimSuffix(key, "_")
	key = strings.TrimPrefix(key, "_")
	return strings.ReplaceAll(key, "_", "-")
}
