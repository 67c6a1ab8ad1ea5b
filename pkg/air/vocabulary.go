package air

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// Raw is a pre-rendered fragment inserted without escaping.
type Raw string

// Render returns the fragment unchanged.
func (r Raw) Render() (string, error) {
	return string(r), nil
}

// Fragment groups children without an enclosing element.
type Fragment struct {
	children []any
}

// Children creates a fragment from the provided children.
func Children(children ...any) *Fragment {
	return &Fragment{children: append([]any(nil), children...)}
}

// Render concatenates the rendered children.
func (f *Fragment) Render() (string, error) {
	root := &html.Node{Type: html.DocumentNode}
	if err := appendChildren(root, f.children); err != nil {
		return "", err
	}
	var builder strings.Builder
	if err := html.Render(&builder, root); err != nil {
		return "", fmt.Errorf("air: render fragment: %w", err)
	}
	return builder.String(), nil
}

var elementNames = []string{
	"a", "abbr", "article", "aside", "b", "blockquote", "br", "button",
	"caption", "cite", "code", "dd", "details", "div", "dl", "dt", "em",
	"figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5",
	"h6", "header", "hr", "i", "img", "input", "kbd", "label", "li", "main",
	"mark", "nav", "ol", "option", "p", "pre", "q", "s", "samp", "section",
	"select", "small", "span", "strong", "sub", "summary", "sup", "table",
	"tbody", "td", "textarea", "tfoot", "th", "thead", "time", "tr", "u",
	"ul", "var",
}

// ExportName maps an element name onto the constructor name exposed to
// live blocks (h2 -> H2, blockquote -> Blockquote).
func ExportName(element string) string {
	if element == "" {
		return ""
	}
	return strings.ToUpper(element[:1]) + element[1:]
}

// Elements lists the element names covered by the vocabulary.
func Elements() []string {
	return append([]string(nil), elementNames...)
}

// Vocabulary returns the component factories exposed to live blocks, keyed by
// constructor name. Every element gets a factory; Raw and Children are added
// under the same names as their Go counterparts.
func Vocabulary() map[string]interfaces.ComponentFactory {
	factories := make(map[string]interfaces.ComponentFactory, len(elementNames)+2)
	for _, element := range elementNames {
		factories[ExportName(element)] = elementFactory(element)
	}
	factories["Raw"] = func(args []any, _ map[string]any) (interfaces.Component, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("air: Raw expects exactly one argument, got %d", len(args))
		}
		text, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("air: Raw expects a string, got %T", args[0])
		}
		return Raw(text), nil
	}
	factories["Children"] = func(args []any, _ map[string]any) (interfaces.Component, error) {
		return Children(args...), nil
	}
	return factories
}

func elementFactory(element string) interfaces.ComponentFactory {
	return func(args []any, attrs map[string]any) (interfaces.Component, error) {
		return New(element, args...).WithAttrs(attrs), nil
	}
}

func H1(children ...any) *Tag         { return New("h1", children...) }
func H2(children ...any) *Tag         { return New("h2", children...) }
func H3(children ...any) *Tag         { return New("h3", children...) }
func H4(children ...any) *Tag         { return New("h4", children...) }
func H5(children ...any) *Tag         { return New("h5", children...) }
func H6(children ...any) *Tag         { return New("h6", children...) }
func P(children ...any) *Tag          { return New("p", children...) }
func Div(children ...any) *Tag        { return New("div", children...) }
func Span(children ...any) *Tag       { return New("span", children...) }
func A(children ...any) *Tag          { return New("a", children...) }
func Article(children ...any) *Tag    { return New("article", children...) }
func Section(children ...any) *Tag    { return New("section", children...) }
func Strong(children ...any) *Tag     { return New("strong", children...) }
func Em(children ...any) *Tag         { return New("em", children...) }
func Code(children ...any) *Tag       { return New("code", children...) }
func Pre(children ...any) *Tag        { return New("pre", children...) }
func Ul(children ...any) *Tag         { return New("ul", children...) }
func Ol(children ...any) *Tag         { return New("ol", children...) }
func Li(children ...any) *Tag         { return New("li", children...) }
func Blockquote(children ...any) *Tag { return New("blockquote", children...) }
func Table(children ...any) *Tag      { return New("table", children...) }
func Tr(children ...any) *Tag         { return New("tr", children...) }
func Td(children ...any) *Tag         { return New("td", children...) }
func Th(children ...any) *Tag         { return New("th", children...) }
func Br() *Tag                        { return New("br") }
func Hr() *Tag                        { return New("hr") }
