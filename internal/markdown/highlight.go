package markdown

import (
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HighlightOptions configures chroma based syntax highlighting.
type HighlightOptions struct {
	Style       string
	LineNumbers bool
	// Classes emits CSS classes instead of inline styles.
	Classes bool
}

// HighlightExtender returns a goldmark extension highlighting every fenced
// code block. Use it when no live renderer is registered.
func HighlightExtender(opts HighlightOptions) goldmark.Extender {
	return highlighting.NewHighlighting(highlightOptions(opts)...)
}

// HighlightFallback returns the highlighting renderer's fenced code block
// func so a LiveBlockRenderer can delegate non-live blocks to it.
func HighlightFallback(opts HighlightOptions) renderer.NodeRendererFunc {
	capture := funcCapture{}
	highlighting.NewHTMLRenderer(highlightOptions(opts)...).RegisterFuncs(capture)
	return capture[ast.KindFencedCodeBlock]
}

func highlightOptions(opts HighlightOptions) []highlighting.Option {
	style := strings.TrimSpace(opts.Style)
	if style == "" {
		style = DefaultHighlightStyle
	}

	format := []chromahtml.Option{chromahtml.WithClasses(opts.Classes)}
	if opts.LineNumbers {
		format = append(format, chromahtml.WithLineNumbers(true))
	}

	return []highlighting.Option{
		highlighting.WithStyle(style),
		highlighting.WithFormatOptions(format...),
	}
}

// funcCapture records the funcs a node renderer registers.
type funcCapture map[ast.NodeKind]renderer.NodeRendererFunc

func (c funcCapture) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	c[kind] = fn
}
