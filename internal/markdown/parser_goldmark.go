package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. It is the renderer policy behind every Markdown flavor: extra node
// renderers registered through WithNodeRenderer override individual node
// kinds while everything else keeps goldmark's HTML output. The parser holds
// no per-call state so a single instance can be shared across goroutines.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	nodeRenderers  []util.PrioritizedValue
	extenders      []goldmark.Extender
	sanitizer      interfaces.HTMLSanitizer
}

// ParserOption configures a GoldmarkParser.
type ParserOption func(*GoldmarkParser)

// WithNodeRenderer registers a node renderer. goldmark's own HTML renderer
// sits at priority 1000; lower values take precedence for the node kinds the
// renderer registers.
func WithNodeRenderer(r renderer.NodeRenderer, priority int) ParserOption {
	return func(p *GoldmarkParser) {
		if r == nil {
			return
		}
		p.nodeRenderers = append(p.nodeRenderers, util.Prioritized(r, priority))
	}
}

// WithExtenders appends goldmark extensions applied on top of the extension
// names resolved from ParseOptions.
func WithExtenders(extenders ...goldmark.Extender) ParserOption {
	return func(p *GoldmarkParser) {
		p.extenders = append(p.extenders, extenders...)
	}
}

// WithSanitizer overrides the sanitizer used when ParseOptions.Sanitize is set.
func WithSanitizer(sanitizer interfaces.HTMLSanitizer) ParserOption {
	return func(p *GoldmarkParser) {
		if sanitizer != nil {
			p.sanitizer = sanitizer
		}
	}
}

// NewGoldmarkParser constructs a parser with the supplied defaults (GFM
// extensions, unsafe HTML allowed unless SafeMode or Sanitize is set).
func NewGoldmarkParser(defaults interfaces.ParseOptions, opts ...ParserOption) *GoldmarkParser {
	p := &GoldmarkParser{
		defaultOptions: defaults,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse satisfies interfaces.MarkdownParser by rendering Markdown into HTML
// using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	engine := p.newEngine(opts)

	var parseOptions []parser.ParseOption
	if opts.HeadingIDs {
		parseOptions = append(parseOptions, parser.WithContext(parser.NewContext(parser.WithIDs(newSlugIDs()))))
	}

	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf, parseOptions...); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}

	if opts.Sanitize {
		sanitizer := p.sanitizer
		if sanitizer == nil {
			sanitizer = NewSanitizer()
		}
		return []byte(sanitizer.Sanitize(buf.String())), nil
	}
	return buf.Bytes(), nil
}

// newEngine builds a goldmark.Markdown configured from the supplied parse
// options. Unsupported extension names are ignored.
func (p *GoldmarkParser) newEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := append(collectExtensions(opts.Extensions), p.extenders...)

	parserOptions := []parser.Option{}
	if opts.HeadingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	if len(p.nodeRenderers) > 0 {
		rendererOptions = append(rendererOptions, renderer.WithNodeRenderers(p.nodeRenderers...))
	}

	engineOptions := []goldmark.Option{}

	if len(parserOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithParserOptions(parserOptions...))
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)
