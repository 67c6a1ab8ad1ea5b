package airmd

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"go.starlark.net/starlark"

	"github.com/goliatone/go-airmd/internal/live"
	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/internal/logging/console"
	"github.com/goliatone/go-airmd/internal/logging/gologger"
	"github.com/goliatone/go-airmd/internal/markdown"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// Module owns the configured flavors and the live evaluator they share.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	live     *markdown.LiveBlockRenderer

	standard    Flavor
	prose       Flavor
	liveFlavor  Flavor
	highlighted Flavor
}

type moduleOptions struct {
	provider   interfaces.LoggerProvider
	metrics    interfaces.LiveMetrics
	components map[string]interfaces.ComponentFactory
	globals    starlark.StringDict
}

// Option customises module construction.
type Option func(*moduleOptions)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLiveMetrics records live block outcomes.
func WithLiveMetrics(metrics interfaces.LiveMetrics) Option {
	return func(o *moduleOptions) {
		o.metrics = metrics
	}
}

// WithComponents exposes extra component factories to live blocks under the
// configured namespace.
func WithComponents(factories map[string]interfaces.ComponentFactory) Option {
	return func(o *moduleOptions) {
		maps.Copy(o.components, factories)
	}
}

// WithGlobals exposes extra values to every live block.
func WithGlobals(globals starlark.StringDict) Option {
	return func(o *moduleOptions) {
		maps.Copy(o.globals, globals)
	}
}

// NewModule validates cfg and builds the standard, prose, live and
// highlighted flavors.
func NewModule(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{
		components: map[string]interfaces.ComponentFactory{},
		globals:    starlark.StringDict{},
	}
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		built, err := newLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logging.RenderLogger(provider),
	}

	metrics := options.metrics
	if metrics == nil {
		metrics = live.NoOpMetrics()
	}

	evaluatorOpts := []live.Option{
		live.WithNamespace(cfg.Live.Namespace),
		live.WithMaxSteps(cfg.Live.MaxSteps),
		live.WithLogger(logging.LiveLogger(provider)),
		live.WithMetrics(metrics),
		live.WithComponents(m.markdownComponents()),
		live.WithComponents(options.components),
		live.WithGlobals(options.globals),
	}
	if cfg.Live.SanitizeOutput {
		evaluatorOpts = append(evaluatorOpts, live.WithSanitizer(markdown.NewSanitizer()))
	}

	highlightOpts := markdown.HighlightOptions{
		Style:       cfg.Highlight.Style,
		LineNumbers: cfg.Highlight.LineNumbers,
		Classes:     cfg.Highlight.Classes,
	}

	liveOpts := []markdown.LiveOption{
		markdown.WithLanguages(cfg.Live.Sentinels...),
		markdown.WithErrorClass(cfg.Live.ErrorClass),
		markdown.WithLiveLogger(logging.LiveLogger(provider)),
		markdown.WithLiveMetrics(metrics),
	}
	if cfg.Highlight.Enabled {
		liveOpts = append(liveOpts, markdown.WithFallback(markdown.HighlightFallback(highlightOpts)))
	}
	m.live = markdown.NewLiveBlockRenderer(live.NewEvaluator(evaluatorOpts...), liveOpts...)

	parseOpts := cfg.Parser.ParseOptions()
	standard := markdown.NewGoldmarkParser(parseOpts)

	liveParser := interfaces.MarkdownParser(standard)
	if cfg.Live.Enabled {
		liveParser = markdown.NewGoldmarkParser(parseOpts, markdown.WithNodeRenderer(m.live, markdown.LivePriority))
	}

	highlighted := markdown.NewGoldmarkParser(parseOpts,
		markdown.WithExtenders(markdown.HighlightExtender(highlightOpts)))

	m.standard = NewFlavor(FlavorStandard, standard, IdentityWrapper).WithLogger(m.logger)
	m.prose = NewFlavor(FlavorProse, standard, ProseWrapper).WithLogger(m.logger)
	m.liveFlavor = NewFlavor(FlavorLive, liveParser, ProseWrapper).WithLogger(m.logger)
	m.highlighted = NewFlavor(FlavorHighlighted, highlighted, IdentityWrapper).WithLogger(m.logger)

	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider exposes the provider backing module loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Standard renders with goldmark defaults and no wrapper.
func (m *Module) Standard() Flavor { return m.standard }

// Prose renders like Standard inside an article.prose wrapper.
func (m *Module) Prose() Flavor { return m.prose }

// Live executes air-live blocks and wraps the result like Prose.
func (m *Module) Live() Flavor { return m.liveFlavor }

// Highlighted syntax highlights fenced code blocks with chroma.
func (m *Module) Highlighted() Flavor { return m.highlighted }

// Flavor resolves a flavor by name. Blank names select the configured
// document default.
func (m *Module) Flavor(name string) (Flavor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(m.cfg.Documents.DefaultFlavor))
	}
	switch key {
	case "", FlavorStandard:
		return m.standard, nil
	case FlavorProse:
		return m.prose, nil
	case FlavorLive:
		return m.liveFlavor, nil
	case FlavorHighlighted:
		return m.highlighted, nil
	default:
		return Flavor{}, goerrors.Wrap(ErrFlavorUnknown, goerrors.CategoryValidation,
			fmt.Sprintf("unknown markdown flavor %q", name)).
			WithTextCode(textCodeUnknownFlavor)
	}
}

// RenderLiveBlock evaluates code as a live block and returns its fragment.
func (m *Module) RenderLiveBlock(code string) string {
	return m.live.RenderLiveBlock(code)
}

// RenderDocument renders doc with the flavor named in its front matter,
// falling back to the configured default, and stores the result on BodyHTML.
func (m *Module) RenderDocument(ctx context.Context, doc *interfaces.Document) ([]byte, error) {
	if doc == nil {
		return nil, markdown.ErrNilDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flavor, err := m.Flavor(doc.FrontMatter.Flavor)
	if err != nil {
		return nil, err
	}
	html, err := flavor.New(string(doc.Body)).Render()
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = []byte(html)
	return doc.BodyHTML, nil
}

// Documents returns a document service reading from basePath, or from the
// configured content directory when basePath is blank.
func (m *Module) Documents(basePath string) (*markdown.Service, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = m.cfg.Documents.ContentDir
	}
	return markdown.NewService(m.documentsConfig(basePath), m.RenderDocument)
}

// DocumentsFS returns a document service over filesystem.
func (m *Module) DocumentsFS(filesystem fs.FS) *markdown.Service {
	return markdown.NewServiceFS(filesystem, m.documentsConfig(""), m.RenderDocument)
}

func (m *Module) documentsConfig(basePath string) markdown.Config {
	return markdown.Config{
		BasePath:  basePath,
		Pattern:   m.cfg.Documents.Pattern,
		Recursive: m.cfg.Documents.Recursive,
		Parser:    m.cfg.Parser.ParseOptions(),
		Logger:    logging.DocumentLogger(m.provider),
	}
}

// markdownComponents exposes the flavors to live blocks. The factories read
// the module flavors at call time, after construction has finished.
func (m *Module) markdownComponents() map[string]interfaces.ComponentFactory {
	return map[string]interfaces.ComponentFactory{
		"Markdown":      m.flavorFactory(func() Flavor { return m.standard }),
		"ProseMarkdown": m.flavorFactory(func() Flavor { return m.prose }),
		"AirMarkdown":   m.flavorFactory(func() Flavor { return m.liveFlavor }),
	}
}

func (m *Module) flavorFactory(flavor func() Flavor) interfaces.ComponentFactory {
	return func(args []any, _ map[string]any) (interfaces.Component, error) {
		node, err := flavor().FromArgs(args...)
		if err != nil {
			return nil, err
		}
		return node, nil
	}
}

func newLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}
