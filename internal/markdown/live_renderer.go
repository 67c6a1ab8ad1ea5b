package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-airmd/internal/live"
	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// LivePriority places the live renderer ahead of goldmark's HTML renderer.
const LivePriority = 100

// LiveBlockRenderer replaces goldmark's fenced code block rendering. Blocks
// tagged with one of its sentinel languages are executed through the live
// evaluator and replaced by the fragment they produce; every other block is
// rendered by the fallback func, or as a plain escaped code element when no
// fallback is set.
type LiveBlockRenderer struct {
	languages  map[string]struct{}
	errorClass string
	evaluator  interfaces.LiveEvaluator
	fallback   renderer.NodeRendererFunc
	logger     interfaces.Logger
	metrics    interfaces.LiveMetrics
}

// LiveOption configures the live block renderer.
type LiveOption func(*LiveBlockRenderer)

// WithLanguages replaces the sentinel languages. Blank entries are ignored;
// an empty result keeps the defaults.
func WithLanguages(languages ...string) LiveOption {
	return func(r *LiveBlockRenderer) {
		set := map[string]struct{}{}
		for _, language := range languages {
			if trimmed := strings.TrimSpace(language); trimmed != "" {
				set[trimmed] = struct{}{}
			}
		}
		if len(set) > 0 {
			r.languages = set
		}
	}
}

// WithErrorClass overrides the class attached to failed blocks.
func WithErrorClass(class string) LiveOption {
	return func(r *LiveBlockRenderer) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			r.errorClass = trimmed
		}
	}
}

// WithFallback renders non-live blocks through fn, typically the
// highlighting renderer returned by HighlightFallback.
func WithFallback(fn renderer.NodeRendererFunc) LiveOption {
	return func(r *LiveBlockRenderer) {
		r.fallback = fn
	}
}

// WithLiveLogger injects the logger used for block diagnostics.
func WithLiveLogger(logger interfaces.Logger) LiveOption {
	return func(r *LiveBlockRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLiveMetrics injects the recorder counting failed blocks.
func WithLiveMetrics(metrics interfaces.LiveMetrics) LiveOption {
	return func(r *LiveBlockRenderer) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// NewLiveBlockRenderer constructs a renderer executing sentinel blocks with
// evaluator. It panics when evaluator is nil.
func NewLiveBlockRenderer(evaluator interfaces.LiveEvaluator, opts ...LiveOption) *LiveBlockRenderer {
	if evaluator == nil {
		panic("markdown: live evaluator cannot be nil")
	}
	r := &LiveBlockRenderer{
		languages: map[string]struct{}{
			DefaultLiveLanguage: {},
			LegacyLiveLanguage:  {},
		},
		errorClass: DefaultErrorClass,
		evaluator:  evaluator,
		logger:     logging.NoOp(),
		metrics:    live.NoOpMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *LiveBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// IsLive reports whether language is one of the sentinel languages.
func (r *LiveBlockRenderer) IsLive(language string) bool {
	_, ok := r.languages[language]
	return ok
}

// RenderLiveBlock evaluates code and returns the bare fragment: the component
// or value output, the captured print output, the escaped error fragment, or
// "" for an empty block.
func (r *LiveBlockRenderer) RenderLiveBlock(code string) string {
	return r.renderBlock(DefaultLiveLanguage, code)
}

func (r *LiveBlockRenderer) renderBlock(language, code string) string {
	result := r.evaluator.Evaluate(code)
	logger := logging.WithRenderContext(r.logger, "", "", language)
	switch result.Outcome {
	case interfaces.LiveOutcomeError:
		r.metrics.IncrementFailure(language)
		return ErrorFragment(r.errorClass, strings.TrimSpace(code), result.Err)
	case interfaces.LiveOutcomeEmpty:
		logger.Debug("live.block.empty")
		return ""
	default:
		logger.Debug("live.block.rendered", "outcome", result.Outcome, "bytes", len(result.HTML))
		return result.HTML
	}
}

func (r *LiveBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	language := string(n.Language(source))

	if !r.IsLive(language) {
		if r.fallback != nil {
			return r.fallback(w, source, node, entering)
		}
		if entering {
			_, _ = w.WriteString(CodeBlockFragment(language, blockContent(n, source)))
		}
		return ast.WalkSkipChildren, nil
	}

	if !entering {
		return ast.WalkSkipChildren, nil
	}

	if fragment := r.renderBlock(language, blockContent(n, source)); fragment != "" {
		_, _ = w.WriteString(fragment)
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}

func blockContent(n *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return b.String()
}

var _ renderer.NodeRenderer = (*LiveBlockRenderer)(nil)
