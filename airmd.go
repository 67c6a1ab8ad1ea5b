// Package airmd renders Markdown text into HTML through interchangeable
// flavors. A Flavor pairs a renderer policy (how each Markdown node becomes
// HTML) with a wrapper applied to the finished document. The live flavor
// executes fenced code blocks tagged air-live and splices their output into
// the page.
package airmd

import (
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/internal/markdown"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

var (
	// ErrInvalidArgument is returned when a node is built from zero or several arguments.
	ErrInvalidArgument = errors.New("markdown: expected exactly one content argument")
	// ErrNotText is returned when the content argument is not a string.
	ErrNotText = errors.New("markdown: content must be text")
)

const (
	textCodeInvalidArgument = "MARKDOWN_INVALID_ARGUMENT"
	textCodeNotText         = "MARKDOWN_NOT_TEXT"
	textCodeUnknownFlavor   = "MARKDOWN_UNKNOWN_FLAVOR"
)

// WrapperFunc post-processes the rendered document HTML.
type WrapperFunc func(html string) string

// IdentityWrapper returns html unchanged.
func IdentityWrapper(html string) string {
	return html
}

// ProseWrapper wraps html in an article carrying the Tailwind typography
// prose class.
func ProseWrapper(html string) string {
	return `<article class="prose">` + html + `</article>`
}

// Flavor is an immutable renderer configuration. The With* helpers return
// modified copies, so nodes built from one flavor never observe changes made
// to another.
type Flavor struct {
	name    string
	parser  interfaces.MarkdownParser
	wrapper WrapperFunc
	logger  interfaces.Logger
}

// NewFlavor builds a flavor from a renderer policy and a wrapper. A nil
// parser selects the standard goldmark policy; a nil wrapper is the identity.
func NewFlavor(name string, parser interfaces.MarkdownParser, wrapper WrapperFunc) Flavor {
	return Flavor{name: name, parser: parser, wrapper: wrapper}
}

// Name returns the flavor name used in logs and front matter.
func (f Flavor) Name() string {
	if f.name == "" {
		return FlavorStandard
	}
	return f.name
}

// WithName returns a copy of f carrying name.
func (f Flavor) WithName(name string) Flavor {
	f.name = name
	return f
}

// WithRenderer returns a copy of f using parser as its renderer policy.
func (f Flavor) WithRenderer(parser interfaces.MarkdownParser) Flavor {
	f.parser = parser
	return f
}

// WithWrapper returns a copy of f using wrapper.
func (f Flavor) WithWrapper(wrapper WrapperFunc) Flavor {
	f.wrapper = wrapper
	return f
}

// WithLogger returns a copy of f logging through logger.
func (f Flavor) WithLogger(logger interfaces.Logger) Flavor {
	f.logger = logger
	return f
}

// Renderer returns the renderer policy, resolving the standard policy for a
// zero flavor.
func (f Flavor) Renderer() interfaces.MarkdownParser {
	if f.parser == nil {
		return markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return f.parser
}

// New builds a node holding content.
func (f Flavor) New(content string) *Node {
	return &Node{content: content, flavor: f}
}

// FromArgs builds a node from untyped arguments. Exactly one string argument
// is accepted.
func (f Flavor) FromArgs(args ...any) (*Node, error) {
	if len(args) != 1 {
		return nil, goerrors.Wrap(ErrInvalidArgument, goerrors.CategoryValidation,
			fmt.Sprintf("%s markdown expects exactly one argument, got %d", f.Name(), len(args))).
			WithTextCode(textCodeInvalidArgument)
	}
	content, ok := args[0].(string)
	if !ok {
		return nil, goerrors.Wrap(ErrNotText, goerrors.CategoryValidation,
			fmt.Sprintf("%s markdown expects a string, got %T", f.Name(), args[0])).
			WithTextCode(textCodeNotText)
	}
	return f.New(content), nil
}

// Node is a Markdown component. Its content and flavor are fixed at
// construction; rendering never mutates it, so a node can be rendered
// repeatedly and from several goroutines.
type Node struct {
	content string
	flavor  Flavor
}

// Content returns the Markdown source.
func (n *Node) Content() string {
	return n.content
}

// Flavor returns the flavor the node was built with.
func (n *Node) Flavor() Flavor {
	return n.flavor
}

// Render converts the content with the flavor's renderer policy and applies
// its wrapper.
func (n *Node) Render() (string, error) {
	logger := n.flavor.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	logger = logging.WithRenderContext(logger, "", n.flavor.Name(), "")

	started := time.Now()
	html, err := n.flavor.Renderer().Parse([]byte(n.content))
	if err != nil {
		logger.Error("markdown.render.failed", "error", err)
		return "", fmt.Errorf("markdown render: %w", err)
	}

	out := n.Wrap(string(html))
	logger.Debug("markdown.render",
		"render_id", uuid.NewString(),
		"bytes", len(out),
		"duration", time.Since(started),
	)
	return out, nil
}

// Wrap applies the flavor's wrapper to html.
func (n *Node) Wrap(html string) string {
	if n.flavor.wrapper == nil {
		return html
	}
	return n.flavor.wrapper(html)
}

var _ interfaces.Component = (*Node)(nil)
