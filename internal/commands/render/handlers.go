package rendercmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-airmd/internal/commands"
	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/internal/markdown"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

const (
	fileOperation      = "render.file"
	directoryOperation = "render.directory"
)

// ErrNilSink is returned when a handler is built without a sink.
var ErrNilSink = errors.New("render command: sink is nil")

var (
	_ command.Commander[RenderFileCommand]      = (*RenderFileHandler)(nil)
	_ command.Commander[RenderDirectoryCommand] = (*RenderDirectoryHandler)(nil)
)

// DocumentLoader reads documents without rendering them. *markdown.Loader
// satisfies it.
type DocumentLoader interface {
	LoadFile(ctx context.Context, path string) (*markdown.DocumentResult, error)
	LoadDirectory(ctx context.Context, dir string, opts markdown.LoadParams) ([]*markdown.DocumentResult, error)
}

// DocumentRenderer renders a document with the flavor recorded in its front
// matter and stores the HTML on BodyHTML.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, doc *interfaces.Document) ([]byte, error)
}

// Sink receives each rendered document. BodyHTML is populated.
type Sink func(ctx context.Context, doc *interfaces.Document) error

// RenderFileHandler renders one document through the shared command handler.
type RenderFileHandler struct {
	inner *commands.Handler[RenderFileCommand]
}

// NewRenderFileHandler builds a handler reading through loader, rendering
// through renderer and delivering to sink.
func NewRenderFileHandler(loader DocumentLoader, renderer DocumentRenderer, sink Sink, logger interfaces.Logger, opts ...commands.HandlerOption[RenderFileCommand]) *RenderFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenderFileCommand) error {
		if sink == nil {
			return ErrNilSink
		}
		result, err := loader.LoadFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		return renderInto(ctx, renderer, sink, result, msg.Flavor)
	}

	handlerOpts := []commands.HandlerOption[RenderFileCommand]{
		commands.WithLogger[RenderFileCommand](baseLogger),
		commands.WithOperation[RenderFileCommand](fileOperation),
		commands.WithMessageFields(func(msg RenderFileCommand) map[string]any {
			return withFlavor(map[string]any{"path": msg.Path}, msg.Flavor)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RenderFileCommand].
func (h *RenderFileHandler) Execute(ctx context.Context, msg RenderFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderDirectoryHandler renders every matched document in path order,
// stopping at the first failure.
type RenderDirectoryHandler struct {
	inner *commands.Handler[RenderDirectoryCommand]
}

// NewRenderDirectoryHandler builds a handler reading through loader,
// rendering through renderer and delivering to sink.
func NewRenderDirectoryHandler(loader DocumentLoader, renderer DocumentRenderer, sink Sink, logger interfaces.Logger, opts ...commands.HandlerOption[RenderDirectoryCommand]) *RenderDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenderDirectoryCommand) error {
		if sink == nil {
			return ErrNilSink
		}
		results, err := loader.LoadDirectory(ctx, msg.Directory, markdown.LoadParams{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}
		for _, result := range results {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderInto(ctx, renderer, sink, result, msg.Flavor); err != nil {
				return err
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"directory":      msg.Directory,
			"rendered_count": len(results),
		}).Info("render.command.directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderDirectoryCommand]{
		commands.WithLogger[RenderDirectoryCommand](baseLogger),
		commands.WithOperation[RenderDirectoryCommand](directoryOperation),
		commands.WithMessageFields(func(msg RenderDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			return withFlavor(fields, msg.Flavor)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RenderDirectoryCommand].
func (h *RenderDirectoryHandler) Execute(ctx context.Context, msg RenderDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func renderInto(ctx context.Context, renderer DocumentRenderer, sink Sink, result *markdown.DocumentResult, flavor string) error {
	if result == nil || result.Document == nil {
		return markdown.ErrNilDocument
	}
	doc := result.Document
	if override := strings.TrimSpace(flavor); override != "" {
		doc.FrontMatter.Flavor = strings.ToLower(override)
	}
	if _, err := renderer.RenderDocument(ctx, doc); err != nil {
		return err
	}
	return sink(ctx, doc)
}

func withFlavor(fields map[string]any, flavor string) map[string]any {
	if trimmed := strings.TrimSpace(flavor); trimmed != "" {
		fields["flavor"] = trimmed
	}
	return fields
}
