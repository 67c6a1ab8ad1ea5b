package rendercmd

import (
	"errors"

	"github.com/goliatone/go-airmd/internal/commands"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract for command handlers.
// go-command registries and dispatchers satisfy it.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterRenderCommands.
type HandlerSet struct {
	File      *RenderFileHandler
	Directory *RenderDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	fileOpts      []commands.HandlerOption[RenderFileCommand]
	directoryOpts []commands.HandlerOption[RenderDirectoryCommand]
}

// WithFileHandlerOptions forwards options to NewRenderFileHandler.
func WithFileHandlerOptions(opts ...commands.HandlerOption[RenderFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileOpts = append(cfg.fileOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to NewRenderDirectoryHandler.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[RenderDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryOpts = append(cfg.directoryOpts, opts...)
	}
}

// RegisterRenderCommands builds the render handlers and registers them with
// reg. A nil registry only builds the handlers.
func RegisterRenderCommands(reg CommandRegistry, loader DocumentLoader, renderer DocumentRenderer, sink Sink, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if loader == nil {
		return nil, errors.New("render command registration: loader is nil")
	}
	if renderer == nil {
		return nil, errors.New("render command registration: renderer is nil")
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "render")
	set := &HandlerSet{
		File:      NewRenderFileHandler(loader, renderer, sink, logger, cfg.fileOpts...),
		Directory: NewRenderDirectoryHandler(loader, renderer, sink, logger, cfg.directoryOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.File); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Directory); err != nil {
			return nil, err
		}
	}
	return set, nil
}
