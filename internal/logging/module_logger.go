package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

const (
	rootModule     = "airmd"
	renderModule   = "airmd.render"
	liveModule     = "airmd.live"
	documentModule = "airmd.documents"
)

const (
	fieldDocumentPath = "document_path"
	fieldFlavor       = "flavor"
	fieldLanguage     = "language"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger namespace reserved for Markdown node rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// LiveLogger returns the logger namespace reserved for live block evaluation.
func LiveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, liveModule)
}

// DocumentLogger returns the logger namespace reserved for document workflows.
func DocumentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentModule)
}

// WithRenderContext enriches the logger with the document path, flavor and
// code block language. Empty values are ignored.
func WithRenderContext(logger interfaces.Logger, path, flavor, language string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(flavor); trimmed != "" {
		fields[fieldFlavor] = trimmed
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
