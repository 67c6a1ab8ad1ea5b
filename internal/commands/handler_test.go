package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

type testMessage struct {
	Path string
}

func (testMessage) Type() string { return "airmd.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "airmd.test.invalid" }

func (invalidMessage) Validate() error { return errors.New("invalid") }

type fieldsLogger struct {
	fields []map[string]any
	infos  []string
	errors []string
}

func (l *fieldsLogger) Trace(string, ...any) {}
func (l *fieldsLogger) Debug(string, ...any) {}
func (l *fieldsLogger) Warn(string, ...any)  {}
func (l *fieldsLogger) Fatal(string, ...any) {}

func (l *fieldsLogger) Info(msg string, _ ...any) {
	l.infos = append(l.infos, msg)
}

func (l *fieldsLogger) Error(msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}

func (l *fieldsLogger) WithFields(fields map[string]any) interfaces.Logger {
	l.fields = append(l.fields, fields)
	return l
}

func (l *fieldsLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerNilContextFallsBack(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			t.Fatal("expected non-nil context")
		}
		return nil
	})

	//nolint:staticcheck // nil context is part of the contract
	if err := h.Execute(nil, testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	categorised := goerrors.Wrap(errors.New("bad flavor"), goerrors.CategoryValidation, "unknown flavor")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return categorised
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesFields(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("render.file"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Path: "guide.md"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess {
		t.Fatalf("expected success status, got %q", got.Status)
	}
	if got.Command != "airmd.test.message" || got.Operation != "render.file" {
		t.Fatalf("unexpected telemetry identity: %+v", got)
	}
	if got.Fields["path"] != "guide.md" {
		t.Fatalf("expected path field, got %v", got.Fields)
	}
}

func TestHandlerAnnotatesContext(t *testing.T) {
	var fields map[string]any
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		fields = logging.ContextFields(ctx)
		return nil
	}, WithOperation[testMessage]("render.file"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fields["command"] != "airmd.test.message" || fields["operation"] != "render.file" {
		t.Fatalf("expected command fields on context, got %v", fields)
	}
}

func TestHandlerTelemetryFailureStatus(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
		status = info.Status
	}))

	_ = h.Execute(context.Background(), testMessage{})
	if status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", status)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := &fieldsLogger{}
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	}, WithLogger[testMessage](logger))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(logger.infos) != 1 || logger.infos[0] != "command.execute.success" {
		t.Fatalf("expected success entry, got %v", logger.infos)
	}

	failing := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithLogger[testMessage](logger))
	_ = failing.Execute(context.Background(), testMessage{})
	if len(logger.errors) != 1 || logger.errors[0] != "command.execute.failed" {
		t.Fatalf("expected failure entry, got %v", logger.errors)
	}
}

func TestCommandLoggerNamesGroup(t *testing.T) {
	logger := CommandLogger(nil, " ")
	if logger == nil {
		t.Fatal("expected logger")
	}
}
