package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeValidation     = "AIRMD_COMMAND_INVALID"
	textCodeCanceled       = "AIRMD_COMMAND_CANCELED"
	textCodeTimeout        = "AIRMD_COMMAND_TIMEOUT"
	textCodeContext        = "AIRMD_COMMAND_CONTEXT"
	textCodeExecuteFailure = "AIRMD_COMMAND_FAILED"
)

// Errors that already carry a go-errors category pass through unchanged.

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(textCodeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "command context error", textCodeContext
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "command cancelled", textCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command deadline exceeded", textCodeTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(textCodeExecuteFailure)
}
