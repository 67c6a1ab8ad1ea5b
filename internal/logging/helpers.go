package logging

import (
	"maps"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// WithFields attaches a clone of fields when logger implements
// interfaces.FieldsLogger. Other loggers, and empty field sets, return logger
// unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}
