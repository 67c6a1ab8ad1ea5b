package commands

import (
	"strings"

	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

const commandModuleRoot = "airmd.commands"

// CommandLogger returns the logger for a command group, named
// airmd.commands.<group> and tagged with the group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), map[string]any{
		"component":     "command",
		"command_group": name,
	})
}
