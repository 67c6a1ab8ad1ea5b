package rendercmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-airmd/internal/runtimeconfig"
)

const (
	renderFileMessageType      = "airmd.render.file"
	renderDirectoryMessageType = "airmd.render.directory"
)

// RenderFileCommand renders a single Markdown document. Flavor, when set,
// overrides the flavor named in the document front matter.
type RenderFileCommand struct {
	Path   string `json:"path"`
	Flavor string `json:"flavor,omitempty"`
}

// Type implements command.Message.
func (RenderFileCommand) Type() string { return renderFileMessageType }

// Validate requires a path and a known flavor.
func (cmd RenderFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank(
			"airmd.render.file.path_required", "path is required"))),
		validation.Field(&cmd.Flavor, validation.By(knownFlavor)),
	)
}

// RenderDirectoryCommand renders every document matched under Directory.
// Pattern and Recursive override the loader defaults when set.
type RenderDirectoryCommand struct {
	Directory string `json:"directory"`
	Flavor    string `json:"flavor,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Recursive *bool  `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (RenderDirectoryCommand) Type() string { return renderDirectoryMessageType }

// Validate requires a directory and a known flavor.
func (cmd RenderDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank(
			"airmd.render.directory.directory_required", "directory is required"))),
		validation.Field(&cmd.Flavor, validation.By(knownFlavor)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func knownFlavor(value any) error {
	name, _ := value.(string)
	if strings.TrimSpace(name) == "" || runtimeconfig.IsFlavor(name) {
		return nil
	}
	return validation.NewError("airmd.render.flavor_unknown", "flavor must be standard, prose, live or highlighted")
}
