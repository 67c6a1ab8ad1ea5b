package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// Flavor names accepted by configuration, front matter and the CLI.
const (
	FlavorStandard    = "standard"
	FlavorProse       = "prose"
	FlavorLive        = "live"
	FlavorHighlighted = "highlighted"
)

var ErrLiveSentinelRequired = errors.New("airmd config: live rendering requires at least one sentinel language")
var ErrLiveErrorClassRequired = errors.New("airmd config: live error class is required when live rendering is enabled")
var ErrLiveNamespaceInvalid = errors.New("airmd config: live namespace must be a valid identifier")
var ErrHighlightStyleUnknown = errors.New("airmd config: highlight style is not registered")
var ErrFlavorUnknown = errors.New("airmd config: flavor is invalid")
var ErrCommandTimeoutInvalid = errors.New("airmd config: command timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("airmd config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("airmd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("airmd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("airmd config: logging format is invalid")

// Config aggregates renderer settings and feature flags for the airmd module.
// Fields use simple types so the same struct loads from YAML and flags.
type Config struct {
	Parser    ParserConfig    `yaml:"parser"`
	Live      LiveConfig      `yaml:"live"`
	Highlight HighlightConfig `yaml:"highlight"`
	Documents DocumentsConfig `yaml:"documents"`
	Commands  CommandsConfig  `yaml:"commands"`
	Features  Features        `yaml:"features"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
	HeadingIDs bool     `yaml:"heading_ids"`
}

// ParseOptions converts the parser section into the parser contract.
func (p ParserConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), p.Extensions...),
		Sanitize:   p.Sanitize,
		HardWraps:  p.HardWraps,
		SafeMode:   p.SafeMode,
		HeadingIDs: p.HeadingIDs,
	}
}

// LiveConfig controls execution of live code blocks.
type LiveConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Sentinels  []string `yaml:"sentinels"`
	ErrorClass string   `yaml:"error_class"`
	Namespace  string   `yaml:"namespace"`
	// MaxSteps caps interpreter steps per block; zero means unbounded.
	MaxSteps uint64 `yaml:"max_steps"`
	// SanitizeOutput scrubs printed output and value text with bluemonday.
	SanitizeOutput bool `yaml:"sanitize_output"`
}

// HighlightConfig controls chroma syntax highlighting for non-live blocks.
type HighlightConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Style       string `yaml:"style"`
	LineNumbers bool   `yaml:"line_numbers"`
	Classes     bool   `yaml:"classes"`
}

// DocumentsConfig captures filesystem discovery for document rendering.
type DocumentsConfig struct {
	ContentDir    string `yaml:"content_dir"`
	Pattern       string `yaml:"pattern"`
	Recursive     bool   `yaml:"recursive"`
	DefaultFlavor string `yaml:"default_flavor"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Features toggles module functionality.
type Features struct {
	Logger bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used by the package level shortcuts.
func DefaultConfig() Config {
	return Config{
		Parser: ParserConfig{},
		Live: LiveConfig{
			Enabled:    true,
			Sentinels:  []string{"air-live", "airtag_rendered"},
			ErrorClass: "language-air-live-error",
			Namespace:  "air",
		},
		Highlight: HighlightConfig{
			Style: "github",
		},
		Documents: DocumentsConfig{
			ContentDir:    "content",
			Pattern:       "*.md",
			Recursive:     true,
			DefaultFlavor: FlavorStandard,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Live.Enabled {
		if len(nonBlank(cfg.Live.Sentinels)) == 0 {
			return ErrLiveSentinelRequired
		}
		if strings.TrimSpace(cfg.Live.ErrorClass) == "" {
			return ErrLiveErrorClassRequired
		}
		if ns := strings.TrimSpace(cfg.Live.Namespace); ns != "" && !isIdentifier(ns) {
			return fmt.Errorf("%w: %s", ErrLiveNamespaceInvalid, ns)
		}
	}
	if cfg.Highlight.Enabled {
		if style := strings.TrimSpace(cfg.Highlight.Style); style != "" {
			if _, ok := styles.Registry[style]; !ok {
				return fmt.Errorf("%w: %s", ErrHighlightStyleUnknown, style)
			}
		}
	}
	if flavor := strings.TrimSpace(cfg.Documents.DefaultFlavor); flavor != "" && !IsFlavor(flavor) {
		return fmt.Errorf("%w: %s", ErrFlavorUnknown, flavor)
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// IsFlavor reports whether name is one of the known flavor names.
func IsFlavor(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FlavorStandard, FlavorProse, FlavorLive, FlavorHighlighted:
		return true
	default:
		return false
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return name != ""
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
