package airmd

import "github.com/goliatone/go-airmd/internal/runtimeconfig"

var (
	ErrLiveSentinelRequired    = runtimeconfig.ErrLiveSentinelRequired
	ErrLiveErrorClassRequired  = runtimeconfig.ErrLiveErrorClassRequired
	ErrLiveNamespaceInvalid    = runtimeconfig.ErrLiveNamespaceInvalid
	ErrHighlightStyleUnknown   = runtimeconfig.ErrHighlightStyleUnknown
	ErrFlavorUnknown           = runtimeconfig.ErrFlavorUnknown
	ErrCommandTimeoutInvalid   = runtimeconfig.ErrCommandTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ParserConfig    = runtimeconfig.ParserConfig
	LiveConfig      = runtimeconfig.LiveConfig
	HighlightConfig = runtimeconfig.HighlightConfig
	DocumentsConfig = runtimeconfig.DocumentsConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

const (
	FlavorStandard    = runtimeconfig.FlavorStandard
	FlavorProse       = runtimeconfig.FlavorProse
	FlavorLive        = runtimeconfig.FlavorLive
	FlavorHighlighted = runtimeconfig.FlavorHighlighted
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
