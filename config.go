package worklog

import "github.com/goliatone/go-worklog/internal/runtimeconfig"

var (
	ErrNoPipelineEnabled      = runtimeconfig.ErrNoPipelineEnabled
	ErrLogsDirRequired        = runtimeconfig.ErrLogsDirRequired
	ErrArticlesDirRequired    = runtimeconfig.ErrArticlesDirRequired
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrFallbackDateInvalid    = runtimeconfig.ErrFallbackDateInvalid
	ErrRenderEngineUnknown    = runtimeconfig.ErrRenderEngineUnknown
	ErrTimeoutInvalid         = runtimeconfig.ErrTimeoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	SourceConfig  = runtimeconfig.SourceConfig
	ArticleConfig = runtimeconfig.ArticleConfig
	OutputConfig  = runtimeconfig.OutputConfig
	RenderConfig  = runtimeconfig.RenderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads an optional YAML file and WORKLOG_* overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
