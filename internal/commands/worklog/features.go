package worklogcmd

// FeatureGates exposes the pipeline toggles read by the handlers. Nil
// functions count as enabled.
type FeatureGates struct {
	LogsEnabled     func() bool
	ArticlesEnabled func() bool
}

func (g FeatureGates) logsEnabled() bool {
	return g.LogsEnabled == nil || g.LogsEnabled()
}

func (g FeatureGates) articlesEnabled() bool {
	return g.ArticlesEnabled == nil || g.ArticlesEnabled()
}
