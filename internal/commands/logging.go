package commands

import (
	"strings"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

const (
	commandLoggerRoot    = "worklog.commands"
	defaultCommandFamily = "build"
)

// CommandLogger returns the logger for one command family, named
// worklog.commands.<family>. Entries carry component=command so they read
// apart from builder entries that share a build_id.
func CommandLogger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	family = strings.TrimSpace(family)
	if family == "" {
		family = defaultCommandFamily
	}
	logger := logging.ModuleLogger(provider, commandLoggerRoot+"."+family)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_family": family,
	})
}
