package worklogcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	buildLogsMessageType     = "worklog.build_logs"
	buildArticlesMessageType = "worklog.build_articles"
)

// BuildLogsCommand rebuilds the work log manifest from SourceDir into
// OutputDir/manifest.json.
type BuildLogsCommand struct {
	// SourceDir is the content root scanned for markdown logs.
	SourceDir string `json:"source_dir"`
	// OutputDir receives manifest.json.
	OutputDir string `json:"output_dir"`
	// DryRun builds the manifest without writing it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildLogsCommand) Type() string { return buildLogsMessageType }

// Validate ensures both directories are present.
func (cmd BuildLogsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SourceDir, validation.Required, notBlank(buildLogsMessageType+".source_dir_required", "source directory is required")),
		validation.Field(&cmd.OutputDir, validation.Required, notBlank(buildLogsMessageType+".output_dir_required", "output directory is required")),
	)
}

// BuildArticlesCommand rebuilds the article index and per-article documents
// from SourceDir into OutputDir.
type BuildArticlesCommand struct {
	// SourceDir is the content root scanned for markdown articles.
	SourceDir string `json:"source_dir"`
	// OutputDir receives articles.json and the articles/ directory.
	OutputDir string `json:"output_dir"`
	// DryRun builds the documents without writing them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildArticlesCommand) Type() string { return buildArticlesMessageType }

// Validate ensures both directories are present and distinct.
func (cmd BuildArticlesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SourceDir, validation.Required, notBlank(buildArticlesMessageType+".source_dir_required", "source directory is required")),
		validation.Field(&cmd.OutputDir,
			validation.Required,
			notBlank(buildArticlesMessageType+".output_dir_required", "output directory is required"),
			validation.By(func(value any) error {
				if strings.TrimSpace(value.(string)) == strings.TrimSpace(cmd.SourceDir) {
					return validation.NewError(buildArticlesMessageType+".output_dir_overlaps", "output directory must differ from the source directory")
				}
				return nil
			}),
		),
	)
}

func notBlank(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}
