package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-worklog"
	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/internal/markdown"
	"github.com/goliatone/go-worklog/internal/render"
)

type previewOptions struct {
	configPath string
	path       string
	mode       string
	engine     string
	asJSON     bool
	css        bool
}

func main() {
	var opts previewOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (render settings)")
	flag.StringVar(&opts.path, "file", "", "Markdown file to preview")
	flag.StringVar(&opts.mode, "mode", "sections", "Render mode: sections or document")
	flag.StringVar(&opts.engine, "engine", "", "Markdown engine: lite or goldmark (overrides config)")
	flag.BoolVar(&opts.asJSON, "json", false, "Print sections as JSON")
	flag.BoolVar(&opts.css, "css", false, "Print the code highlighting stylesheet and exit")
	flag.Parse()

	if opts.path == "" && !opts.css {
		log.Fatalf("--file is required")
	}
	if err := preview(os.Stdout, opts); err != nil {
		log.Fatalf("worklog preview: %v", err)
	}
}

func preview(w io.Writer, opts previewOptions) error {
	cfg, err := worklog.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if engine := strings.TrimSpace(opts.engine); engine != "" {
		cfg.Render.Engine = engine
	}
	if cfg.Logging.Level == "" || cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}

	if opts.css {
		css, err := render.HighlightCSS(cfg.Render.HighlightStyle)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, css)
		return err
	}

	module, err := worklog.New(cfg)
	if err != nil {
		return err
	}
	logger := logging.RenderLogger(module.Container().LoggerProvider())

	source, err := os.ReadFile(opts.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.path, err)
	}
	doc, err := markdown.BuildDocument(opts.path, source)
	if err != nil {
		return err
	}

	switch opts.mode {
	case "document":
		html, err := module.RenderDocument(doc.Body)
		if err != nil {
			return err
		}
		title := markdown.InferTitle(doc.Body, markdown.ArticleID(opts.path))
		fmt.Fprintf(w, "Title: %s\nDate: %s\n\n%s\n", title, doc.ArticleDate(cfg.Articles.FallbackDate), html)
		return nil
	case "sections":
		sections, err := module.RenderSections(doc.Body)
		if err != nil {
			return err
		}
		if len(sections) == 0 {
			logger.Warn("render.sections.empty", "source_path", opts.path)
		}
		if opts.asJSON {
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(sections)
		}
		fmt.Fprintf(w, "Date: %s\n", doc.LogDate())
		for _, section := range sections {
			fmt.Fprintf(w, "\n%s %s\n%s\n", section.Icon, section.Title, section.Content)
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}
