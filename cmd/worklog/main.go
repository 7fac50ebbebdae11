package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-worklog"
)

var moduleBuilder = worklog.New

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("worklog build: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("worklog", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	logsDir := fs.String("logs-dir", "", "Markdown work log root (overrides config)")
	articlesDir := fs.String("articles-dir", "", "Markdown article root (overrides config)")
	outDir := fs.String("out", "", "Directory receiving the JSON documents (overrides config)")
	only := fs.String("only", "", "Build a single pipeline: logs or articles")
	dryRun := fs.Bool("dry-run", false, "Build without writing any file")
	logLevel := fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "", "go-logger output format: json, console, pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 && fs.Arg(0) != "build" {
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	cfg, err := worklog.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	override(&cfg.Logs.Dir, *logsDir)
	override(&cfg.Articles.Dir, *articlesDir)
	override(&cfg.Output.Dir, *outDir)
	override(&cfg.Logging.Level, *logLevel)
	if format := strings.TrimSpace(*logFormat); format != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = format
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	return module.Build(ctx, worklog.BuildOptions{Only: strings.TrimSpace(*only), DryRun: *dryRun})
}

func override(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}
