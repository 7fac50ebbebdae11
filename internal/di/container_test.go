package di

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	worklogcmd "github.com/goliatone/go-worklog/internal/commands/worklog"
	"github.com/goliatone/go-worklog/internal/logging/console"
	"github.com/goliatone/go-worklog/internal/logging/gologger"
	"github.com/goliatone/go-worklog/internal/render"
	"github.com/goliatone/go-worklog/internal/runtimeconfig"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Output.Dir = ""
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrOutputDirRequired) {
		t.Fatalf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestConfigureLoggerProviderDefaultsToConsole(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.LoggerProvider().(*console.Provider); !ok {
		t.Fatalf("expected console provider, got %T", c.LoggerProvider())
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", c.LoggerProvider())
	}
}

func TestConfigureConvertersFollowsEngine(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.DocumentConverter().(*render.LiteConverter); !ok {
		t.Fatalf("expected lite document converter, got %T", c.DocumentConverter())
	}
	html, err := c.SectionConverter().Convert("one\ntwo")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if html != "<p>one</p>\n<p>two</p>" {
		t.Fatalf("expected one paragraph per line for sections, got %q", html)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Render.Engine = "goldmark"
	c, err = NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.DocumentConverter().(*render.GoldmarkConverter); !ok {
		t.Fatalf("expected goldmark converter, got %T", c.DocumentConverter())
	}
}

type countingRegistry struct{ count int }

func (r *countingRegistry) RegisterCommand(any) error {
	r.count++
	return nil
}

func TestContainerBuildsThroughCommandHandlers(t *testing.T) {
	root := t.TempDir()
	logs := filepath.Join(root, "log_data", "2025")
	if err := os.MkdirAll(logs, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logs, "2025-01-02.md"), []byte("---\ndate: 2025-01-02\n---\n## 工作情况\n- task A\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "none"
	reg := &countingRegistry{}
	clock := func() time.Time { return time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC) }

	c, err := NewContainer(cfg, WithClock(clock), WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if reg.count != 2 {
		t.Fatalf("expected both handlers registered, got %d", reg.count)
	}

	out := filepath.Join(root, "public", "data")
	msg := worklogcmd.BuildLogsCommand{SourceDir: filepath.Join(root, "log_data"), OutputDir: out}
	if err := c.Handlers().Logs.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m interfaces.LogManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if m.LastUpdated != "2025-01-03T00:00:00.000Z" || len(m.Logs) != 1 || m.Logs[0].File != "2025/2025-01-02.md" {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if !strings.HasPrefix(m.Logs[0].Content, "## 工作情况") {
		t.Fatalf("unexpected content %q", m.Logs[0].Content)
	}
}

func TestContainerGatesDisabledPipeline(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "none"
	cfg.Articles.Enabled = false

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	msg := worklogcmd.BuildArticlesCommand{SourceDir: t.TempDir(), OutputDir: t.TempDir()}
	if err := c.Handlers().Articles.Execute(context.Background(), msg); err == nil {
		t.Fatal("expected disabled articles pipeline to fail")
	}
}
