package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/internal/markdown"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// TimestampLayout renders lastUpdated as UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	pipelineLogs     = "logs"
	pipelineArticles = "articles"
)

var (
	ErrRootRequired       = errors.New("manifest: content root is required")
	ErrDuplicateArticleID = errors.New("manifest: duplicate article id")
)

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the clock used for lastUpdated.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithLogger sets the logger that receives build progress.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *Builder) {
		b.logger = logging.Ensure(logger)
	}
}

// WithArticleFallbackDate overrides the date given to undated articles.
func WithArticleFallbackDate(date string) Option {
	return func(b *Builder) {
		if trimmed := strings.TrimSpace(date); trimmed != "" {
			b.fallbackDate = trimmed
		}
	}
}

// WithBuildIDs overrides how build identifiers are generated.
func WithBuildIDs(next func() string) Option {
	return func(b *Builder) {
		if next != nil {
			b.nextID = next
		}
	}
}

// Builder assembles manifests from markdown sources. It keeps no state
// between builds and is safe for sequential reuse.
type Builder struct {
	clock        func() time.Time
	logger       interfaces.Logger
	fallbackDate string
	nextID       func() string
}

// NewBuilder constructs a Builder using the wall clock and a no-op logger
// unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		clock:        time.Now,
		logger:       logging.NoOp(),
		fallbackDate: markdown.ArticleFallbackDate,
		nextID:       uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// FormatTimestamp renders ts using TimestampLayout.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(TimestampLayout)
}

// BuildLogs builds the work log manifest for the directory at root. A
// missing root yields an empty manifest.
func (b *Builder) BuildLogs(ctx context.Context, root string) (*interfaces.LogManifest, error) {
	fsys, err := dirFS(root)
	if err != nil {
		return nil, err
	}
	return b.BuildLogsFS(ctx, fsys)
}

// BuildLogsFS builds the work log manifest for every markdown file in fsys.
func (b *Builder) BuildLogsFS(ctx context.Context, fsys fs.FS) (*interfaces.LogManifest, error) {
	ctx, logger := b.start(ctx, pipelineLogs)

	logs := []interfaces.LogEntry{}
	err := b.each(ctx, fsys, logger, func(doc *markdown.Document) error {
		logs = append(logs, interfaces.LogEntry{
			Date:    entryDate(doc.LogDate(), doc.Path),
			File:    doc.Path,
			Content: doc.Body,
		})
		return nil
	})
	if err != nil {
		logger.Error("manifest.build.failed", "error", err)
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})

	manifest := &interfaces.LogManifest{
		LastUpdated: FormatTimestamp(b.clock()),
		Logs:        logs,
	}
	logger.Info("manifest.build.completed", "count", len(logs))
	return manifest, nil
}

// BuildArticles builds the article index and per-article documents for the
// directory at root.
func (b *Builder) BuildArticles(ctx context.Context, root string) (*interfaces.ArticleBuild, error) {
	fsys, err := dirFS(root)
	if err != nil {
		return nil, err
	}
	return b.BuildArticlesFS(ctx, fsys)
}

// BuildArticlesFS builds the article index and per-article documents for
// every markdown file in fsys. Two sources resolving to the same id fail the
// build since they would share an output file.
func (b *Builder) BuildArticlesFS(ctx context.Context, fsys fs.FS) (*interfaces.ArticleBuild, error) {
	ctx, logger := b.start(ctx, pipelineArticles)

	articles := []interfaces.ArticleEntry{}
	contents := map[string]interfaces.ArticleContent{}
	sources := map[string]string{}

	err := b.each(ctx, fsys, logger, func(doc *markdown.Document) error {
		id := markdown.ArticleID(doc.Path)
		if id == "" {
			return fmt.Errorf("manifest: article %s has an empty id", doc.Path)
		}
		if previous, ok := sources[id]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateArticleID, id, previous, doc.Path)
		}
		sources[id] = doc.Path
		if !markdown.IsSlugID(id) {
			logger.Warn("manifest.article.id_not_slug", "id", id, "source_path", doc.Path)
		}

		date := doc.ArticleDate(b.fallbackDate)
		articles = append(articles, interfaces.ArticleEntry{
			ID:      id,
			Title:   markdown.InferTitle(doc.Body, id),
			Summary: markdown.InferSummary(doc.Body),
			Date:    date,
			Tags:    markdown.Tags(doc.FrontMatter),
		})
		contents[id] = interfaces.ArticleContent{
			Date:    date,
			Content: doc.Body,
			URL:     markdown.SourceURL(doc.FrontMatter),
		}
		return nil
	})
	if err != nil {
		logger.Error("manifest.build.failed", "error", err)
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})

	build := &interfaces.ArticleBuild{
		Manifest: &interfaces.ArticleManifest{
			LastUpdated: FormatTimestamp(b.clock()),
			Articles:    articles,
		},
		Contents: contents,
	}
	logger.Info("manifest.build.completed", "count", len(articles))
	return build, nil
}

// start tags ctx with a fresh build id so every context bound logger of the
// run, including command loggers downstream, reports it.
func (b *Builder) start(ctx context.Context, pipeline string) (context.Context, interfaces.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.ContextWithBuild(ctx, pipeline, b.nextID())
	logger := b.logger.WithContext(ctx)
	logger.Info("manifest.build.start")
	return ctx, logger
}

// each parses every markdown file in fsys in walk order and hands it to fn.
// The first error stops the walk.
func (b *Builder) each(ctx context.Context, fsys fs.FS, logger interfaces.Logger, fn func(*markdown.Document) error) error {
	files, err := markdown.FindFiles(fsys)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := markdown.LoadDocument(fsys, path)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		logging.WithBuildContext(logger, "", "", path).Debug("manifest.file.parsed", "has_front_matter", len(doc.FrontMatter) > 0)
	}
	return nil
}

func dirFS(root string) (fs.FS, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrRootRequired
	}
	return os.DirFS(root), nil
}

// entryDate keeps every entry dated even when the file name has no stem.
func entryDate(date, path string) string {
	if date == "" {
		return path
	}
	return date
}
