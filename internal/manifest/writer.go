package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/internal/validation"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

const (
	LogManifestFile     = "manifest.json"
	ArticleManifestFile = "articles.json"
	ArticleContentDir   = "articles"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var ErrNothingToWrite = errors.New("manifest: nothing to write")

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger that receives write progress.
func WithWriterLogger(logger interfaces.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logging.Ensure(logger)
	}
}

// WithSchemaValidation toggles checking documents against the embedded
// schemas before they are written. It is on by default.
func WithSchemaValidation(enabled bool) WriterOption {
	return func(w *Writer) {
		w.validate = enabled
	}
}

// WithPrune toggles removal of per-article documents whose id is no longer
// part of the build. It is on by default.
func WithPrune(enabled bool) WriterOption {
	return func(w *Writer) {
		w.prune = enabled
	}
}

// Writer persists built manifests. Every file is written to a temporary
// sibling and renamed into place, so readers see either the previous or the
// new document.
type Writer struct {
	logger   interfaces.Logger
	validate bool
	prune    bool
}

// NewWriter constructs a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		logger:   logging.NoOp(),
		validate: true,
		prune:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

type pendingFile struct {
	path string
	data []byte
}

// WriteLogs writes m to outDir/manifest.json and returns the written path.
func (w *Writer) WriteLogs(ctx context.Context, outDir string, m *interfaces.LogManifest) (string, error) {
	if m == nil {
		return "", ErrNothingToWrite
	}
	data, err := w.encode(validation.KindLogManifest, m)
	if err != nil {
		return "", err
	}
	target := filepath.Join(outDir, LogManifestFile)
	if err := w.flush(ctx, []pendingFile{{path: target, data: data}}); err != nil {
		return "", err
	}
	w.logger.Info("manifest.write.completed", "path", target, "count", len(m.Logs))
	return target, nil
}

// WriteArticles writes the article index to outDir/articles.json and one
// outDir/articles/<id>.json per article. Every document is encoded and
// validated before the first file is touched. Per-article documents are
// written ahead of the index so the index never names a missing file.
func (w *Writer) WriteArticles(ctx context.Context, outDir string, build *interfaces.ArticleBuild) ([]string, error) {
	if build == nil || build.Manifest == nil {
		return nil, ErrNothingToWrite
	}

	contentDir := filepath.Join(outDir, ArticleContentDir)
	ids := make([]string, 0, len(build.Manifest.Articles))
	for _, article := range build.Manifest.Articles {
		ids = append(ids, article.ID)
	}

	pending := make([]pendingFile, 0, len(ids)+1)
	for _, id := range ids {
		content, ok := build.Contents[id]
		if !ok {
			return nil, fmt.Errorf("manifest: article %q has no content document", id)
		}
		data, err := w.encode(validation.KindArticleContent, content)
		if err != nil {
			return nil, fmt.Errorf("manifest: article %q: %w", id, err)
		}
		pending = append(pending, pendingFile{path: filepath.Join(contentDir, id+".json"), data: data})
	}

	index, err := w.encode(validation.KindArticleManifest, build.Manifest)
	if err != nil {
		return nil, err
	}
	pending = append(pending, pendingFile{path: filepath.Join(outDir, ArticleManifestFile), data: index})

	if err := os.MkdirAll(contentDir, dirPerm); err != nil {
		return nil, fmt.Errorf("manifest: create %s: %w", contentDir, err)
	}
	if err := w.flush(ctx, pending); err != nil {
		return nil, err
	}
	if w.prune {
		if err := w.pruneStale(contentDir, ids); err != nil {
			return nil, err
		}
	}

	written := make([]string, 0, len(pending))
	for _, file := range pending {
		written = append(written, file.path)
	}
	w.logger.Info("manifest.write.completed", "path", filepath.Join(outDir, ArticleManifestFile), "count", len(ids))
	return written, nil
}

// Encode renders v the way every published document is rendered: two space
// indentation, no HTML escaping and a trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Writer) encode(kind validation.Kind, v any) ([]byte, error) {
	data, err := Encode(v)
	if err != nil {
		return nil, fmt.Errorf("manifest: encode %s: %w", kind, err)
	}
	if !w.validate {
		return data, nil
	}
	validator, err := validation.Default()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(kind, data); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return data, nil
}

func (w *Writer) flush(ctx context.Context, files []pendingFile) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeAtomic(file.path, file.data); err != nil {
			return err
		}
		w.logger.Debug("manifest.file.written", "path", file.path, "bytes", len(file.data))
	}
	return nil
}

func (w *Writer) pruneStale(dir string, keep []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("manifest: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if slices.Contains(keep, strings.TrimSuffix(name, ".json")) {
			continue
		}
		stale := filepath.Join(dir, name)
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("manifest: remove stale %s: %w", stale, err)
		}
		w.logger.Debug("manifest.file.pruned", "path", stale)
	}
	return nil
}

// writeAtomic writes data to a temporary file beside path and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("manifest: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("manifest: create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("manifest: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("manifest: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("manifest: rename %s: %w", path, err)
	}
	return nil
}
