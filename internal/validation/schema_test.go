package validation

import (
	"errors"
	"testing"
)

func TestValidatorAcceptsPublishedDocuments(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	cases := map[Kind]string{
		KindLogManifest:     `{"lastUpdated":"2025-01-02T03:04:05.000Z","logs":[{"date":"2025-01-02","file":"2025/2025-01-02.md","content":"## 工作情况"}]}`,
		KindArticleManifest: `{"lastUpdated":"2025-01-02T03:04:05.000Z","articles":[{"id":"go-tips","title":"Go Tips","summary":"","date":"2099-12-31","tags":[]}]}`,
		KindArticleContent:  `{"date":"2025-01-02","content":"# Go Tips","url":"https://example.com"}`,
	}
	for kind, doc := range cases {
		if err := v.Validate(kind, []byte(doc)); err != nil {
			t.Fatalf("%s: unexpected error %v", kind, err)
		}
	}
}

func TestValidatorReportsIssues(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	doc := `{"lastUpdated":"yesterday","logs":[{"date":"","file":"a.md","content":""}]}`
	err = v.Validate(KindLogManifest, []byte(doc))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 2 {
		t.Fatalf("expected issues for lastUpdated and date, got %+v", issues)
	}
}

func TestValidatorRejectsUnknownKind(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := v.Validate(Kind("feed"), []byte(`{}`)); !errors.Is(err, ErrSchemaUnknown) {
		t.Fatalf("expected ErrSchemaUnknown, got %v", err)
	}
}

func TestValidatorRejectsMalformedJSON(t *testing.T) {
	v, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	err = v.Validate(KindArticleContent, []byte(`{"date":`))
	var docErr *DocumentValidationError
	if !errors.As(err, &docErr) || docErr.Kind != KindArticleContent {
		t.Fatalf("expected DocumentValidationError, got %v", err)
	}
}
