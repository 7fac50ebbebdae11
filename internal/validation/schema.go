package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrSchemaUnknown    = errors.New("schema unknown")
)

// Kind names one of the published JSON documents.
type Kind string

const (
	KindLogManifest     Kind = "log_manifest"
	KindArticleManifest Kind = "article_manifest"
	KindArticleContent  Kind = "article_content"
)

var kinds = []Kind{KindLogManifest, KindArticleManifest, KindArticleContent}

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError reports every issue found in one document.
type DocumentValidationError struct {
	Kind   Kind
	Issues []ValidationIssue
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Kind, e.Cause.Error())
		}
		return fmt.Sprintf("%s: %s", e.Kind, ErrSchemaValidation.Error())
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Validator checks encoded documents against the embedded schemas.
type Validator struct {
	schemas map[Kind]*jsonschema.Schema
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a shared Validator compiled on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator()
	})
	return defaultValidator, defaultErr
}

// NewValidator compiles every embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	for _, kind := range kinds {
		raw, err := schemaFS.ReadFile(schemaPath(kind))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, kind, err)
		}
		if err := compiler.AddResource(schemaPath(kind), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, kind, err)
		}
	}

	v := &Validator{schemas: make(map[Kind]*jsonschema.Schema, len(kinds))}
	for _, kind := range kinds {
		compiled, err := compiler.Compile(schemaPath(kind))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, kind, err)
		}
		v.schemas[kind] = compiled
	}
	return v, nil
}

// Validate decodes document and checks it against the schema for kind.
func (v *Validator) Validate(kind Kind, document []byte) error {
	compiled, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaUnknown, kind)
	}
	var payload any
	if err := json.Unmarshal(document, &payload); err != nil {
		return &DocumentValidationError{Kind: kind, Cause: err}
	}
	if err := compiled.Validate(payload); err != nil {
		return &DocumentValidationError{
			Kind:   kind,
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func schemaPath(kind Kind) string {
	return "schemas/" + string(kind) + ".json"
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
