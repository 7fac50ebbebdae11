package commands

import (
	"context"
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-worklog/internal/manifest"
	"github.com/goliatone/go-worklog/internal/validation"
)

// Text codes attached to build command errors. Operators grep for these in
// CI output, so they are stable.
const (
	CodeInvalidCommand   = "WORKLOG_COMMAND_INVALID"
	CodeBuildCanceled    = "WORKLOG_BUILD_CANCELED"
	CodeBuildTimeout     = "WORKLOG_BUILD_TIMEOUT"
	CodeBuildInterrupted = "WORKLOG_BUILD_INTERRUPTED"
	CodeSourceMissing    = "WORKLOG_SOURCE_MISSING"
	CodeSourceUnreadable = "WORKLOG_SOURCE_UNREADABLE"
	CodeDuplicateArticle = "WORKLOG_DUPLICATE_ARTICLE"
	CodeSchemaRejected   = "WORKLOG_SCHEMA_REJECTED"
	CodeNothingToWrite   = "WORKLOG_NOTHING_TO_WRITE"
	CodeBuildFailed      = "WORKLOG_BUILD_FAILED"
)

// failureCodes is checked in order; the first match names the failure.
var failureCodes = []struct {
	target error
	code   string
}{
	{manifest.ErrRootRequired, CodeSourceMissing},
	{manifest.ErrDuplicateArticleID, CodeDuplicateArticle},
	{validation.ErrSchemaValidation, CodeSchemaRejected},
	{manifest.ErrNothingToWrite, CodeNothingToWrite},
	{fs.ErrPermission, CodeSourceUnreadable},
	{fs.ErrNotExist, CodeSourceMissing},
}

// FailureCode classifies a build failure into one of the Code constants.
func FailureCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return CodeBuildCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeBuildTimeout
	}
	for _, candidate := range failureCodes {
		if errors.Is(err, candidate.target) {
			return candidate.code
		}
	}
	return CodeBuildFailed
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "build command rejected").
		WithTextCode(CodeInvalidCommand)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	code := FailureCode(err)
	if code == CodeBuildFailed {
		code = CodeBuildInterrupted
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "worklog build interrupted").
		WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "worklog build failed").
		WithTextCode(FailureCode(err))
}
