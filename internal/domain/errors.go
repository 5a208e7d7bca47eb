package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrTenantNotFound      = errors.New("tenant not found for this business number")
	ErrMissingInput        = errors.New("nothing to process: text and image both absent")
	ErrInvalidImageMIME    = errors.New("invalid image mime type")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrExtractionFailed    = errors.New("document extraction failed")
	ErrTempFileNotFound    = errors.New("temporary file not found")
	ErrTempPathIsDir       = errors.New("temporary path is a directory, not a file")
	ErrNotAuthorized       = errors.New("driver not authorized for this record")
	ErrDuplicateCPF        = errors.New("cpf already registered")
	ErrArchiveFailed       = errors.New("file archive to storage failed")
)

// TenantConfigError means the registry returned a tenant record with
// required connection fields missing.
type TenantConfigError struct {
	Missing []string
}

func (e *TenantConfigError) Error() string {
	return fmt.Sprintf("tenant record incomplete, missing fields: %s", strings.Join(e.Missing, ", "))
}

// ValidationError carries a field-level message meant to be read verbatim
// by the person correcting their own submission.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError creates a ValidationError for a named field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
