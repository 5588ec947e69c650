package integration

import (
	"errors"
	"fmt"
)

// ManifestNotFoundError is recorded when a manifest is absent from the archive
type ManifestNotFoundError struct {
	Name string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("No file %s found", e.Name)
}

// SchemaValidationError is returned when a document does not fit its XSD
type SchemaValidationError struct {
	Schema string
	Detail string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("document does not fit schema %s (%s)", e.Schema, e.Detail)
}

// templateMismatchMessage is the section-level message of a manifest failing validation
func templateMismatchMessage(manifest string, err *SchemaValidationError) string {
	return fmt.Sprintf("File %s does not fit the required template (%s)", manifest, err.Detail)
}

// ReferentialIntegrityError reports a questionnaire model referencing a missing entity
type ReferentialIntegrityError struct {
	Kind string // campaign or nomenclature
	ID   string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("The %s '%s' does not exist", e.Kind, e.ID)
}

// DuplicateEntityError reports a nomenclature that already exists
type DuplicateEntityError struct {
	Kind string
	ID   string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("A %s with this id already exists", e.Kind)
}

// PayloadNotFoundError reports a descriptor whose JSON file is not in the archive
type PayloadNotFoundError struct {
	Kind     string
	FileName string
}

func (e *PayloadNotFoundError) Error() string {
	return fmt.Sprintf("%s file '%s' could not be found in input zip", e.Kind, e.FileName)
}

// PayloadParseError reports a JSON file that does not hold the expected document
type PayloadParseError struct {
	FileName string
	Err      error
}

func (e *PayloadParseError) Error() string {
	return fmt.Sprintf("Could not parse json in file '%s'", e.FileName)
}

func (e *PayloadParseError) Unwrap() error {
	return e.Err
}

// isUnitError reports whether err only fails the current entity. Any other
// error aborts the whole integration.
func isUnitError(err error) bool {
	var (
		refErr      *ReferentialIntegrityError
		dupErr      *DuplicateEntityError
		notFoundErr *PayloadNotFoundError
		parseErr    *PayloadParseError
	)
	return errors.As(err, &refErr) ||
		errors.As(err, &dupErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &parseErr)
}
