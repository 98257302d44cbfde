// Package parsererror defines the error types returned while converting a CSV statement.
package parsererror

import "fmt"

// ParseError represents a field value that could not be parsed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RowError locates a failure at a line of the input file.
type RowError struct {
	FilePath string
	Line     int
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.FilePath, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// FileError represents a file that could not be opened or created.
type FileError struct {
	Op       string
	FilePath string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot %s file '%s': %v", e.Op, e.FilePath, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
