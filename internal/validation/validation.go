// Package validation checks command arguments before any file is read.
package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"dtarbill/csv-qif/internal/report"
)

// ReportFormats lists the formats accepted by the columns report.
var ReportFormats = []string{
	report.FormatText,
	report.FormatCSV,
	report.FormatYAML,
	report.FormatJSON,
	report.FormatDump,
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	if slices.Contains(ReportFormats, strings.ToLower(format)) {
		return nil
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are %s",
		format, strings.Join(ReportFormats, ", "))
}

// IsValidInputDir checks that path exists and is a directory.
func IsValidInputDir(path string) error {
	if path == "" {
		return fmt.Errorf("input directory is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

// IsValidMaxColumns checks the header column limit.
func IsValidMaxColumns(n int) error {
	if n < 1 {
		return fmt.Errorf("max columns must be at least 1, got: %d", n)
	}
	return nil
}
