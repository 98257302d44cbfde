// Package fileutils provides the file and path operations used by the converter.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// CSVExtension is the input extension replaced when deriving an output path.
	CSVExtension = ".csv"

	// QIFExtension is the extension of every output file.
	QIFExtension = ".qif"
)

// QIFPath derives the output path for an input file: a trailing ".csv" in any
// case is replaced with ".qif", otherwise ".qif" is appended.
func QIFPath(input string) string {
	if n := len(input) - len(CSVExtension); n >= 0 && strings.EqualFold(input[n:], CSVExtension) {
		return input[:n] + QIFExtension
	}
	return input + QIFExtension
}

// QIFPathIn derives the output path for input inside outputDir.
func QIFPathIn(outputDir, input string) string {
	return filepath.Join(outputDir, QIFPath(filepath.Base(input)))
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// OpenFile opens a file for reading.
func OpenFile(filePath string) (*os.File, error) {
	if DirectoryExists(filePath) {
		return nil, fmt.Errorf("%s is a directory", filePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// CreateFile creates or truncates a file for writing, creating parent
// directories as needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// ListFilesWithExtension returns the files under dirPath whose extension
// matches extension case-insensitively, sorted by path.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
