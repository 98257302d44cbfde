package qif

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// HeaderLine opens every investment QIF file.
	HeaderLine = "!Type:Invst"

	// EndOfRecord terminates each transaction.
	EndOfRecord = "^"
)

// Writer emits QIF investment records to an underlying writer.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered QIF writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the file type line. Call it once, before any record.
func (w *Writer) WriteHeader() error {
	return w.writeLine(HeaderLine)
}

// WriteRecord writes the record's fields followed by the end-of-record marker.
func (w *Writer) WriteRecord(rec Record) error {
	for _, f := range rec.Fields {
		if err := w.writeLine(f.Line()); err != nil {
			return err
		}
	}
	return w.writeLine(EndOfRecord)
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("error flushing QIF output: %w", err)
	}
	return nil
}

func (w *Writer) writeLine(s string) error {
	if _, err := w.w.WriteString(s); err != nil {
		return fmt.Errorf("error writing QIF line: %w", err)
	}
	return w.w.WriteByte('\n')
}
