// Package converter turns a 401(k) activity CSV export into a QIF investment file.
package converter

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"dtarbill/csv-qif/internal/fileutils"
	"dtarbill/csv-qif/internal/logging"
	"dtarbill/csv-qif/internal/parser"
	"dtarbill/csv-qif/internal/parsererror"
	"dtarbill/csv-qif/internal/qif"
)

const (
	expectedFormat = "comma-separated header line"
	readerSource   = "(from reader)"
	maxLineSize    = 1024 * 1024
)

// Options configures a conversion.
type Options struct {
	// MaxColumns caps the header columns considered; zero means qif.DefaultMaxColumns.
	MaxColumns int
	QIF        qif.Options
}

// Stats summarizes a finished conversion.
type Stats struct {
	Rows    int
	Fields  int
	Derived int
}

// Adapter converts CSV statements to QIF.
type Adapter struct {
	parser.BaseParser
	opts Options
}

// NewAdapter creates a converter that logs to logger.
func NewAdapter(logger logging.Logger, opts Options) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		opts:       opts,
	}
}

// Convert reads a CSV statement from r and writes the QIF file to w.
func (a *Adapter) Convert(r io.Reader, w io.Writer) (Stats, error) {
	sc := newScanner(r)
	layout, err := a.readLayout(sc, readerSource)
	if err != nil {
		return Stats{}, err
	}
	return a.writeRecords(sc, layout, w, readerSource)
}

// ConvertFile converts inputFile into outputFile. An empty outputFile is
// derived from inputFile with fileutils.QIFPath. The output file is created
// only once the header line has been read.
func (a *Adapter) ConvertFile(inputFile, outputFile string) (stats Stats, err error) {
	if outputFile == "" {
		outputFile = fileutils.QIFPath(inputFile)
	}
	logger := a.GetLogger().WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
	)
	logger.Info("Converting CSV file to QIF")

	in, err := fileutils.OpenFile(inputFile)
	if err != nil {
		return Stats{}, &parsererror.FileError{Op: "open", FilePath: inputFile, Err: err}
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close input file")
		}
	}()

	sc := newScanner(in)
	layout, err := a.readLayout(sc, inputFile)
	if err != nil {
		return Stats{}, err
	}

	out, err := fileutils.CreateFile(outputFile)
	if err != nil {
		return Stats{}, &parsererror.FileError{Op: "create", FilePath: outputFile, Err: err}
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &parsererror.FileError{Op: "close", FilePath: outputFile, Err: closeErr}
		}
	}()

	stats, err = a.writeRecords(sc, layout, out, inputFile)
	if err != nil {
		return stats, err
	}

	logger.Info("Successfully converted CSV file to QIF",
		logging.Field{Key: logging.FieldCount, Value: stats.Rows})
	return stats, nil
}

// Layout reads only the header of inputFile and returns its classification.
func (a *Adapter) Layout(inputFile string) (qif.Layout, error) {
	in, err := fileutils.OpenFile(inputFile)
	if err != nil {
		return qif.Layout{}, &parsererror.FileError{Op: "open", FilePath: inputFile, Err: err}
	}
	defer func() {
		if err := in.Close(); err != nil {
			a.GetLogger().WithError(err).Warn("Failed to close input file",
				logging.Field{Key: logging.FieldFile, Value: inputFile})
		}
	}()

	return a.readLayout(newScanner(in), inputFile)
}

// ValidateFormat reports whether the header of inputFile has at least one
// recognized column. An empty file is not valid; an unreadable one is an error.
func (a *Adapter) ValidateFormat(inputFile string) (bool, error) {
	layout, err := a.Layout(inputFile)
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			return false, nil
		}
		return false, err
	}
	return layout.Recognized() > 0, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return sc
}

func (a *Adapter) readLayout(sc *bufio.Scanner, source string) (qif.Layout, error) {
	if !sc.Scan() {
		msg := "file is empty"
		if err := sc.Err(); err != nil {
			msg = fmt.Sprintf("cannot read header line: %v", err)
		}
		return qif.Layout{}, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expectedFormat,
			Msg:            msg,
		}
	}

	header := sc.Text()
	logger := a.GetLogger()
	logger.Debug("Read header line", logging.Field{Key: logging.FieldLine, Value: header})

	layout := qif.ParseHeader(header, a.opts.MaxColumns)
	for _, col := range layout.Columns {
		if !col.Role.Emits() {
			continue
		}
		logger.Debug("Classified column",
			logging.Field{Key: logging.FieldTag, Value: string(col.Role.Tag())},
			logging.Field{Key: logging.FieldColumn, Value: col.Name},
			logging.Field{Key: logging.FieldRole, Value: col.Role.String()})
	}
	if layout.Recognized() == 0 {
		logger.Warn("No recognized columns in header; only derived fields will be written",
			logging.Field{Key: logging.FieldFile, Value: source})
	}
	return layout, nil
}

// writeRecords writes the QIF header line and one record per remaining line.
// Lines already written stay in w when a later row fails.
func (a *Adapter) writeRecords(sc *bufio.Scanner, layout qif.Layout, w io.Writer, source string) (Stats, error) {
	var stats Stats
	qw := qif.NewWriter(w)

	if err := qw.WriteHeader(); err != nil {
		return stats, err
	}

	line := 1
	for sc.Scan() {
		line++
		rec, err := qif.Transcribe(layout, sc.Text(), a.opts.QIF)
		if err != nil {
			_ = qw.Flush()
			return stats, &parsererror.RowError{FilePath: source, Line: line, Err: err}
		}
		if err := qw.WriteRecord(rec); err != nil {
			return stats, err
		}
		stats.Rows++
		stats.Fields += len(rec.Fields)
		stats.Derived += rec.Derived
	}

	if err := sc.Err(); err != nil {
		_ = qw.Flush()
		return stats, &parsererror.RowError{FilePath: source, Line: line + 1, Err: err}
	}
	return stats, qw.Flush()
}
