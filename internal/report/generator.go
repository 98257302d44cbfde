// Package report renders the header classification of a statement.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"dtarbill/csv-qif/internal/logging"
	"dtarbill/csv-qif/internal/qif"

	"github.com/gocarina/gocsv"
	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatDump = "dump"
)

// ColumnRow is one classified header column.
type ColumnRow struct {
	Position   int    `csv:"position" yaml:"position" json:"position"`
	Name       string `csv:"name" yaml:"name" json:"name"`
	Role       string `csv:"role" yaml:"role" json:"role"`
	Tag        string `csv:"tag" yaml:"tag" json:"tag"`
	FundPrefix bool   `csv:"fund_prefix" yaml:"fund_prefix" json:"fund_prefix"`
}

// ColumnReport describes a header and the fields that will be derived for every row.
type ColumnReport struct {
	File    string      `yaml:"file" json:"file"`
	Columns []ColumnRow `yaml:"columns" json:"columns"`
	Derived []string    `yaml:"derived" json:"derived"`
}

// NewColumnReport builds the report for a classified header.
func NewColumnReport(file string, layout qif.Layout) *ColumnReport {
	r := &ColumnReport{File: file, Columns: make([]ColumnRow, 0, len(layout.Columns))}
	for i, col := range layout.Columns {
		tag := ""
		if col.Role.Emits() {
			tag = string(col.Role.Tag())
		}
		r.Columns = append(r.Columns, ColumnRow{
			Position:   i + 1,
			Name:       col.Name,
			Role:       col.Role.String(),
			Tag:        tag,
			FundPrefix: col.Role == qif.RoleSecurity && layout.FundPrefix,
		})
	}

	p := layout.Presence
	for _, d := range []struct {
		present bool
		role    qif.Role
	}{
		{p.Action, qif.RoleAction},
		{p.Commission, qif.RoleCommission},
		{p.Cleared, qif.RoleCleared},
		{p.TransferAccount, qif.RoleTransferAccount},
		{p.TransferAmount, qif.RoleTransferAmount},
	} {
		if !d.present {
			r.Derived = append(r.Derived, d.role.String())
		}
	}
	return r
}

// ReportGenerator renders column reports.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders report in the given format.
func (g *ReportGenerator) GenerateReport(report *ColumnReport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(report), nil
	case FormatCSV:
		return g.generateCSVReport(report)
	case FormatYAML:
		return g.marshal("YAML", yaml.Marshal, report)
	case FormatJSON:
		return g.marshal("JSON", func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}, report)
	case FormatDump:
		printer := pp.New()
		printer.SetColoringEnabled(false)
		return []byte(printer.Sprint(report) + "\n"), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateTextReport lists recognized columns as "<tag> <name>", then the
// derived fields.
func (g *ReportGenerator) generateTextReport(report *ColumnReport) []byte {
	var b strings.Builder
	for _, c := range report.Columns {
		if c.Tag == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", c.Tag, c.Name)
	}
	if len(report.Derived) > 0 {
		fmt.Fprintf(&b, "derived: %s\n", strings.Join(report.Derived, ", "))
	}
	return []byte(b.String())
}

func (g *ReportGenerator) generateCSVReport(report *ColumnReport) ([]byte, error) {
	out, err := gocsv.MarshalBytes(report.Columns)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) marshal(name string, fn func(interface{}) ([]byte, error), report *ColumnReport) ([]byte, error) {
	out, err := fn(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal " + name + " report")
		return nil, fmt.Errorf("failed to marshal %s report: %w", name, err)
	}
	return out, nil
}
