// Package columns prints how csv-qif classifies the header of a statement
package columns

import (
	"dtarbill/csv-qif/cmd/root"
	"dtarbill/csv-qif/internal/report"
	"dtarbill/csv-qif/internal/validation"

	"github.com/spf13/cobra"
)

// Format is the report format selected with --format
var Format string

// Cmd represents the columns command
var Cmd = &cobra.Command{
	Use:   "columns <file.csv>",
	Short: "Show how the CSV header columns map to QIF fields",
	Long: `Show how the header columns of a CSV statement map to QIF fields.

Only the header line is read and no output file is written. Each recognized
column is listed with its QIF tag, followed by the fields that will be derived
for every row because the file does not supply them.

Formats: text (default), csv, yaml, json, dump.`,
	Args: cobra.ExactArgs(1),
	RunE: columnsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", report.FormatText, "Report format (text, csv, yaml, json, dump)")
}

func columnsFunc(cmd *cobra.Command, args []string) error {
	input := args[0]
	if err := validation.IsValidReportFormat(Format); err != nil {
		return err
	}

	layout, err := root.NewConverter().Layout(input)
	if err != nil {
		return err
	}

	out, err := report.NewReportGenerator(root.Log).GenerateReport(report.NewColumnReport(input, layout), Format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
