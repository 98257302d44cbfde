// Package batch handles batch conversion of a directory of statements
package batch

import (
	"fmt"

	"dtarbill/csv-qif/cmd/root"
	"dtarbill/csv-qif/internal/logging"
	"dtarbill/csv-qif/internal/validation"

	"github.com/spf13/cobra"
)

// InputDir and OutputDir hold the batch flag values
var (
	InputDir  string
	OutputDir string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every CSV statement in a directory to QIF",
	Long: `Convert every .csv file under an input directory to QIF.

Files are converted one after another. Each output file is written to the
output directory, or next to its input when no output directory is given.
A file that fails does not stop the batch; the command fails at the end.

Example:
  csv-qif batch -i statements/ -d qif/`,
	Args: cobra.NoArgs,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&InputDir, "input", "i", "", "Input directory containing CSV files (required)")
	Cmd.Flags().StringVarP(&OutputDir, "dir", "d", "", "Output directory for QIF files")
	_ = Cmd.MarkFlagRequired("input")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputDir(InputDir); err != nil {
		return err
	}
	root.Log.Info("Batch command called",
		logging.Field{Key: "input_dir", Value: InputDir},
		logging.Field{Key: "output_dir", Value: OutputDir})

	count, err := root.NewConverter().BatchConvert(InputDir, OutputDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d file(s)\n", count)
	if err != nil {
		return fmt.Errorf("batch conversion failed: %w", err)
	}
	return nil
}
