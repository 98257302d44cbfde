// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"dtarbill/csv-qif/internal/config"
	"dtarbill/csv-qif/internal/converter"
	"dtarbill/csv-qif/internal/fileutils"
	"dtarbill/csv-qif/internal/logging"
	"dtarbill/csv-qif/internal/parsererror"
	"dtarbill/csv-qif/internal/qif"
	"dtarbill/csv-qif/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output     string
	Validate   bool
	Strict     bool
	MaxColumns int
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

// UsageText is printed when no input file is given.
var UsageText = fmt.Sprintf("Include CSV filename on command line\n"+
	"The output will be written to the same filename with a %s extension.\n", fileutils.QIFExtension)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is loaded before any command runs
	AppConfig *config.Config

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "csv-qif [file.csv]",
		Short: "Convert a 401(k) activity CSV export to QIF investment transactions.",
		Long: `csv-qif converts a brokerage 401(k) activity CSV export into Quicken
Interchange Format (QIF) investment transactions.

The output is written next to the input with a .qif extension ("data.csv"
becomes "data.qif", "data.txt" becomes "data.txt.qif") unless --output is given.
Columns are recognized by header name; action, commission, cleared status and
cash transfer fields missing from the file are derived for every row.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setup,
		RunE:              convertFunc,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: input path with .qif extension)")
		flags.BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Fail unless the header has at least one recognized column")
		flags.BoolVar(&SharedFlags.Strict, "strict", false, "Reject amounts that are not numbers instead of treating them as 0")
		flags.IntVar(&SharedFlags.MaxColumns, "max-columns", qif.DefaultMaxColumns, "Number of header columns considered")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: csv-qif.yaml in $HOME/.csv-qif, .csv-qif or .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	})
}

func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		Log.WithError(err).Warn("Error loading .env file")
	}

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if f := cmd.Flags().Lookup("max-columns"); f != nil && f.Changed {
		if err := validation.IsValidMaxColumns(SharedFlags.MaxColumns); err != nil {
			return err
		}
		cfg.QIF.MaxColumns = SharedFlags.MaxColumns
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		cfg.QIF.StrictAmounts = SharedFlags.Strict
	}

	AppConfig = cfg
	Log = config.ConfigureLogging(cfg)
	return nil
}

// NewConverter builds a converter from the loaded configuration.
func NewConverter() *converter.Adapter {
	opts := converter.Options{MaxColumns: qif.DefaultMaxColumns}
	if AppConfig != nil {
		opts.MaxColumns = AppConfig.QIF.MaxColumns
		opts.QIF = qif.Options{
			FundPrefix:    AppConfig.QIF.FundPrefix,
			StrictAmounts: AppConfig.QIF.StrictAmounts,
		}
	}
	return converter.NewAdapter(Log, opts)
}

func convertFunc(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(cmd.OutOrStdout(), UsageText)
		return nil
	}

	input := args[0]
	output := SharedFlags.Output
	if output == "" {
		output = fileutils.QIFPath(input)
	}
	Log.Info("Convert command called",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output})

	if fileutils.FileExists(output) {
		Log.Debug("Output file exists and will be overwritten",
			logging.Field{Key: logging.FieldOutputFile, Value: output})
	}

	c := NewConverter()

	if SharedFlags.Validate {
		valid, err := c.ValidateFormat(input)
		if err != nil {
			return err
		}
		if !valid {
			return &parsererror.ValidationError{FilePath: input, Reason: "no recognized columns in header"}
		}
		Log.Debug("Validation successful")
	}

	stats, err := c.ConvertFile(input, output)
	if err != nil {
		return err
	}

	Log.Info("Conversion completed successfully",
		logging.Field{Key: logging.FieldCount, Value: stats.Rows},
		logging.Field{Key: "derived_fields", Value: stats.Derived})
	return nil
}
