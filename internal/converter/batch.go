package converter

import (
	"errors"

	"dtarbill/csv-qif/internal/fileutils"
	"dtarbill/csv-qif/internal/logging"
)

// BatchConvert converts every .csv file under inputDir, one after another.
// Output files go to outputDir, or next to each input when outputDir is
// empty. A failing file does not stop the batch; the failures are returned
// joined, along with the number of files converted.
func (a *Adapter) BatchConvert(inputDir, outputDir string) (int, error) {
	logger := a.GetLogger()

	files, err := fileutils.ListFilesWithExtension(inputDir, fileutils.CSVExtension)
	if err != nil {
		return 0, err
	}
	if outputDir != "" {
		if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
			return 0, err
		}
	}

	var (
		count int
		errs  []error
	)
	for _, input := range files {
		output := fileutils.QIFPath(input)
		if outputDir != "" {
			output = fileutils.QIFPathIn(outputDir, input)
		}

		if _, err := a.ConvertFile(input, output); err != nil {
			logger.WithError(err).Error("Failed to convert file",
				logging.Field{Key: logging.FieldInputFile, Value: input})
			errs = append(errs, err)
			continue
		}
		count++
	}

	logger.Info("Batch conversion finished",
		logging.Field{Key: logging.FieldCount, Value: count},
		logging.Field{Key: logging.FieldStatus, Value: len(errs) == 0})
	return count, errors.Join(errs...)
}
