package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldColumn     = "column"
	FieldRole       = "role"
	FieldTag        = "tag"
	FieldLine       = "line"
)
