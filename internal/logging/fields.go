package logging

// Structured field names.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldFiles    = "files"
	FieldOutput   = "output"
	FieldConfig   = "config"
	FieldEncoding = "encoding"
	FieldJobs     = "jobs"

	// per-document counters
	FieldBytes       = "bytes"
	FieldWrites      = "writes"
	FieldEvents      = "events"
	FieldDiagnostics = "diagnostics"
	FieldElapsed     = "elapsed"

	FieldVersion = "version"
	FieldCommit  = "commit"
)
