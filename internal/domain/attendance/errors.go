package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Fatal to a run
	ErrHeaderNotFound       = errors.New("attendance header row not found")
	ErrInvalidConfiguration = errors.New("invalid run configuration")
	ErrInputFormat          = errors.New("input is not a readable workbook")

	// Request errors
	ErrUnknownProfile = errors.New("unknown shift profile")
	ErrUnknownLayout  = errors.New("unknown layout schema")
	ErrEmptyBatch     = errors.New("no files provided")

	// Report errors
	ErrReportNotFound = errors.New("report file not found")
)

// StructuralError reports a sheet whose layout could not be located.
type StructuralError struct {
	Rows   int
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s (scanned %d rows)", ErrHeaderNotFound, e.Reason, e.Rows)
}

func (e *StructuralError) Unwrap() error {
	return ErrHeaderNotFound
}
