package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/domain/report"
	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var structural *attendance.StructuralError
	if errors.As(err, &structural) {
		BadRequest(w, "Attendance layout not recognised", map[string]string{
			"reason":       structural.Reason,
			"scanned_rows": strconv.Itoa(structural.Rows),
		})
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrHeaderNotFound):
		BadRequest(w, "Attendance layout not recognised", nil)
	case errors.Is(err, attendance.ErrInputFormat):
		BadRequest(w, "File is not a readable workbook", map[string]string{"reason": err.Error()})
	case errors.Is(err, attendance.ErrInvalidConfiguration):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrUnknownProfile):
		BadRequest(w, "Unknown shift profile", map[string]string{"profile": err.Error()})
	case errors.Is(err, attendance.ErrUnknownLayout):
		BadRequest(w, "Unknown layout", map[string]string{"layout": err.Error()})
	case errors.Is(err, attendance.ErrEmptyBatch):
		BadRequest(w, "At least one file is required", nil)
	case errors.Is(err, attendance.ErrReportNotFound):
		NotFound(w, "Report not found")

	// Report domain errors
	case errors.Is(err, report.ErrNoDataFound):
		BadRequest(w, "No data provided", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
