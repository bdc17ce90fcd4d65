package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	DownloadReport(w http.ResponseWriter, r *http.Request)
	Sample(w http.ResponseWriter, r *http.Request)
	ListProfiles(w http.ResponseWriter, r *http.Request)
	ListLayouts(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	maxUploadBytes    int64
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, maxUploadBytes int64) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		maxUploadBytes:    maxUploadBytes,
	}
}

// parseRunParams reads the run parameters shared by the process endpoints.
func parseRunParams(r *http.Request) (attendance.RunParams, error) {
	var params attendance.RunParams

	year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
	if err != nil {
		return params, fmt.Errorf("invalid year parameter")
	}
	month, err := strconv.Atoi(strings.TrimSpace(r.FormValue("month")))
	if err != nil {
		return params, fmt.Errorf("invalid month parameter")
	}

	params.Year = year
	params.Month = month
	params.MaxHours = r.FormValue("max_hours")
	params.Profile = r.FormValue("profile")
	params.Layout = r.FormValue("layout")

	// selected_dates is a JSON array of YYYY-MM-DD strings
	if raw := strings.TrimSpace(r.FormValue("selected_dates")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params.SelectedDates); err != nil {
			return params, fmt.Errorf("selected_dates must be a JSON array of dates")
		}
	}

	return params, nil
}

// Process handles POST /attendance/process
func (h *attendanceHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	params, err := parseRunParams(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance workbook is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := attendance.ProcessRequest{
		RunParams: params,
		Upload: attendance.UploadedFile{
			File:     file,
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
		},
		MaxSize: h.maxUploadBytes,
	}

	result, err := h.attendanceService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance processed successfully", result)
}

// ProcessBatch handles POST /attendance/batch
func (h *attendanceHandlerImpl) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	params, err := parseRunParams(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}

	req := attendance.BatchRequest{
		RunParams: params,
		Uploads:   make([]attendance.UploadedFile, 0, len(headers)),
		MaxSize:   h.maxUploadBytes,
	}
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			slog.Error("Failed to open uploaded file", "filename", fh.Filename, "error", err)
			response.BadRequest(w, "Invalid file upload", map[string]string{"file": fh.Filename})
			return
		}
		defer file.Close()

		req.Uploads = append(req.Uploads, attendance.UploadedFile{
			File:     file,
			Filename: fh.Filename,
			Size:     fh.Size,
		})
	}

	result, err := h.attendanceService.ProcessBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Processed %d of %d files", result.Succeeded, len(result.Items)), result)
}

// DownloadReport handles GET /attendance/reports/{filename}
func (h *attendanceHandlerImpl) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	rc, err := h.attendanceService.DownloadReport(r.Context(), filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	response.Attachment(w, filename, rc)
}

// Sample handles GET /attendance/sample
func (h *attendanceHandlerImpl) Sample(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	req := attendance.SampleRequest{Year: now.Year(), Month: int(now.Month())}

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "invalid year parameter", nil)
			return
		}
		req.Year = year
	}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			response.BadRequest(w, "invalid month parameter", nil)
			return
		}
		req.Month = month
	}

	data, err := h.attendanceService.GenerateSample(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, fmt.Sprintf("sample_attendance_%04d_%02d.xlsx", req.Year, req.Month), bytes.NewReader(data))
}

// ListProfiles handles GET /profiles
func (h *attendanceHandlerImpl) ListProfiles(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.ListProfiles(r.Context()))
}

// ListLayouts handles GET /layouts
func (h *attendanceHandlerImpl) ListLayouts(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.ListLayouts(r.Context()))
}
