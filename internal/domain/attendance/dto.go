package attendance

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AllowedExtensions lists the workbook formats accepted for upload.
var AllowedExtensions = []string{".xlsx", ".xlsm", ".xls"}

// ========================================
// PROCESS DTOs
// ========================================

// RunParams are the caller-supplied parameters shared by single and batch runs.
type RunParams struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	MaxHours      string   `json:"max_hours,omitempty"`
	Profile       string   `json:"profile,omitempty"`
	Layout        string   `json:"layout,omitempty"`
	SelectedDates []string `json:"selected_dates,omitempty"`
}

func (p *RunParams) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if p.MaxHours != "" {
		if _, err := decimal.NewFromString(strings.TrimSpace(p.MaxHours)); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "max_hours",
				Message: "max_hours must be a number",
			})
		}
	}

	return errs
}

type UploadedFile struct {
	File     io.Reader `json:"-"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
}

func (f *UploadedFile) validate(field string, maxSize int64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if f.File == nil || validator.IsEmpty(f.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "attendance workbook is required",
		})
		return errs
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !validator.IsInSlice(ext, AllowedExtensions) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only xlsx, xlsm, xls allowed",
		})
	} else if maxSize > 0 && f.Size > maxSize {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "attendance workbook exceeds the upload size limit",
		})
	}

	return errs
}

type ProcessRequest struct {
	RunParams
	Upload  UploadedFile `json:"-"`
	MaxSize int64        `json:"-"`
}

func (r *ProcessRequest) Validate() error {
	errs := r.RunParams.validate()
	errs = append(errs, r.Upload.validate("file", r.MaxSize)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchRequest struct {
	RunParams
	Uploads []UploadedFile `json:"-"`
	MaxSize int64          `json:"-"`
}

func (r *BatchRequest) Validate() error {
	if len(r.Uploads) == 0 {
		return ErrEmptyBatch
	}

	errs := r.RunParams.validate()
	for _, upload := range r.Uploads {
		errs = append(errs, upload.validate("files["+upload.Filename+"]", r.MaxSize)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SampleRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *SampleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four-digit number",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type DailyRecordResponse struct {
	EmployeeID       int     `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Date             string  `json:"date"`
	PunchCount       int     `json:"punch_count"`
	PunchDescription string  `json:"punch_description"`
	WorkedHours      float64 `json:"worked_hours"`
	HoursAsClock     string  `json:"hours_as_clock"`
	Status           string  `json:"status"`
	StatusLabel      string  `json:"status_label"`
}

func NewDailyRecordResponse(d AttendanceDay) DailyRecordResponse {
	return DailyRecordResponse{
		EmployeeID:       d.EmployeeID,
		EmployeeName:     d.EmployeeName,
		Date:             d.Date.Format(dateLayout),
		PunchCount:       d.PunchCount,
		PunchDescription: d.PunchDescription,
		WorkedHours:      d.WorkedHours().InexactFloat64(),
		HoursAsClock:     d.HoursAsClock(),
		Status:           d.Status.String(),
		StatusLabel:      d.Status.Label(),
	}
}

type MonthlySummaryResponse struct {
	EmployeeID        int     `json:"employee_id"`
	EmployeeName      string  `json:"employee_name"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	AutoAssignedDays  int     `json:"auto_assigned_days"`
	TotalHours        float64 `json:"total_hours"`
	TotalHoursAsClock string  `json:"total_hours_as_clock"`
}

func NewMonthlySummaryResponse(s EmployeeMonthSummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		PresentDays:       s.PresentDays,
		AbsentDays:        s.AbsentDays,
		AutoAssignedDays:  s.AutoAssignedDays,
		TotalHours:        s.TotalHours().InexactFloat64(),
		TotalHoursAsClock: s.TotalHoursAsClock(),
	}
}

type SkippedRecordResponse struct {
	Row          int    `json:"row"`
	EmployeeID   int    `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	Day          int    `json:"day,omitempty"`
	Reason       string `json:"reason"`
}

// RunStatistics are the headline figures returned with every run.
type RunStatistics struct {
	TotalHours          float64        `json:"total_hours"`
	TotalEmployees      int            `json:"total_employees"`
	TotalRecords        int            `json:"total_records"`
	PresentDays         int            `json:"present_days"`
	AbsentDays          int            `json:"absent_days"`
	AutoAssignedDays    int            `json:"auto_assigned_days"`
	AvgHoursPerEmployee float64        `json:"avg_hours_per_employee"`
	AvgPresentDays      float64        `json:"avg_present_days"`
	StatusBreakdown     map[string]int `json:"status_breakdown"`
}

// NewRunStatistics derives the headline figures of a run.
func NewRunStatistics(result Result) RunStatistics {
	stats := RunStatistics{
		TotalEmployees:  len(result.Summary),
		TotalRecords:    len(result.Daily),
		StatusBreakdown: make(map[string]int),
	}

	total := decimal.Zero
	for _, s := range result.Summary {
		total = total.Add(s.TotalHours())
		stats.PresentDays += s.PresentDays
		stats.AbsentDays += s.AbsentDays
		stats.AutoAssignedDays += s.AutoAssignedDays
	}
	for _, d := range result.Daily {
		stats.StatusBreakdown[d.Status.String()]++
	}

	stats.TotalHours = total.InexactFloat64()
	if n := len(result.Summary); n > 0 {
		count := decimal.NewFromInt(int64(n))
		stats.AvgHoursPerEmployee = total.Div(count).Round(2).InexactFloat64()
		stats.AvgPresentDays = decimal.NewFromInt(int64(stats.PresentDays)).Div(count).Round(2).InexactFloat64()
	}

	return stats
}

type ProcessResponse struct {
	Filename       string                   `json:"filename"`
	Period         string                   `json:"period"`
	Layout         string                   `json:"layout"`
	MaxHoursPerDay float64                  `json:"max_hours_per_day"`
	SelectedDates  []string                 `json:"selected_dates"`
	DailyReport    []DailyRecordResponse    `json:"daily_report"`
	MonthlySummary []MonthlySummaryResponse `json:"monthly_summary"`
	Skipped        []SkippedRecordResponse  `json:"skipped"`
	Warnings       int                      `json:"warnings"`
	Statistics     RunStatistics            `json:"statistics"`
	ReportFile     string                   `json:"report_file"`
	GeneratedAt    string                   `json:"generated_at"`
}

type BatchItemResponse struct {
	Filename string           `json:"filename"`
	Success  bool             `json:"success"`
	Error    string           `json:"error,omitempty"`
	Result   *ProcessResponse `json:"result,omitempty"`
}

type BatchResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

type ShiftProfileResponse struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	MaxHoursPerDay float64  `json:"max_hours_per_day"`
	UseCases       []string `json:"use_cases"`
}

type LayoutResponse struct {
	Name          string   `json:"name"`
	HeaderLabels  []string `json:"header_labels"`
	MinDayColumns int      `json:"min_day_columns"`
	BlockMarker   string   `json:"block_marker"`
	IDColumn      int      `json:"id_column"`
	NameColumn    int      `json:"name_column"`
}
