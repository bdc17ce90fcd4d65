package report

import (
	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// STATISTICS REQUEST
// ========================================

// SummaryRow is one monthly summary line as returned by the process endpoint.
type SummaryRow struct {
	EmployeeID       int             `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	PresentDays      int             `json:"present_days"`
	AbsentDays       int             `json:"absent_days"`
	AutoAssignedDays int             `json:"auto_assigned_days"`
	TotalHours       decimal.Decimal `json:"total_hours"`
}

// DailyRow carries the fields of a daily record used for the status breakdown.
type DailyRow struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type StatisticsRequest struct {
	MonthlySummary []SummaryRow    `json:"monthly_summary"`
	DailyReport    []DailyRow      `json:"daily_report,omitempty"`
	MaxHoursPerDay decimal.Decimal `json:"max_hours_per_day"`
}

func (r *StatisticsRequest) Validate() error {
	if len(r.MonthlySummary) == 0 {
		return ErrNoDataFound
	}

	var errs validator.ValidationErrors

	if r.MaxHoursPerDay.IsNegative() || r.MaxHoursPerDay.GreaterThan(decimal.NewFromInt(24)) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_day",
			Message: "max_hours_per_day must be between 0 and 24",
		})
	}

	for _, row := range r.MonthlySummary {
		if row.EmployeeID <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_summary.employee_id",
				Message: "employee_id must be positive",
			})
			break
		}
	}

	for _, row := range r.MonthlySummary {
		if row.PresentDays < 0 || row.AbsentDays < 0 || row.AutoAssignedDays < 0 || row.TotalHours.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_summary",
				Message: "day counts and total_hours must not be negative",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// STATISTICS RESPONSE
// ========================================

type StatisticsResponse struct {
	TopPerformer      EmployeeHours          `json:"top_performer"`
	AttendanceRate    float64                `json:"attendance_rate"`
	HoursDistribution HoursDistribution      `json:"hours_distribution"`
	MostAbsent        []AbsenceRanking       `json:"most_absent"`
	HoursVariance     []HoursVariance        `json:"hours_variance"`
	AutoAssigned      []AutoAssignedEmployee `json:"auto_assigned"`
	StatusBreakdown   map[string]int         `json:"status_breakdown,omitempty"`
	MaxHoursPerDay    float64                `json:"max_hours_per_day"`
	GeneratedAt       string                 `json:"generated_at"`
}

type EmployeeHours struct {
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	TotalHours   float64 `json:"total_hours"`
	PresentDays  int     `json:"present_days"`
}

type HoursDistribution struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type AbsenceRanking struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	AbsentDays   int    `json:"absent_days"`
	PresentDays  int    `json:"present_days"`
}

// HoursVariance compares worked hours against present_days x max hours.
type HoursVariance struct {
	EmployeeID    int     `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	TotalHours    float64 `json:"total_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	Variance      float64 `json:"variance"`
}

type AutoAssignedEmployee struct {
	EmployeeID       int     `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	AutoAssignedDays int     `json:"auto_assigned_days"`
	TotalHours       float64 `json:"total_hours"`
}
