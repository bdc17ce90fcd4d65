package attendance

import (
	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/pkg/spreadsheet"
)

const (
	DailySheetName   = "Daily Attendance"
	SummarySheetName = "Monthly Summary"
)

var (
	dailyHeaders = []string{
		"Employee ID", "Employee Name", "Date", "Punch Count",
		"Punch Description", "Worked Hours", "Hours (HH:MM)", "Status",
	}
	summaryHeaders = []string{
		"Employee ID", "Employee Name", "Present Days", "Absent Days",
		"Auto-Assigned Days", "Total Hours", "Total Hours (HH:MM)",
	}
)

// ReportSheets lays a run result out as the two report worksheets.
func ReportSheets(result attendance.Result) []spreadsheet.Sheet {
	daily := make([][]any, 0, len(result.Daily))
	for _, d := range result.Daily {
		daily = append(daily, []any{
			d.EmployeeID,
			d.EmployeeName,
			d.Date.Format("2006-01-02"),
			d.PunchCount,
			d.PunchDescription,
			d.WorkedHours().InexactFloat64(),
			d.HoursAsClock(),
			d.Status.Label(),
		})
	}

	summary := make([][]any, 0, len(result.Summary))
	for _, s := range result.Summary {
		summary = append(summary, []any{
			s.EmployeeID,
			s.EmployeeName,
			s.PresentDays,
			s.AbsentDays,
			s.AutoAssignedDays,
			s.TotalHours().InexactFloat64(),
			s.TotalHoursAsClock(),
		})
	}

	return []spreadsheet.Sheet{
		{Name: DailySheetName, Headers: dailyHeaders, Rows: daily},
		{Name: SummarySheetName, Headers: summaryHeaders, Rows: summary},
	}
}
