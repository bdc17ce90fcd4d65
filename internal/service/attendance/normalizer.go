package attendance

import (
	"sort"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
)

// Normalize flattens employee blocks into one record per (employee, date),
// in block order then ascending day. Days that do not exist in the month
// are returned as skipped records.
func Normalize(blocks []attendance.EmployeeBlock, year int, month time.Month) ([]attendance.NormalizedRecord, []attendance.SkippedRecord) {
	var (
		records []attendance.NormalizedRecord
		skipped []attendance.SkippedRecord
	)

	for _, block := range blocks {
		days := make([]int, 0, len(block.Attendance))
		for day := range block.Attendance {
			days = append(days, day)
		}
		sort.Ints(days)

		for _, day := range days {
			date, ok := calendarDate(year, month, day)
			if !ok {
				skipped = append(skipped, attendance.SkippedRecord{
					Row:          block.Row,
					EmployeeID:   block.EmployeeID,
					EmployeeName: block.EmployeeName,
					Day:          day,
					Reason:       attendance.SkipInvalidDate,
				})
				continue
			}
			records = append(records, attendance.NormalizedRecord{
				EmployeeIdentity: block.EmployeeIdentity,
				Date:             date,
				RawPunches:       block.Attendance[day],
			})
		}
	}

	return records, skipped
}

// calendarDate builds a UTC midnight date, rejecting days time.Date would
// silently roll into the next month.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}
