package attendance

import (
	"sort"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
)

// Summarize groups daily records per employee. An absent day on a selected
// date is counted as admin assigned even if classification upstream missed
// it. Rows are sorted by employee id, then name.
func Summarize(days []attendance.AttendanceDay, cfg attendance.RunConfiguration) []attendance.EmployeeMonthSummary {
	index := make(map[attendance.EmployeeIdentity]int)
	var summaries []attendance.EmployeeMonthSummary

	for _, day := range days {
		i, ok := index[day.EmployeeIdentity]
		if !ok {
			i = len(summaries)
			index[day.EmployeeIdentity] = i
			summaries = append(summaries, attendance.EmployeeMonthSummary{EmployeeIdentity: day.EmployeeIdentity})
		}
		s := &summaries[i]

		status := day.Status
		if status == attendance.StatusAbsent && cfg.IsSelectedDate(day.Date) {
			status = attendance.StatusAdminAssigned
		}

		switch {
		case status == attendance.StatusPresent:
			s.PresentDays++
		case status == attendance.StatusAbsent:
			s.AbsentDays++
		case status.IsAutoAssigned():
			s.AutoAssignedDays++
		}
		s.TotalMinutes += day.WorkedMinutes
		if !day.AssignedHours.IsZero() {
			s.AssignedMinutes += day.WorkedMinutes
			s.AssignedHours = s.AssignedHours.Add(day.AssignedHours)
		}
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		if summaries[a].EmployeeID != summaries[b].EmployeeID {
			return summaries[a].EmployeeID < summaries[b].EmployeeID
		}
		return summaries[a].EmployeeName < summaries[b].EmployeeName
	})

	return summaries
}
