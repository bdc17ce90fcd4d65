package attendance

import (
	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"golang.org/x/sync/errgroup"
)

// BuildDay classifies one normalized record. It depends only on its
// arguments; rejected holds the tokens that failed to parse.
func BuildDay(rec attendance.NormalizedRecord, cfg attendance.RunConfiguration) (day attendance.AttendanceDay, rejected []string) {
	punches, rejected := TokenizePunches(rec.RawPunches)

	var c Classification
	if len(punches) == 0 && cfg.IsSelectedDate(rec.Date) {
		c = adminAssigned(cfg)
	} else {
		c = Classify(punches, cfg)
	}

	day = attendance.AttendanceDay{
		EmployeeIdentity: rec.EmployeeIdentity,
		Date:             rec.Date,
		PunchCount:       len(punches),
		PunchDescription: c.Description,
		WorkedMinutes:    c.Minutes,
		Status:           c.Status,
	}
	if c.Status.IsAutoAssigned() {
		day.AssignedHours = c.Hours
	}
	return day, rejected
}

// BuildDailyReport classifies every record, fanning out over at most
// workers goroutines. Output order always matches input order.
func BuildDailyReport(records []attendance.NormalizedRecord, cfg attendance.RunConfiguration, workers int) ([]attendance.AttendanceDay, [][]string) {
	days := make([]attendance.AttendanceDay, len(records))
	rejected := make([][]string, len(records))

	if workers <= 1 || len(records) < 2*workers {
		for i, rec := range records {
			days[i], rejected[i] = BuildDay(rec, cfg)
		}
		return days, rejected
	}

	chunk := (len(records) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				days[i], rejected[i] = BuildDay(records[i], cfg)
			}
			return nil
		})
	}
	_ = g.Wait()

	return days, rejected
}
