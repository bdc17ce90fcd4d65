package attendance

import (
	"fmt"
	"testing"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id int, day int, raw string) attendance.NormalizedRecord {
	return attendance.NormalizedRecord{
		EmployeeIdentity: attendance.EmployeeIdentity{EmployeeID: id, EmployeeName: fmt.Sprintf("E%d", id)},
		Date:             date(day),
		RawPunches:       raw,
	}
}

func TestBuildDay(t *testing.T) {
	cfg := testConfig(t, 8)

	day, rejected := BuildDay(record(35, 1, "09:35 18:10"), cfg)
	assert.Empty(t, rejected)
	assert.Equal(t, 35, day.EmployeeID)
	assert.Equal(t, date(1), day.Date)
	assert.Equal(t, 2, day.PunchCount)
	assert.Equal(t, "09:35 - 18:10", day.PunchDescription)
	assert.Equal(t, "8.58", day.WorkedHours().String())
	assert.Equal(t, "08:35", day.HoursAsClock())
	assert.Equal(t, attendance.StatusPresent, day.Status)
}

func TestBuildDay_DroppedTokens(t *testing.T) {
	cfg := testConfig(t, 8)

	day, rejected := BuildDay(record(35, 1, "9:05 18:00"), cfg)
	assert.Equal(t, []string{"9:05"}, rejected)
	assert.Equal(t, 1, day.PunchCount)
	assert.Equal(t, attendance.StatusMissingPunchOut, day.Status)
}

func TestBuildDay_AdminOverride(t *testing.T) {
	cfg := testConfig(t, 10, "2025-12-25")

	day, _ := BuildDay(record(35, 25, ""), cfg)
	assert.Equal(t, attendance.StatusAdminAssigned, day.Status)
	assert.Equal(t, 600, day.WorkedMinutes)
	assert.Equal(t, adminSelectedDescription, day.PunchDescription)
	assert.Zero(t, day.PunchCount)

	// punches on a selected date are classified normally
	day, _ = BuildDay(record(35, 25, "09:00 13:00"), cfg)
	assert.Equal(t, attendance.StatusPresent, day.Status)
	assert.Equal(t, 240, day.WorkedMinutes)

	// other dates stay absent
	day, _ = BuildDay(record(35, 24, ""), cfg)
	assert.Equal(t, attendance.StatusAbsent, day.Status)
}

func TestBuildDailyReport_ParallelMatchesSequential(t *testing.T) {
	cfg := testConfig(t, 8, "2025-12-07")
	cells := []string{"09:00 17:00", "", "10:05", "09:00 12:00 13:00", "22:00 06:00", "bad 9:99"}

	var records []attendance.NormalizedRecord
	for id := 1; id <= 20; id++ {
		for d := 1; d <= 31; d++ {
			records = append(records, record(id, d, cells[(id+d)%len(cells)]))
		}
	}

	sequential, seqRejected := BuildDailyReport(records, cfg, 1)
	parallel, parRejected := BuildDailyReport(records, cfg, 8)

	require.Len(t, sequential, len(records))
	assert.Equal(t, sequential, parallel)
	assert.Equal(t, seqRejected, parRejected)

	for i, rec := range records {
		assert.Equal(t, rec.EmployeeIdentity, parallel[i].EmployeeIdentity)
		assert.Equal(t, rec.Date, parallel[i].Date)
	}
}
