package attendance

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(workers int) *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)), workers)
}

func sampleGrid(t *testing.T) [][]string {
	t.Helper()
	data, err := SampleWorkbook(2025, time.December, attendance.DefaultLayout())
	require.NoError(t, err)

	grid, err := spreadsheet.ReadGrid(bytes.NewReader(data), "sample.xlsx")
	require.NoError(t, err)
	return grid
}

func TestEngine_ProcessSample(t *testing.T) {
	result, err := newTestEngine(4).Process(sampleGrid(t), testConfig(t, 8))
	require.NoError(t, err)

	assert.Len(t, result.Daily, 93)
	assert.Empty(t, result.Skipped)
	assert.Zero(t, result.Warnings)

	want := []struct {
		id                    int
		name                  string
		present, absent, auto int
		minutes               int
	}{
		{35, "Rishabh", 5, 24, 2, 3485},
		{36, "Priya", 6, 24, 1, 3500},
		{37, "Anil", 7, 24, 0, 3360},
	}
	require.Len(t, result.Summary, len(want))
	for i, w := range want {
		s := result.Summary[i]
		assert.Equal(t, w.id, s.EmployeeID)
		assert.Equal(t, w.name, s.EmployeeName)
		assert.Equal(t, w.present, s.PresentDays, w.name)
		assert.Equal(t, w.absent, s.AbsentDays, w.name)
		assert.Equal(t, w.auto, s.AutoAssignedDays, w.name)
		assert.Equal(t, w.minutes, s.TotalMinutes, w.name)
	}

	first := result.Daily[0]
	assert.Equal(t, "2025-12-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, "09:35 - 18:10", first.PunchDescription)

	// concatenated punches and the night shift
	assert.Equal(t, "11:38 - 20:00", result.Daily[31+7].PunchDescription)
	assert.Equal(t, "22:00 - 06:00", result.Daily[62+5].PunchDescription)
	assert.Equal(t, 480, result.Daily[62+5].WorkedMinutes)
}

func TestEngine_SummaryInvariant(t *testing.T) {
	result, err := newTestEngine(1).Process(sampleGrid(t), testConfig(t, 10, "2025-12-04", "2025-12-20"))
	require.NoError(t, err)

	perEmployee := make(map[attendance.EmployeeIdentity]int)
	for _, d := range result.Daily {
		perEmployee[d.EmployeeIdentity]++
	}
	for _, s := range result.Summary {
		assert.Equal(t, perEmployee[s.EmployeeIdentity], s.RecordCount(), s.EmployeeName)
	}

	// Rishabh is absent on both selected dates
	assert.Equal(t, 4, result.Summary[0].AutoAssignedDays)
	assert.Equal(t, attendance.StatusAdminAssigned, result.Daily[3].Status)
}

func TestEngine_Idempotent(t *testing.T) {
	engine := newTestEngine(4)
	grid := sampleGrid(t)
	cfg := testConfig(t, 8, "2025-12-25")

	first, err := engine.Process(grid, cfg)
	require.NoError(t, err)
	second, err := engine.Process(grid, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_SummaryOrderedByEmployeeID(t *testing.T) {
	grid := exportGrid(
		blockRows("90", "Last", "09:00 17:00"),
		blockRows("7", "First", "09:00 17:00"),
		blockRows("42", "Middle", "09:00 17:00"),
	)

	result, err := newTestEngine(2).Process(grid, testConfig(t, 8))
	require.NoError(t, err)

	ids := make([]int, 0, len(result.Summary))
	for _, s := range result.Summary {
		ids = append(ids, s.EmployeeID)
	}
	assert.Equal(t, []int{7, 42, 90}, ids)

	// daily output keeps extraction order
	assert.Equal(t, 90, result.Daily[0].EmployeeID)
}

func TestEngine_ReportsSkipsAndWarnings(t *testing.T) {
	grid := exportGrid(
		blockRows("", "NoID", "09:00 17:00"),
		blockRows("5", "Eve", "9:00 17:00", "24:00 08:00 16:00"),
	)
	cfg, err := attendance.NewRunConfiguration(2025, 2, decimal.NewFromInt(8), nil, attendance.DefaultLayout())
	require.NoError(t, err)

	result, err := newTestEngine(1).Process(grid, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Warnings)
	assert.Len(t, result.Daily, 28)

	// the missing id block plus days 29-31 of February
	require.Len(t, result.Skipped, 4)
	assert.Equal(t, attendance.SkipMissingIdentifier, result.Skipped[0].Reason)
	assert.Equal(t, attendance.SkipInvalidDate, result.Skipped[1].Reason)

	assert.Equal(t, attendance.StatusMissingPunchOut, result.Daily[0].Status)
	assert.Equal(t, attendance.StatusPresent, result.Daily[1].Status)
}

func TestEngine_StructuralError(t *testing.T) {
	_, err := newTestEngine(1).Process([][]string{{"nothing here"}}, testConfig(t, 8))
	assert.ErrorIs(t, err, attendance.ErrHeaderNotFound)
}

func TestEngine_RejectsUnbuiltConfiguration(t *testing.T) {
	_, err := newTestEngine(1).Process(sampleGrid(t), attendance.RunConfiguration{})
	assert.ErrorIs(t, err, attendance.ErrInvalidConfiguration)
}
