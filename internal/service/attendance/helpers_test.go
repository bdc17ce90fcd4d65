package attendance

import (
	"testing"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, maxHours int64, selected ...string) attendance.RunConfiguration {
	t.Helper()
	cfg, err := attendance.NewRunConfiguration(2025, 12, decimal.NewFromInt(maxHours), selected, attendance.DefaultLayout())
	require.NoError(t, err)
	return cfg
}

func punches(t *testing.T, tokens ...string) attendance.PunchSequence {
	t.Helper()
	seq := make(attendance.PunchSequence, 0, len(tokens))
	for _, tok := range tokens {
		p, ok := ParseClock(tok)
		require.True(t, ok, "token %q", tok)
		seq = append(seq, p)
	}
	return seq
}

func date(day int) time.Time {
	return time.Date(2025, time.December, day, 0, 0, 0, 0, time.UTC)
}

// blockRows renders one employee in the default layout: marker row then
// data row with the cells placed under day columns 1..len(cells).
func blockRows(id, name string, cells ...string) [][]string {
	marker := make([]string, 11)
	marker[0] = "ID:"
	marker[2] = id
	marker[8] = "Name:"
	marker[10] = name

	data := make([]string, len(cells)+2)
	copy(data[2:], cells)
	return [][]string{marker, data}
}

// exportGrid builds a December export with title rows and a labelled header.
func exportGrid(blocks ...[][]string) [][]string {
	header := []string{"Employee ID", "Employee Name"}
	for d := 1; d <= 31; d++ {
		header = append(header, decimal.NewFromInt(int64(d)).String())
	}
	grid := [][]string{
		{"Attendance Record Report"},
		{"Att. Time"},
		{"Date Range: 2025-12-01 ~ 2025-12-31"},
		header,
	}
	for _, b := range blocks {
		grid = append(grid, b...)
	}
	return grid
}
