package attendance

import (
	"fmt"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/pkg/spreadsheet"
)

const SampleSheetName = "Attendance"

type sampleEmployee struct {
	id      int
	name    string
	punches []string // by day, starting on the 1st
}

var sampleEmployees = []sampleEmployee{
	{35, "Rishabh", []string{
		"09:35 18:10",
		"09:00 18:00",
		"10:05",
		"",
		"09:15 13:00 14:00 18:45",
		"09:00 18:00 19:00",
		"09:30 17:30",
		"08:00 16:00",
	}},
	{36, "Priya", []string{
		"09:00 18:00",
		"09:30 17:30",
		"",
		"09:45 18:45",
		"08:00 12:00 13:00 17:00",
		"10:00",
		"09:15 17:15",
		"11:3820:00",
	}},
	{37, "Anil", []string{
		"09:00 18:30",
		"09:00 17:00",
		"09:30 18:30",
		"09:00 13:00",
		"",
		"22:00 06:00",
		"09:00 18:00",
		"09:15 17:45",
	}},
}

// SampleGrid builds a synthetic time-clock export for the month in the
// given layout: a title block, the day header row, then one marker row and
// one punch row per employee.
func SampleGrid(year int, month time.Month, layout attendance.LayoutSchema) [][]any {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, days, 0, 0, 0, 0, time.UTC)

	label := "Employee ID"
	if !layout.IsHeaderLabel(label) && len(layout.HeaderLabels) > 0 {
		label = layout.HeaderLabels[0]
	}
	header := []any{label, "Employee Name"}
	for d := 1; d <= days; d++ {
		header = append(header, d)
	}

	grid := [][]any{
		{"Attendance Record Report"},
		{"Att. Time"},
		{fmt.Sprintf("Date Range: %s ~ %s", first.Format("2006-01-02"), last.Format("2006-01-02"))},
		header,
	}

	width := max(layout.IDColumn, layout.NameColumn) + 1
	for _, e := range sampleEmployees {
		marker := blankRow(width)
		marker[0] = layout.BlockMarker
		marker[layout.IDColumn] = e.id
		if n := layout.NameColumn - 2; n > 0 && n != layout.IDColumn {
			marker[n] = "Name:"
		}
		marker[layout.NameColumn] = e.name

		data := blankRow(days + 2)
		for i, p := range e.punches {
			if i < days {
				data[i+2] = p
			}
		}
		grid = append(grid, marker, data)
	}

	return grid
}

func blankRow(n int) []any {
	row := make([]any, n)
	for i := range row {
		row[i] = ""
	}
	return row
}

// SampleWorkbook renders SampleGrid as an .xlsx document.
func SampleWorkbook(year int, month time.Month, layout attendance.LayoutSchema) ([]byte, error) {
	return spreadsheet.WriteWorkbook([]spreadsheet.Sheet{
		{Name: SampleSheetName, Rows: SampleGrid(year, month, layout)},
	})
}
