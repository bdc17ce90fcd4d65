package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
)

const (
	firstDay = 1
	lastDay  = 31
)

// dayColumn maps a sheet column to the day of month its header names.
type dayColumn struct {
	Col int
	Day int
}

// ExtractEmployees locates the header row and walks the employee blocks
// below it. Malformed blocks are returned as skipped records; only a missing
// header is fatal.
func ExtractEmployees(grid [][]string, layout attendance.LayoutSchema) ([]attendance.EmployeeBlock, []attendance.SkippedRecord, error) {
	headerRow, err := findHeaderRow(grid, layout)
	if err != nil {
		return nil, nil, err
	}

	columns := dayColumns(grid[headerRow])
	if len(columns) == 0 {
		return nil, nil, &attendance.StructuralError{
			Rows:   len(grid),
			Reason: fmt.Sprintf("header row %d has no day-of-month columns", headerRow+1),
		}
	}

	var (
		blocks  []attendance.EmployeeBlock
		skipped []attendance.SkippedRecord
	)

	for i := headerRow + 1; i < len(grid); {
		row := grid[i]
		if !layout.IsBlockMarker(cellAt(row, 0)) {
			i++
			continue
		}

		id, idOK := parseEmployeeID(cellAt(row, layout.IDColumn))
		name := strings.TrimSpace(cellAt(row, layout.NameColumn))
		skip := attendance.SkippedRecord{Row: i + 1, EmployeeID: id, EmployeeName: name}

		switch {
		case !idOK:
			skip.Reason = attendance.SkipMissingIdentifier
		case name == "":
			skip.Reason = attendance.SkipMissingName
		case i+1 >= len(grid) || layout.IsBlockMarker(cellAt(grid[i+1], 0)):
			skip.Reason = attendance.SkipMissingDataRow
		}
		if skip.Reason != "" {
			skipped = append(skipped, skip)
			i++
			continue
		}

		data := grid[i+1]
		days := make(map[int]string, len(columns))
		for _, c := range columns {
			days[c.Day] = cellAt(data, c.Col)
		}

		blocks = append(blocks, attendance.EmployeeBlock{
			EmployeeIdentity: attendance.EmployeeIdentity{EmployeeID: id, EmployeeName: name},
			Row:              i + 1,
			Attendance:       days,
		})
		i += 2
	}

	return blocks, skipped, nil
}

// findHeaderRow returns the first row carrying a header label, else the
// first row with enough day-number cells.
func findHeaderRow(grid [][]string, layout attendance.LayoutSchema) (int, error) {
	for i, row := range grid {
		for _, cell := range row {
			if layout.IsHeaderLabel(cell) {
				return i, nil
			}
		}
	}

	for i, row := range grid {
		count := 0
		for _, cell := range row {
			if _, ok := parseDay(cell); ok {
				count++
			}
		}
		if count >= layout.MinDayColumns {
			return i, nil
		}
	}

	return -1, &attendance.StructuralError{
		Rows: len(grid),
		Reason: fmt.Sprintf("no row contains %s or at least %d day-of-month columns",
			strings.Join(quoted(layout.HeaderLabels), "/"), layout.MinDayColumns),
	}
}

func dayColumns(header []string) []dayColumn {
	seen := make(map[int]bool)
	var columns []dayColumn
	for col, cell := range header {
		day, ok := parseDay(cell)
		if !ok || seen[day] {
			continue
		}
		seen[day] = true
		columns = append(columns, dayColumn{Col: col, Day: day})
	}
	return columns
}

// parseDay accepts whole numbers 1..31, including spreadsheet renderings
// such as "7.0".
func parseDay(cell string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v != math.Trunc(v) {
		return 0, false
	}
	if v < firstDay || v > lastDay {
		return 0, false
	}
	return int(v), true
}

// parseEmployeeID reads a positive numeric id; fractional renderings are
// truncated.
func parseEmployeeID(cell string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	id := int(v)
	if id <= 0 {
		return 0, false
	}
	return id, true
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func quoted(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Quote(v)
	}
	return out
}
