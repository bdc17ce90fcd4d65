package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	data, err := WriteWorkbook([]Sheet{
		{
			Name:    "Daily Attendance",
			Headers: []string{"Employee ID", "Employee Name", "Worked Hours"},
			Rows: [][]any{
				{35, "Rishabh", 8.58},
				{36, "Priya", 9},
			},
		},
		{
			Name:    "Monthly Summary",
			Headers: []string{"Employee ID", "Total Hours"},
			Rows:    [][]any{{35, "17:35"}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Daily Attendance", "Monthly Summary"}, f.GetSheetList())

	grid, err := ReadGrid(bytes.NewReader(data), "report.xlsx")
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"Employee ID", "Employee Name", "Worked Hours"}, grid[0])
	assert.Equal(t, []string{"35", "Rishabh", "8.58"}, grid[1])
	assert.Equal(t, "Priya", grid[2][1])

	width, err := f.GetColWidth("Daily Attendance", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Employee Name")+2), width)
}

func TestWriteWorkbook_NoSheets(t *testing.T) {
	_, err := WriteWorkbook(nil)
	assert.Error(t, err)
}

func TestWriteWorkbook_CapsColumnWidth(t *testing.T) {
	data, err := WriteWorkbook([]Sheet{{
		Name: "Notes",
		Rows: [][]any{{strings.Repeat("x", 200)}},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth("Notes", "A")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWidth), width)
}

func TestReadGrid_Unreadable(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		filename string
	}{
		{"empty xlsx", nil, "export.xlsx"},
		{"garbage xlsx", []byte("not a workbook"), "export.xlsx"},
		{"garbage xls", []byte("not a workbook either"), "export.xls"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadGrid(bytes.NewReader(c.data), c.filename)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreadable)
		})
	}
}

func TestReadGrid_KeepsBlankRows(t *testing.T) {
	data, err := WriteWorkbook([]Sheet{{
		Name: "Attendance",
		Rows: [][]any{
			{"Attendance Record Report"},
			{},
			{"ID:", "", 35},
		},
	}})
	require.NoError(t, err)

	grid, err := ReadGrid(bytes.NewReader(data), "export.xlsx")
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Empty(t, grid[1])
	assert.Equal(t, "ID:", grid[2][0])
	assert.Equal(t, "35", grid[2][2])
}
