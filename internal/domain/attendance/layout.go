package attendance

import (
	"fmt"
	"strings"

	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
)

const DefaultLayoutName = "standard"

// LayoutSchema describes where a vendor export keeps its header and
// employee blocks. Column indexes are 0-based.
type LayoutSchema struct {
	Name          string   `toml:"name"`
	HeaderLabels  []string `toml:"header_labels"`
	MinDayColumns int      `toml:"min_day_columns"`
	BlockMarker   string   `toml:"block_marker"`
	IDColumn      int      `toml:"id_column"`
	NameColumn    int      `toml:"name_column"`
}

// DefaultLayout is the two-row "ID:" block layout written by common
// biometric terminals: id in column C, name in column K.
func DefaultLayout() LayoutSchema {
	return LayoutSchema{
		Name:          DefaultLayoutName,
		HeaderLabels:  []string{"employee id", "employee name"},
		MinDayColumns: 5,
		BlockMarker:   "ID:",
		IDColumn:      2,
		NameColumn:    10,
	}
}

func (l LayoutSchema) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(l.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.name",
			Message: "layout name is required",
		})
	}

	if validator.IsEmpty(l.BlockMarker) {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.block_marker",
			Message: "block marker is required",
		})
	}

	if l.IDColumn < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.id_column",
			Message: "id column must be after the marker column",
		})
	}

	if l.NameColumn < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.name_column",
			Message: "name column must be after the marker column",
		})
	}

	if l.IDColumn == l.NameColumn && l.IDColumn > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.name_column",
			Message: fmt.Sprintf("name column collides with id column %d", l.IDColumn),
		})
	}

	if l.MinDayColumns < 1 || l.MinDayColumns > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "layout.min_day_columns",
			Message: "min_day_columns must be between 1 and 31",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsHeaderLabel reports whether a cell matches one of the header labels.
func (l LayoutSchema) IsHeaderLabel(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return false
	}
	for _, label := range l.HeaderLabels {
		if cell == strings.ToLower(strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

// IsBlockMarker reports whether a cell opens an employee block.
func (l LayoutSchema) IsBlockMarker(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), strings.TrimSpace(l.BlockMarker))
}
