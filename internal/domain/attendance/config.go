package attendance

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var maxHoursCeiling = decimal.NewFromInt(24)

// DateSet is an immutable set of calendar dates.
type DateSet struct {
	dates map[string]struct{}
}

// Contains reports whether the calendar date of t is in the set.
func (s DateSet) Contains(t time.Time) bool {
	_, ok := s.dates[t.Format(dateLayout)]
	return ok
}

func (s DateSet) Len() int { return len(s.dates) }

// Strings returns the dates as sorted ISO strings.
func (s DateSet) Strings() []string {
	out := make([]string, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// RunConfiguration carries every per-run parameter. It is built once per run
// and passed by value into each stage.
type RunConfiguration struct {
	MaxHoursPerDay decimal.Decimal
	Year           int
	Month          time.Month
	SelectedDates  DateSet
	Layout         LayoutSchema
}

// MaxMinutesPerDay is the configured standard day rounded to whole minutes,
// used for clock renderings. Hours keep the exact MaxHoursPerDay.
func (c RunConfiguration) MaxMinutesPerDay() int {
	return HoursToMinutes(c.MaxHoursPerDay)
}

// IsSelectedDate reports whether absence on t is reinterpreted as an
// administratively assigned day.
func (c RunConfiguration) IsSelectedDate(t time.Time) bool {
	return c.SelectedDates.Contains(t)
}

// NewRunConfiguration validates the inputs of a run. All problems are
// reported at once as validator.ValidationErrors joined with
// ErrInvalidConfiguration.
func NewRunConfiguration(year, month int, maxHours decimal.Decimal, selectedDates []string, layout LayoutSchema) (RunConfiguration, error) {
	var errs validator.ValidationErrors

	if year < 1000 || year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four-digit number",
		})
	}

	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !maxHours.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours",
			Message: "max_hours must be greater than 0",
		})
	} else if maxHours.GreaterThan(maxHoursCeiling) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours",
			Message: "max_hours must not exceed 24",
		})
	}

	dates := make(map[string]struct{}, len(selectedDates))
	var invalid []string
	for _, raw := range selectedDates {
		raw = strings.TrimSpace(raw)
		d, ok := validator.IsValidDate(raw)
		if !ok {
			invalid = append(invalid, raw)
			continue
		}
		dates[d.Format(dateLayout)] = struct{}{}
	}
	if len(invalid) > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "selected_dates",
			Message: fmt.Sprintf("invalid dates (want YYYY-MM-DD): %s", strings.Join(invalid, ", ")),
		})
	}

	if err := layout.Validate(); err != nil {
		var layoutErrs validator.ValidationErrors
		if errors.As(err, &layoutErrs) {
			errs = append(errs, layoutErrs...)
		}
	}

	if len(errs) > 0 {
		return RunConfiguration{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs)
	}

	return RunConfiguration{
		MaxHoursPerDay: maxHours,
		Year:           year,
		Month:          time.Month(month),
		SelectedDates:  DateSet{dates: dates},
		Layout:         layout,
	}, nil
}
