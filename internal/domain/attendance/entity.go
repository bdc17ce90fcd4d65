package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// TimePunch is a naive local time-of-day, stored as minutes since midnight.
type TimePunch struct {
	minutes int
}

// NewTimePunch builds a punch from an hour (0-23) and minute (0-59).
func NewTimePunch(hour, minute int) (TimePunch, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimePunch{}, fmt.Errorf("time of day out of range: %d:%d", hour, minute)
	}
	return TimePunch{minutes: hour*60 + minute}, nil
}

func (p TimePunch) Hour() int   { return p.minutes / 60 }
func (p TimePunch) Minute() int { return p.minutes % 60 }

// MinuteOfDay returns the minutes elapsed since midnight.
func (p TimePunch) MinuteOfDay() int { return p.minutes }

func (p TimePunch) String() string {
	return fmt.Sprintf("%02d:%02d", p.Hour(), p.Minute())
}

// MinutesUntil returns the elapsed minutes from p to out, wrapping past
// midnight when out is earlier on the clock than p.
func (p TimePunch) MinutesUntil(out TimePunch) int {
	end := out.minutes
	if end < p.minutes {
		end += minutesPerDay
	}
	return end - p.minutes
}

// PunchSequence keeps punches in the order they were found in the source cell.
type PunchSequence []TimePunch

type EmployeeIdentity struct {
	EmployeeID   int
	EmployeeName string
}

// EmployeeBlock is one employee's raw cells as found in the export, keyed by
// day of month.
type EmployeeBlock struct {
	EmployeeIdentity
	Row        int
	Attendance map[int]string
}

// NormalizedRecord is a single (employee, calendar date) pair with its raw,
// unparsed punch cell.
type NormalizedRecord struct {
	EmployeeIdentity
	Date       time.Time
	RawPunches string
}

type AttendanceDay struct {
	EmployeeIdentity
	Date             time.Time
	PunchCount       int
	PunchDescription string
	WorkedMinutes    int
	Status           Status
	// AssignedHours is the exact configured day credited by rule; zero for
	// days computed from punch pairs.
	AssignedHours decimal.Decimal
}

// WorkedHours returns the assigned hours unchanged, otherwise the worked
// time rounded to two decimals.
func (d AttendanceDay) WorkedHours() decimal.Decimal {
	if !d.AssignedHours.IsZero() {
		return d.AssignedHours
	}
	return MinutesToHours(d.WorkedMinutes)
}

func (d AttendanceDay) HoursAsClock() string {
	return FormatClock(d.WorkedMinutes)
}

type EmployeeMonthSummary struct {
	EmployeeIdentity
	PresentDays      int
	AbsentDays       int
	AutoAssignedDays int
	TotalMinutes     int
	// AssignedMinutes and AssignedHours cover the rule-assigned days inside
	// TotalMinutes.
	AssignedMinutes int
	AssignedHours   decimal.Decimal
}

// TotalHours is the punched time rounded to two decimals plus the exact
// assigned hours.
func (s EmployeeMonthSummary) TotalHours() decimal.Decimal {
	return MinutesToHours(s.TotalMinutes - s.AssignedMinutes).Add(s.AssignedHours)
}

func (s EmployeeMonthSummary) TotalHoursAsClock() string {
	return FormatClock(s.TotalMinutes)
}

// RecordCount is the number of daily records the summary was built from.
func (s EmployeeMonthSummary) RecordCount() int {
	return s.PresentDays + s.AbsentDays + s.AutoAssignedDays
}

// Skip reasons reported for records excluded from a run.
const (
	SkipMissingIdentifier = "missing or invalid employee id"
	SkipMissingName       = "missing employee name"
	SkipMissingDataRow    = "punch data row missing after employee marker"
	SkipInvalidDate       = "day does not exist in month"
)

// SkippedRecord describes an employee block or day excluded from the output.
// Row is the 1-based sheet row; Day is zero when the whole block was dropped.
type SkippedRecord struct {
	Row          int
	EmployeeID   int
	EmployeeName string
	Day          int
	Reason       string
}

// Result is the outcome of one processing run.
type Result struct {
	Daily    []AttendanceDay
	Summary  []EmployeeMonthSummary
	Skipped  []SkippedRecord
	Warnings int
}

// MinutesToHours converts whole minutes to hours rounded to two decimals.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
}

// HoursToMinutes converts an hour amount to the nearest whole minute.
func HoursToMinutes(hours decimal.Decimal) int {
	return int(hours.Mul(sixty).Round(0).IntPart())
}

// FormatClock renders minutes as HH:MM; the hour part grows past two digits
// for monthly totals.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShiftProfile is a named working-day preset that resolves max hours per day.
type ShiftProfile struct {
	Code           string
	Name           string
	Description    string
	MaxHoursPerDay decimal.Decimal
	UseCases       []string
}
