package attendance

import (
	"strings"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// roundingStep is the granularity worked time is rounded to, in minutes.
const roundingStep = 5

const adminSelectedDescription = "Admin selected date"

// Classification is the outcome of applying the punch rules to one day.
// Hours is the credited time; Minutes is its clock rendering.
type Classification struct {
	Hours       decimal.Decimal
	Minutes     int
	Status      attendance.Status
	Description string
}

// Classify maps a day's punches to worked minutes and a status:
//
//	0 punches      absent
//	1 punch        missing punch-out, standard day assigned
//	even punches   sequential in/out pairs summed
//	odd (>1)       punch error, standard day assigned
func Classify(punches attendance.PunchSequence, cfg attendance.RunConfiguration) Classification {
	n := len(punches)

	switch {
	case n == 0:
		return Classification{Hours: decimal.Zero, Status: attendance.StatusAbsent}

	case n == 1:
		return Classification{
			Hours:       cfg.MaxHoursPerDay,
			Minutes:     cfg.MaxMinutesPerDay(),
			Status:      attendance.StatusMissingPunchOut,
			Description: punches[0].String(),
		}

	case n%2 == 1:
		parts := make([]string, n)
		for i, p := range punches {
			parts[i] = p.String()
		}
		return Classification{
			Hours:       cfg.MaxHoursPerDay,
			Minutes:     cfg.MaxMinutesPerDay(),
			Status:      attendance.StatusPunchError,
			Description: strings.Join(parts, " "),
		}
	}

	total := 0
	pairs := make([]string, 0, n/2)
	for i := 0; i < n; i += 2 {
		total += pairMinutes(punches[i], punches[i+1])
		pairs = append(pairs, punches[i].String()+" - "+punches[i+1].String())
	}

	return Classification{
		Hours:       attendance.MinutesToHours(total),
		Minutes:     total,
		Status:      attendance.StatusPresent,
		Description: strings.Join(pairs, " | "),
	}
}

// adminAssigned is the classification of an empty selected date.
func adminAssigned(cfg attendance.RunConfiguration) Classification {
	return Classification{
		Hours:       cfg.MaxHoursPerDay,
		Minutes:     cfg.MaxMinutesPerDay(),
		Status:      attendance.StatusAdminAssigned,
		Description: adminSelectedDescription,
	}
}

// pairMinutes is the in/out duration rounded to the nearest five minutes.
func pairMinutes(in, out attendance.TimePunch) int {
	return roundToStep(in.MinutesUntil(out))
}

func roundToStep(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + roundingStep/2) / roundingStep * roundingStep
}
