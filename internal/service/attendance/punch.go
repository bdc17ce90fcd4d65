package attendance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
)

var (
	// clockPattern is the only accepted token shape: two-digit hour and minute.
	clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

	// tokenPattern finds candidate tokens inside a cell. Matching is
	// leftmost-first and non-overlapping, so "11:3820:00" yields "11:38"
	// then "20:00".
	tokenPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// blankMarkers are cell contents some exports use for an empty day.
var blankMarkers = []string{"nan", "none", "null"}

// ParseClock parses a single HH:MM token. It never panics; ok is false for
// anything outside 00:00-23:59 or not in two-digit form.
func ParseClock(token string) (attendance.TimePunch, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return attendance.TimePunch{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	punch, err := attendance.NewTimePunch(hour, minute)
	if err != nil {
		return attendance.TimePunch{}, false
	}
	return punch, true
}

// TokenizePunches extracts the punches of one cell in discovery order.
// Tokens that look like times but fail ParseClock are returned in rejected.
func TokenizePunches(raw string) (punches attendance.PunchSequence, rejected []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return attendance.PunchSequence{}, nil
	}
	for _, marker := range blankMarkers {
		if strings.EqualFold(raw, marker) {
			return attendance.PunchSequence{}, nil
		}
	}

	punches = make(attendance.PunchSequence, 0, 4)
	for _, token := range tokenPattern.FindAllString(raw, -1) {
		punch, ok := ParseClock(token)
		if !ok {
			rejected = append(rejected, token)
			continue
		}
		punches = append(punches, punch)
	}
	return punches, rejected
}
