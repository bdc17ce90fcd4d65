package attendance

import (
	"testing"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cfg := testConfig(t, 8)

	tests := []struct {
		name        string
		tokens      []string
		minutes     int
		hours       string
		status      attendance.Status
		description string
	}{
		{
			name:   "no punches",
			status: attendance.StatusAbsent,
			hours:  "0",
		},
		{
			name:        "single punch",
			tokens:      []string{"10:05"},
			minutes:     480,
			hours:       "8",
			status:      attendance.StatusMissingPunchOut,
			description: "10:05",
		},
		{
			name:        "one pair",
			tokens:      []string{"09:35", "18:10"},
			minutes:     515,
			hours:       "8.58",
			status:      attendance.StatusPresent,
			description: "09:35 - 18:10",
		},
		{
			name:        "two pairs",
			tokens:      []string{"09:15", "13:00", "14:00", "18:45"},
			minutes:     510,
			hours:       "8.5",
			status:      attendance.StatusPresent,
			description: "09:15 - 13:00 | 14:00 - 18:45",
		},
		{
			name:        "odd count",
			tokens:      []string{"09:00", "18:00", "19:00"},
			minutes:     480,
			hours:       "8",
			status:      attendance.StatusPunchError,
			description: "09:00 18:00 19:00",
		},
		{
			name:        "overnight",
			tokens:      []string{"22:00", "06:00"},
			minutes:     480,
			hours:       "8",
			status:      attendance.StatusPresent,
			description: "22:00 - 06:00",
		},
		{
			name:        "rounds to nearest five minutes",
			tokens:      []string{"11:38", "20:00"},
			minutes:     500,
			hours:       "8.33",
			status:      attendance.StatusPresent,
			description: "11:38 - 20:00",
		},
		{
			name:        "identical punches",
			tokens:      []string{"09:00", "09:00"},
			minutes:     0,
			hours:       "0",
			status:      attendance.StatusPresent,
			description: "09:00 - 09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(punches(t, tt.tokens...), cfg)

			assert.Equal(t, tt.status, c.Status)
			assert.Equal(t, tt.minutes, c.Minutes)
			assert.Equal(t, tt.hours, c.Hours.String())
			assert.Equal(t, tt.description, c.Description)
		})
	}
}

func TestClassify_UsesConfiguredHours(t *testing.T) {
	cfg := testConfig(t, 12)

	assert.Equal(t, 720, Classify(punches(t, "07:00"), cfg).Minutes)
	assert.Equal(t, 720, Classify(punches(t, "07:00", "12:00", "13:00"), cfg).Minutes)
	assert.Equal(t, 300, Classify(punches(t, "07:00", "12:00"), cfg).Minutes)
}

func TestClassify_AssignsExactConfiguredHours(t *testing.T) {
	tests := []struct {
		maxHours string
		minutes  int
		clock    string
	}{
		{maxHours: "8", minutes: 480, clock: "08:00"},
		{maxHours: "8.33", minutes: 500, clock: "08:20"},
		{maxHours: "7.99", minutes: 479, clock: "07:59"},
		{maxHours: "9.999", minutes: 600, clock: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.maxHours, func(t *testing.T) {
			cfg, err := attendance.NewRunConfiguration(2025, 12, decimal.RequireFromString(tt.maxHours), []string{"2025-12-25"}, attendance.DefaultLayout())
			require.NoError(t, err)

			for _, c := range []Classification{
				Classify(punches(t, "10:05"), cfg),
				Classify(punches(t, "09:00", "12:00", "13:00"), cfg),
				adminAssigned(cfg),
			} {
				assert.Equal(t, tt.maxHours, c.Hours.String(), c.Status.String())
				assert.Equal(t, tt.minutes, c.Minutes, c.Status.String())
			}

			single, _ := BuildDay(record(35, 3, "10:05"), cfg)
			assert.Equal(t, tt.maxHours, single.WorkedHours().String())
			assert.Equal(t, tt.clock, single.HoursAsClock())

			admin, _ := BuildDay(record(35, 25, ""), cfg)
			assert.Equal(t, attendance.StatusAdminAssigned, admin.Status)
			assert.Equal(t, tt.maxHours, admin.WorkedHours().String())

			present, _ := BuildDay(record(35, 4, "09:35 18:10"), cfg)
			assert.Equal(t, "8.58", present.WorkedHours().String())

			summary := Summarize([]attendance.AttendanceDay{single, admin, present}, cfg)
			require.Len(t, summary, 1)
			want := decimal.RequireFromString(tt.maxHours).Mul(decimal.NewFromInt(2)).Add(decimal.RequireFromString("8.58"))
			assert.True(t, want.Equal(summary[0].TotalHours()), "total %s, want %s", summary[0].TotalHours(), want)
		})
	}
}

func TestRoundToStep(t *testing.T) {
	tests := map[int]int{
		-10: 0,
		0:   0,
		2:   0,
		3:   5,
		502: 500,
		503: 505,
		515: 515,
	}
	for in, want := range tests {
		assert.Equal(t, want, roundToStep(in), "roundToStep(%d)", in)
	}
}
