package fixtures

import (
	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// ==========================================
// SHIFT PROFILES
// ==========================================

// Profile codes accepted by the profile request parameter.
const (
	ProfileCorporate     = "corporate"
	ProfileTech          = "tech"
	ProfileManufacturing = "manufacturing"
	ProfileIntensive     = "intensive"
)

// DefaultShiftProfiles returns the built-in workday presets, shortest first.
func DefaultShiftProfiles() []attendance.ShiftProfile {
	return []attendance.ShiftProfile{
		{
			Code:           ProfileCorporate,
			Name:           "Standard 8-Hour Workday",
			Description:    "Typical corporate/office environment",
			MaxHoursPerDay: decimal.NewFromInt(8),
			UseCases: []string{
				"Banks, IT companies, corporate offices",
				"Standard 9-5 workday with 1-hour lunch",
			},
		},
		{
			Code:           ProfileTech,
			Name:           "Extended 10-Hour Workday",
			Description:    "Tech startups, consultancies, extended hours",
			MaxHoursPerDay: decimal.NewFromInt(10),
			UseCases: []string{
				"Tech startups, management consulting",
				"High-productivity organizations",
			},
		},
		{
			Code:           ProfileManufacturing,
			Name:           "Manufacturing/Healthcare 12-Hour Shift",
			Description:    "Two 12-hour shifts, typical in manufacturing and hospitals",
			MaxHoursPerDay: decimal.NewFromInt(12),
			UseCases: []string{
				"Manufacturing plants, hospitals, factories",
				"24/7 operations with shift work",
			},
		},
		{
			Code:           ProfileIntensive,
			Name:           "Intensive 14-Hour Workday",
			Description:    "Specialized roles with extended hours",
			MaxHoursPerDay: decimal.NewFromInt(14),
			UseCases: []string{
				"Emergency response teams, intensive care units",
				"Project-based intensive work",
			},
		},
	}
}
