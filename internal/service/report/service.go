package report

import (
	"context"
	"sort"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/report"
	"github.com/shopspring/decimal"
)

const mostAbsentLimit = 5

var hundred = decimal.NewFromInt(100)

type ReportServiceImpl struct {
	defaultMaxHours decimal.Decimal
}

func NewReportService(defaultMaxHours decimal.Decimal) report.ReportService {
	return &ReportServiceImpl{
		defaultMaxHours: defaultMaxHours,
	}
}

// GenerateStatistics implements report.ReportService.
func (s *ReportServiceImpl) GenerateStatistics(ctx context.Context, req report.StatisticsRequest) (report.StatisticsResponse, error) {
	if err := req.Validate(); err != nil {
		return report.StatisticsResponse{}, err
	}

	maxHours := req.MaxHoursPerDay
	if maxHours.IsZero() {
		maxHours = s.defaultMaxHours
	}

	rows := req.MonthlySummary

	resp := report.StatisticsResponse{
		TopPerformer:      topPerformer(rows),
		AttendanceRate:    attendanceRate(rows).InexactFloat64(),
		HoursDistribution: hoursDistribution(rows),
		MostAbsent:        mostAbsent(rows, mostAbsentLimit),
		HoursVariance:     hoursVariance(rows, maxHours),
		AutoAssigned:      autoAssigned(rows),
		MaxHoursPerDay:    maxHours.InexactFloat64(),
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if len(req.DailyReport) > 0 {
		resp.StatusBreakdown = make(map[string]int)
		for _, d := range req.DailyReport {
			resp.StatusBreakdown[d.Status]++
		}
	}

	return resp, nil
}

// topPerformer returns the employee with the most hours; ties go to the
// first row.
func topPerformer(rows []report.SummaryRow) report.EmployeeHours {
	best := rows[0]
	for _, r := range rows[1:] {
		if r.TotalHours.GreaterThan(best.TotalHours) {
			best = r
		}
	}
	return report.EmployeeHours{
		EmployeeID:   best.EmployeeID,
		EmployeeName: best.EmployeeName,
		TotalHours:   best.TotalHours.InexactFloat64(),
		PresentDays:  best.PresentDays,
	}
}

// attendanceRate is present / (present + absent) as a percentage.
func attendanceRate(rows []report.SummaryRow) decimal.Decimal {
	present, absent := 0, 0
	for _, r := range rows {
		present += r.PresentDays
		absent += r.AbsentDays
	}
	if present+absent == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present)).
		Div(decimal.NewFromInt(int64(present + absent))).
		Mul(hundred).
		Round(2)
}

func hoursDistribution(rows []report.SummaryRow) report.HoursDistribution {
	hours := make([]decimal.Decimal, len(rows))
	for i, r := range rows {
		hours[i] = r.TotalHours
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].LessThan(hours[j]) })

	n := len(hours)
	median := hours[n/2]
	if n%2 == 0 {
		median = hours[n/2-1].Add(hours[n/2]).Div(decimal.NewFromInt(2))
	}

	return report.HoursDistribution{
		Min:    hours[0].InexactFloat64(),
		Max:    hours[n-1].InexactFloat64(),
		Mean:   decimal.Sum(hours[0], hours[1:]...).Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64(),
		Median: median.Round(2).InexactFloat64(),
	}
}

// mostAbsent ranks employees with at least one absence, most absences first.
func mostAbsent(rows []report.SummaryRow, limit int) []report.AbsenceRanking {
	ranked := make([]report.SummaryRow, 0, len(rows))
	for _, r := range rows {
		if r.AbsentDays > 0 {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AbsentDays != ranked[j].AbsentDays {
			return ranked[i].AbsentDays > ranked[j].AbsentDays
		}
		return ranked[i].EmployeeID < ranked[j].EmployeeID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]report.AbsenceRanking, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, report.AbsenceRanking{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			AbsentDays:   r.AbsentDays,
			PresentDays:  r.PresentDays,
		})
	}
	return out
}

func hoursVariance(rows []report.SummaryRow, maxHours decimal.Decimal) []report.HoursVariance {
	out := make([]report.HoursVariance, 0, len(rows))
	for _, r := range rows {
		expected := maxHours.Mul(decimal.NewFromInt(int64(r.PresentDays)))
		out = append(out, report.HoursVariance{
			EmployeeID:    r.EmployeeID,
			EmployeeName:  r.EmployeeName,
			TotalHours:    r.TotalHours.InexactFloat64(),
			ExpectedHours: expected.InexactFloat64(),
			Variance:      r.TotalHours.Sub(expected).Round(2).InexactFloat64(),
		})
	}
	return out
}

func autoAssigned(rows []report.SummaryRow) []report.AutoAssignedEmployee {
	out := make([]report.AutoAssignedEmployee, 0)
	for _, r := range rows {
		if r.AutoAssignedDays == 0 {
			continue
		}
		out = append(out, report.AutoAssignedEmployee{
			EmployeeID:       r.EmployeeID,
			EmployeeName:     r.EmployeeName,
			AutoAssignedDays: r.AutoAssignedDays,
			TotalHours:       r.TotalHours.InexactFloat64(),
		})
	}
	return out
}
