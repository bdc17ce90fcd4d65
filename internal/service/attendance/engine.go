package attendance

import (
	"fmt"
	"log/slog"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
)

// Engine runs the extraction, classification and aggregation stages. It
// holds no per-run state; everything a run needs arrives in the
// RunConfiguration.
type Engine struct {
	logger  *slog.Logger
	workers int
}

func NewEngine(logger *slog.Logger, workers int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Engine{logger: logger, workers: workers}
}

// Process turns a raw sheet grid into the daily report and monthly summary.
func (e *Engine) Process(grid [][]string, cfg attendance.RunConfiguration) (attendance.Result, error) {
	if !cfg.MaxHoursPerDay.IsPositive() || cfg.Month < 1 || cfg.Month > 12 {
		return attendance.Result{}, fmt.Errorf("%w: configuration must be built with NewRunConfiguration", attendance.ErrInvalidConfiguration)
	}

	period := fmt.Sprintf("%04d-%02d", cfg.Year, int(cfg.Month))
	log := e.logger.With(slog.String("period", period), slog.String("layout", cfg.Layout.Name))
	log.Info("Processing attendance export",
		"rows", len(grid),
		"max_hours_per_day", cfg.MaxHoursPerDay.String(),
		"selected_dates", cfg.SelectedDates.Strings(),
	)

	blocks, skipped, err := ExtractEmployees(grid, cfg.Layout)
	if err != nil {
		log.Error("Failed to locate attendance layout", "error", err)
		return attendance.Result{}, err
	}
	for _, s := range skipped {
		log.Warn("Employee block skipped", "row", s.Row, "employee_id", s.EmployeeID, "employee_name", s.EmployeeName, "reason", s.Reason)
	}
	log.Info("Extracted employees", "count", len(blocks))

	records, invalid := Normalize(blocks, cfg.Year, cfg.Month)
	for _, s := range invalid {
		log.Warn("Attendance record skipped", "row", s.Row, "employee_id", s.EmployeeID, "day", s.Day, "reason", s.Reason)
	}
	skipped = append(skipped, invalid...)

	days, rejected := BuildDailyReport(records, cfg, e.workers)
	warnings := 0
	for i, tokens := range rejected {
		for _, token := range tokens {
			warnings++
			log.Warn("Invalid punch token dropped",
				"employee_id", days[i].EmployeeID,
				"date", days[i].Date.Format("2006-01-02"),
				"token", token,
			)
		}
	}

	summary := Summarize(days, cfg)
	log.Info("Attendance processing completed",
		"daily_records", len(days),
		"employees", len(summary),
		"skipped", len(skipped),
		"warnings", warnings,
	)

	return attendance.Result{
		Daily:    days,
		Summary:  summary,
		Skipped:  skipped,
		Warnings: warnings,
	}, nil
}
