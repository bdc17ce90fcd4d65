package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/pkg/storage"
)

// ReportJobs contains housekeeping jobs for generated report workbooks
type ReportJobs struct {
	storage   storage.FileStorage
	dir       string
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewReportJobs(fileStorage storage.FileStorage, dir string, retention, interval time.Duration) *ReportJobs {
	return &ReportJobs{
		storage:   fileStorage,
		dir:       dir,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_reports", j.interval, j.PurgeExpiredReports)
}

// PurgeExpiredReports deletes workbooks older than the retention window.
func (j *ReportJobs) PurgeExpiredReports(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	removed, err := j.storage.Purge(ctx, j.dir, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge reports: %w", err)
	}

	if removed > 0 {
		slog.Info("Cron: Purged expired reports", "count", removed, "older_than", cutoff.Format(time.RFC3339))
	}
	return nil
}
