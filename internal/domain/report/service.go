package report

import "context"

// ReportService analyses the output of an attendance run
type ReportService interface {
	// GenerateStatistics derives rankings and distributions from a monthly summary
	GenerateStatistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)
}
