package attendance

import (
	"context"
	"io"
)

// AttendanceService turns biometric exports into attendance reports
type AttendanceService interface {
	// Process runs a single uploaded export and stores the generated workbook
	Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error)

	// ProcessBatch runs several exports with shared parameters, each in isolation
	ProcessBatch(ctx context.Context, req BatchRequest) (BatchResponse, error)

	// DownloadReport opens a previously generated report workbook
	DownloadReport(ctx context.Context, filename string) (io.ReadCloser, error)

	// GenerateSample builds a synthetic export in the default vendor layout
	GenerateSample(ctx context.Context, req SampleRequest) ([]byte, error)

	ListProfiles(ctx context.Context) []ShiftProfileResponse
	ListLayouts(ctx context.Context) []LayoutResponse
}
