package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/pkg/spreadsheet"
	"github.com/biometric-hris/attendance-processor/internal/pkg/storage"
	"github.com/biometric-hris/attendance-processor/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportDir is the storage directory generated workbooks are written to.
const ReportDir = "reports"

type AttendanceServiceImpl struct {
	engine          *Engine
	storage         storage.FileStorage
	profiles        []attendance.ShiftProfile
	layouts         map[string]attendance.LayoutSchema
	defaultMaxHours decimal.Decimal
	concurrency     int
}

// resolveRun builds the run configuration from request parameters. An
// explicit max_hours wins over a shift profile, which wins over the
// configured default.
func (s *AttendanceServiceImpl) resolveRun(params attendance.RunParams) (attendance.RunConfiguration, error) {
	layoutName := strings.TrimSpace(params.Layout)
	if layoutName == "" {
		layoutName = attendance.DefaultLayoutName
	}
	layout, ok := s.layouts[layoutName]
	if !ok {
		return attendance.RunConfiguration{}, fmt.Errorf("%w: %s", attendance.ErrUnknownLayout, layoutName)
	}

	maxHours := s.defaultMaxHours
	switch {
	case strings.TrimSpace(params.MaxHours) != "":
		v, err := decimal.NewFromString(strings.TrimSpace(params.MaxHours))
		if err != nil {
			return attendance.RunConfiguration{}, validator.ValidationErrors{
				{Field: "max_hours", Message: "max_hours must be a number"},
			}
		}
		maxHours = v
	case strings.TrimSpace(params.Profile) != "":
		profile, err := s.profile(params.Profile)
		if err != nil {
			return attendance.RunConfiguration{}, err
		}
		maxHours = profile.MaxHoursPerDay
	}

	return attendance.NewRunConfiguration(params.Year, params.Month, maxHours, params.SelectedDates, layout)
}

func (s *AttendanceServiceImpl) profile(code string) (attendance.ShiftProfile, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, p := range s.profiles {
		if p.Code == code {
			return p, nil
		}
	}
	return attendance.ShiftProfile{}, fmt.Errorf("%w: %s", attendance.ErrUnknownProfile, code)
}

// run processes one workbook and stores the generated report.
func (s *AttendanceServiceImpl) run(ctx context.Context, upload attendance.UploadedFile, cfg attendance.RunConfiguration) (attendance.ProcessResponse, error) {
	grid, err := spreadsheet.ReadGrid(upload.File, upload.Filename)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnreadable) {
			return attendance.ProcessResponse{}, fmt.Errorf("%w: %s: %w", attendance.ErrInputFormat, upload.Filename, err)
		}
		return attendance.ProcessResponse{}, fmt.Errorf("failed to read %s: %w", upload.Filename, err)
	}

	result, err := s.engine.Process(grid, cfg)
	if err != nil {
		return attendance.ProcessResponse{}, err
	}

	data, err := spreadsheet.WriteWorkbook(ReportSheets(result))
	if err != nil {
		return attendance.ProcessResponse{}, fmt.Errorf("failed to build report workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_%04d_%02d_%s.xlsx", cfg.Year, int(cfg.Month), uuid.NewString())
	if _, err := s.storage.Upload(ctx, bytes.NewReader(data), path.Join(ReportDir, filename)); err != nil {
		return attendance.ProcessResponse{}, fmt.Errorf("failed to store report: %w", err)
	}

	return newProcessResponse(upload.Filename, filename, cfg, result), nil
}

func newProcessResponse(source, reportFile string, cfg attendance.RunConfiguration, result attendance.Result) attendance.ProcessResponse {
	resp := attendance.ProcessResponse{
		Filename:       source,
		Period:         fmt.Sprintf("%04d-%02d", cfg.Year, int(cfg.Month)),
		Layout:         cfg.Layout.Name,
		MaxHoursPerDay: cfg.MaxHoursPerDay.InexactFloat64(),
		SelectedDates:  cfg.SelectedDates.Strings(),
		DailyReport:    make([]attendance.DailyRecordResponse, 0, len(result.Daily)),
		MonthlySummary: make([]attendance.MonthlySummaryResponse, 0, len(result.Summary)),
		Skipped:        make([]attendance.SkippedRecordResponse, 0, len(result.Skipped)),
		Warnings:       result.Warnings,
		Statistics:     attendance.NewRunStatistics(result),
		ReportFile:     reportFile,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	for _, d := range result.Daily {
		resp.DailyReport = append(resp.DailyReport, attendance.NewDailyRecordResponse(d))
	}
	for _, sum := range result.Summary {
		resp.MonthlySummary = append(resp.MonthlySummary, attendance.NewMonthlySummaryResponse(sum))
	}
	for _, sk := range result.Skipped {
		resp.Skipped = append(resp.Skipped, attendance.SkippedRecordResponse{
			Row:          sk.Row,
			EmployeeID:   sk.EmployeeID,
			EmployeeName: sk.EmployeeName,
			Day:          sk.Day,
			Reason:       sk.Reason,
		})
	}

	return resp
}

// Process implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Process(ctx context.Context, req attendance.ProcessRequest) (attendance.ProcessResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ProcessResponse{}, err
	}

	cfg, err := s.resolveRun(req.RunParams)
	if err != nil {
		return attendance.ProcessResponse{}, err
	}

	resp, err := s.run(ctx, req.Upload, cfg)
	if err != nil {
		return attendance.ProcessResponse{}, err
	}

	slog.Info("Attendance report generated",
		"source", req.Upload.Filename,
		"report_file", resp.ReportFile,
		"employees", len(resp.MonthlySummary),
	)
	return resp, nil
}

// ProcessBatch implements attendance.AttendanceService. A failing file is
// reported in its item and does not abort the others.
func (s *AttendanceServiceImpl) ProcessBatch(ctx context.Context, req attendance.BatchRequest) (attendance.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchResponse{}, err
	}

	cfg, err := s.resolveRun(req.RunParams)
	if err != nil {
		return attendance.BatchResponse{}, err
	}

	items := make([]attendance.BatchItemResponse, len(req.Uploads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, upload := range req.Uploads {
		g.Go(func() error {
			item := attendance.BatchItemResponse{Filename: upload.Filename}
			if err := gctx.Err(); err != nil {
				item.Error = err.Error()
				items[i] = item
				return nil
			}

			resp, err := s.run(gctx, upload, cfg)
			if err != nil {
				slog.Error("Failed to process attendance export", "file", upload.Filename, "error", err)
				item.Error = err.Error()
			} else {
				item.Success = true
				item.Result = &resp
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return attendance.BatchResponse{}, err
	}

	batch := attendance.BatchResponse{Items: items}
	for _, item := range items {
		if item.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}

	slog.Info("Attendance batch completed", "files", len(items), "succeeded", batch.Succeeded, "failed", batch.Failed)
	return batch, nil
}

// DownloadReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DownloadReport(ctx context.Context, filename string) (io.ReadCloser, error) {
	if !validator.IsValidFilename(filename) || !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return nil, validator.ValidationErrors{
			{Field: "filename", Message: "invalid report filename"},
		}
	}

	rc, err := s.storage.Download(ctx, path.Join(ReportDir, filename))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", attendance.ErrReportNotFound, filename)
		}
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	return rc, nil
}

// GenerateSample implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GenerateSample(ctx context.Context, req attendance.SampleRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	data, err := SampleWorkbook(req.Year, time.Month(req.Month), s.layouts[attendance.DefaultLayoutName])
	if err != nil {
		return nil, fmt.Errorf("failed to build sample workbook: %w", err)
	}
	return data, nil
}

// ListProfiles implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListProfiles(ctx context.Context) []attendance.ShiftProfileResponse {
	resp := make([]attendance.ShiftProfileResponse, 0, len(s.profiles))
	for _, p := range s.profiles {
		resp = append(resp, attendance.ShiftProfileResponse{
			Code:           p.Code,
			Name:           p.Name,
			Description:    p.Description,
			MaxHoursPerDay: p.MaxHoursPerDay.InexactFloat64(),
			UseCases:       p.UseCases,
		})
	}
	return resp
}

// ListLayouts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListLayouts(ctx context.Context) []attendance.LayoutResponse {
	resp := make([]attendance.LayoutResponse, 0, len(s.layouts))
	for _, l := range s.layouts {
		resp = append(resp, attendance.LayoutResponse{
			Name:          l.Name,
			HeaderLabels:  l.HeaderLabels,
			MinDayColumns: l.MinDayColumns,
			BlockMarker:   l.BlockMarker,
			IDColumn:      l.IDColumn,
			NameColumn:    l.NameColumn,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Name < resp[j].Name })
	return resp
}

// NewAttendanceService wires the engine to report storage. layouts must
// include the default layout; it is added when missing.
func NewAttendanceService(
	engine *Engine,
	fileStorage storage.FileStorage,
	profiles []attendance.ShiftProfile,
	layouts []attendance.LayoutSchema,
	defaultMaxHours decimal.Decimal,
	concurrency int,
) attendance.AttendanceService {
	byName := make(map[string]attendance.LayoutSchema, len(layouts)+1)
	byName[attendance.DefaultLayoutName] = attendance.DefaultLayout()
	for _, l := range layouts {
		byName[l.Name] = l
	}
	if concurrency < 1 {
		concurrency = 1
	}

	return &AttendanceServiceImpl{
		engine:          engine,
		storage:         fileStorage,
		profiles:        profiles,
		layouts:         byName,
		defaultMaxHours: defaultMaxHours,
		concurrency:     concurrency,
	}
}
