// Command attendance processes biometric attendance exports from the
// command line and writes one report workbook per input file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/config"
	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/biometric-hris/attendance-processor/internal/fixtures"
	"github.com/biometric-hris/attendance-processor/internal/pkg/spreadsheet"
	attendanceService "github.com/biometric-hris/attendance-processor/internal/service/attendance"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type options struct {
	year       int
	month      int
	maxHours   string
	profile    string
	selected   string
	layout     string
	layoutFile string
	outDir     string
	sample     string
	workers    int
	logLevel   string
}

func main() {
	now := time.Now()
	opts := options{}

	flag.IntVar(&opts.year, "year", now.Year(), "year of the export")
	flag.IntVar(&opts.month, "month", int(now.Month()), "month of the export (1-12)")
	flag.StringVar(&opts.maxHours, "max-hours", "", "maximum hours per day; overrides -profile")
	flag.StringVar(&opts.profile, "profile", fixtures.ProfileCorporate, "shift profile code")
	flag.StringVar(&opts.selected, "selected", "", "comma separated YYYY-MM-DD dates marked as admin assigned")
	flag.StringVar(&opts.layout, "layout", attendance.DefaultLayoutName, "layout name")
	flag.StringVar(&opts.layoutFile, "layout-file", "", "TOML file with extra layouts")
	flag.StringVar(&opts.outDir, "out", ".", "directory for generated reports")
	flag.StringVar(&opts.sample, "sample", "", "write a sample export for -year/-month to this path and exit")
	flag.IntVar(&opts.workers, "workers", 4, "parallel workers, spread over files or over the days of a single file")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] export.xlsx [export.xls ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(context.Background(), opts, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, files []string) error {
	level, err := config.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	layout, err := resolveLayout(opts.layout, opts.layoutFile)
	if err != nil {
		return err
	}

	if opts.sample != "" {
		data, err := attendanceService.SampleWorkbook(opts.year, time.Month(opts.month), layout)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.sample, data, 0o644); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
		fmt.Println("Sample written to", opts.sample)
		return nil
	}

	if len(files) == 0 {
		flag.Usage()
		return fmt.Errorf("no input files")
	}

	maxHours, err := resolveMaxHours(opts.maxHours, opts.profile)
	if err != nil {
		return err
	}

	var selected []string
	for _, d := range strings.Split(opts.selected, ",") {
		if d = strings.TrimSpace(d); d != "" {
			selected = append(selected, d)
		}
	}

	cfg, err := attendance.NewRunConfiguration(opts.year, opts.month, maxHours, selected, layout)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fileWorkers, dayWorkers := splitWorkers(len(files), opts.workers)
	engine := attendanceService.NewEngine(logger, dayWorkers)
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fileWorkers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(engine, cfg, path, opts.outDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printResults(results)
}

// splitWorkers spends the worker budget on files when there are several,
// and on the days of a single file otherwise, so at most workers
// goroutines classify at any time.
func splitWorkers(files, workers int) (fileWorkers, dayWorkers int) {
	workers = max(workers, 1)
	if files > 1 {
		return min(workers, files), 1
	}
	return 1, workers
}

type fileResult struct {
	input  string
	output string
	result attendance.Result
	err    error
}

func processFile(engine *attendanceService.Engine, cfg attendance.RunConfiguration, path, outDir string) fileResult {
	res := fileResult{input: path}

	f, err := os.Open(path)
	if err != nil {
		res.err = err
		return res
	}
	defer f.Close()

	grid, err := spreadsheet.ReadGrid(f, path)
	if err != nil {
		res.err = err
		return res
	}

	res.result, err = engine.Process(grid, cfg)
	if err != nil {
		res.err = err
		return res
	}

	data, err := spreadsheet.WriteWorkbook(attendanceService.ReportSheets(res.result))
	if err != nil {
		res.err = err
		return res
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res.output = filepath.Join(outDir, fmt.Sprintf("%s_report_%04d_%02d.xlsx", base, cfg.Year, int(cfg.Month)))
	if err := os.WriteFile(res.output, data, 0o644); err != nil {
		res.err = fmt.Errorf("failed to write report: %w", err)
	}
	return res
}

func resolveLayout(name, layoutFile string) (attendance.LayoutSchema, error) {
	if name == "" || name == attendance.DefaultLayoutName {
		return attendance.DefaultLayout(), nil
	}

	layouts, err := config.LoadLayouts(layoutFile)
	if err != nil {
		return attendance.LayoutSchema{}, err
	}
	for _, l := range layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return attendance.LayoutSchema{}, fmt.Errorf("%w: %s", attendance.ErrUnknownLayout, name)
}

func resolveMaxHours(maxHours, profile string) (decimal.Decimal, error) {
	if maxHours != "" {
		v, err := decimal.NewFromString(maxHours)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid -max-hours %q", maxHours)
		}
		return v, nil
	}

	code := strings.ToLower(strings.TrimSpace(profile))
	for _, p := range fixtures.DefaultShiftProfiles() {
		if p.Code == code {
			return p.MaxHoursPerDay, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s", attendance.ErrUnknownProfile, profile)
}

func printResults(results []fileResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	failed := 0

	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s\tFAILED\t%v\n", r.input, r.err)
			continue
		}
		fmt.Fprintf(w, "%s\t-> %s\t%d employees, %d skipped, %d warnings\n",
			r.input, r.output, len(r.result.Summary), len(r.result.Skipped), r.result.Warnings)
		for _, s := range r.result.Summary {
			fmt.Fprintf(w, "\t%d %s\tpresent %d, absent %d, auto %d\t%s\n",
				s.EmployeeID, s.EmployeeName, s.PresentDays, s.AbsentDays, s.AutoAssignedDays, s.TotalHoursAsClock())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
