package cron

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purgeCall struct {
	dir    string
	cutoff time.Time
}

type fakeStorage struct {
	calls   []purgeCall
	removed int
	err     error
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string) (string, error) {
	return path, nil
}

func (f *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error { return nil }

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) { return false, nil }

func (f *fakeStorage) Purge(ctx context.Context, dir string, cutoff time.Time) (int, error) {
	f.calls = append(f.calls, purgeCall{dir: dir, cutoff: cutoff})
	return f.removed, f.err
}

func TestPurgeExpiredReports(t *testing.T) {
	now := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)
	fs := &fakeStorage{removed: 3}
	jobs := NewReportJobs(fs, "reports", 24*time.Hour, time.Hour)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.PurgeExpiredReports(context.Background()))
	require.Len(t, fs.calls, 1)
	assert.Equal(t, "reports", fs.calls[0].dir)
	assert.Equal(t, now.Add(-24*time.Hour), fs.calls[0].cutoff)
}

func TestPurgeExpiredReports_Error(t *testing.T) {
	fs := &fakeStorage{err: errors.New("disk gone")}
	jobs := NewReportJobs(fs, "reports", time.Hour, time.Hour)

	err := jobs.PurgeExpiredReports(context.Background())
	assert.ErrorContains(t, err, "disk gone")
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var ran []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.ErrorContains(t, err, "second: boom")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	var count atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		count.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := count.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())
}

func TestReportJobs_Register(t *testing.T) {
	s := NewScheduler()
	NewReportJobs(&fakeStorage{}, "reports", time.Hour, 15*time.Minute).RegisterJobs(s)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, "purge_expired_reports", s.jobs[0].Name)
	assert.Equal(t, 15*time.Minute, s.jobs[0].Interval)
}
