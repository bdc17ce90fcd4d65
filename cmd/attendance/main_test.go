package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWorkers(t *testing.T) {
	tests := []struct {
		name        string
		files       int
		workers     int
		fileWorkers int
		dayWorkers  int
	}{
		{name: "single file uses day fan-out", files: 1, workers: 4, fileWorkers: 1, dayWorkers: 4},
		{name: "several files run sequential days", files: 6, workers: 4, fileWorkers: 4, dayWorkers: 1},
		{name: "fewer files than workers", files: 2, workers: 8, fileWorkers: 2, dayWorkers: 1},
		{name: "non positive budget", files: 3, workers: 0, fileWorkers: 1, dayWorkers: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileWorkers, dayWorkers := splitWorkers(tt.files, tt.workers)
			assert.Equal(t, tt.fileWorkers, fileWorkers)
			assert.Equal(t, tt.dayWorkers, dayWorkers)
			assert.LessOrEqual(t, fileWorkers*dayWorkers, max(tt.workers, 1))
		})
	}
}
