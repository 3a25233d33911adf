package batch

import (
	"time"

	"github.com/MeKo-Tech/langtab/internal/common"
)

// Stats holds statistics about a batch run.
type Stats struct {
	TotalFiles       int                `json:"total_files"`
	ProcessedFiles   int                `json:"processed_files"`
	FailedFiles      int                `json:"failed_files"`
	WorkerCount      int                `json:"worker_count"`
	TotalDuration    time.Duration      `json:"total_duration_ns"`
	AveragePerFile   time.Duration      `json:"average_per_file_ns"`
	ThroughputPerSec float64            `json:"throughput_per_sec"`
	Memory           common.MemoryStats `json:"memory"`
}

// CalculateStats computes run statistics from per-file results.
func CalculateStats(files []FileResult, duration time.Duration, workerCount int) Stats {
	processedFiles := 0
	failedFiles := 0

	for _, file := range files {
		if file.Err != nil {
			failedFiles++
		} else {
			processedFiles++
		}
	}

	var avgPerFile time.Duration
	var throughput float64

	if processedFiles > 0 {
		avgPerFile = duration / time.Duration(processedFiles)
		throughput = float64(processedFiles) / duration.Seconds()
	}

	return Stats{
		TotalFiles:       len(files),
		ProcessedFiles:   processedFiles,
		FailedFiles:      failedFiles,
		WorkerCount:      workerCount,
		TotalDuration:    duration,
		AveragePerFile:   avgPerFile,
		ThroughputPerSec: throughput,
		Memory:           common.ReadMemoryStats(),
	}
}
