package common

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
)

// MemoryStats is a snapshot of the process heap, reduced to the fields the
// batch statistics report.
type MemoryStats struct {
	Alloc         uint64  `json:"alloc_bytes"`
	TotalAlloc    uint64  `json:"total_alloc_bytes"`
	Sys           uint64  `json:"sys_bytes"`
	HeapObjects   uint64  `json:"heap_objects"`
	NumGC         uint32  `json:"num_gc"`
	GCCPUFraction float64 `json:"gc_cpu_fraction"`
}

// ReadMemoryStats captures the current process memory statistics.
func ReadMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		Alloc:         m.Alloc,
		TotalAlloc:    m.TotalAlloc,
		Sys:           m.Sys,
		HeapObjects:   m.HeapObjects,
		NumGC:         m.NumGC,
		GCCPUFraction: m.GCCPUFraction,
	}
}

// String returns a humanized single-line summary.
func (m MemoryStats) String() string {
	return fmt.Sprintf("alloc %s, total %s, sys %s, gc %d (%.2f%% cpu)",
		humanize.IBytes(m.Alloc),
		humanize.IBytes(m.TotalAlloc),
		humanize.IBytes(m.Sys),
		m.NumGC,
		m.GCCPUFraction*100)
}
