package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the state of the runtime at the point a compilation stage
// begins, allowing the cost of that stage to be reported once it completes.
type PerfStats struct {
	// Time at which the stage began.
	started time.Time
	// Total bytes allocated when the stage began.
	allocated uint64
}

// NewPerfStats takes a snapshot of the runtime, marking the start of a stage.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return &PerfStats{time.Now(), m.TotalAlloc}
}

// Log reports (at debug level) the time taken and memory allocated since the
// snapshot was created.
func (p *PerfStats) Log(stage string) {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	elapsed := time.Since(p.started)
	allocated := (m.TotalAlloc - p.allocated) / 1024

	log.Debugf("%s took %s using %v Kb", stage, elapsed, allocated)
}
