package debugui

import "github.com/plus3/ebeclick/ecs"

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
	schedulers    []NamedScheduler
}

// NamedScheduler labels a scheduler in the stats window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}
