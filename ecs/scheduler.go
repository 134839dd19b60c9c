package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// storageBinder is implemented by Query and Singleton fields of systems.
type storageBinder interface {
	Init(storage *Storage)
}

// snapshot is implemented by Query fields; the scheduler retakes the
// snapshot right before the owning system runs.
type snapshot interface {
	Invalidate()
}

type registeredSystem struct {
	system    System
	snapshots []snapshot
	stats     *systemStatsInternal
}

// Scheduler runs systems in registration order, one pass per frame.
// Startup systems run once, before the first frame, and their commands are
// flushed before any frame system sees the storage.
type Scheduler struct {
	storage     *Storage
	startup     []System
	startupDone bool
	systems     []*registeredSystem
	frames      uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a frame system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, &registeredSystem{
		system:    system,
		snapshots: s.bindFields(system),
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// RegisterStartup adds a system that runs exactly once, before the first frame.
// It panics once the startup stage has run.
func (s *Scheduler) RegisterStartup(system System) {
	if s.startupDone {
		panic("startup stage already ran")
	}
	s.bindFields(system)
	s.startup = append(s.startup, system)
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

func (s *Scheduler) bindFields(system System) []snapshot {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var snapshots []snapshot
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if snap, ok := binder.(snapshot); ok {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots
}

// Frames returns the number of completed frame passes.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Startup runs the startup systems and flushes their commands. Only the
// first call does anything; Once calls it implicitly.
func (s *Scheduler) Startup() {
	if s.startupDone {
		return
	}
	s.startupDone = true
	if len(s.startup) == 0 {
		return
	}

	frame := newUpdateFrame(0, 0, s.storage)
	for _, system := range s.startup {
		system.Execute(frame)
	}
	frame.Commands.Flush(s.storage)
}

// Once executes all registered systems once with the given delta time and
// then flushes the frame's commands. The first call runs the startup stage first.
func (s *Scheduler) Once(dt float64) {
	s.Startup()

	s.frames++
	frame := newUpdateFrame(s.frames, dt, s.storage)

	for _, rs := range s.systems {
		for _, snap := range rs.snapshots {
			snap.Invalidate()
		}

		start := time.Now()
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := rs.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run executes a frame every interval until the context is cancelled.
// Every frame advances by exactly interval, whatever the wall-clock jitter.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(step)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		var avgDuration time.Duration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
