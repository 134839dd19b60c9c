// Package logging builds the zerolog loggers used by the ebe binaries.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/plus3/ebeclick/config"
	"github.com/plus3/ebeclick/ecs"
)

// New returns a logger writing to w in the configured format and level.
// Every event carries the session id of this process.
func New(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(config.ErrInvalid, err.Error())
	}

	if cfg.LogFormat == config.FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger(), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open is like New but writes to cfg.LogFile when it is set, or to fallback
// otherwise. A nil fallback discards the output. The returned closer
// releases the log file.
func Open(cfg config.Config, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		log, err := New(cfg, fallback)
		return log, nopCloser{}, err
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, errors.Wrap(err, "open log file")
	}
	log, err := New(cfg, f)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nopCloser{}, err
	}
	return log, f, nil
}

// LogStorage writes one event describing the archetypes and singletons of a store.
func LogStorage(log *zerolog.Logger, level zerolog.Level, stats ecs.StorageStats) {
	archetypes := zerolog.Arr()
	for _, a := range stats.ArchetypeBreakdown {
		archetypes.Dict(zerolog.Dict().
			Uint16("archetype_id", a.ID).
			Strs("components", a.ComponentTypes).
			Int("entities", a.EntityCount))
	}

	log.WithLevel(level).
		Int("total_archetypes", stats.ArchetypeCount).
		Int("total_entities", stats.TotalEntityCount).
		Array("archetypes", archetypes).
		Strs("singletons", stats.SingletonTypes).
		Msg("storage")
}

// LogScheduler writes one event with the execution stats of every system.
func LogScheduler(log *zerolog.Logger, level zerolog.Level, name string, stats *ecs.SchedulerStats) {
	systems := zerolog.Arr()
	for _, s := range stats.Systems {
		systems.Dict(zerolog.Dict().
			Str("system", s.Name).
			Int64("executions", s.ExecutionCount).
			Dur("avg", s.AvgDuration).
			Dur("max", s.MaxDuration))
	}

	log.WithLevel(level).
		Str("scheduler", name).
		Uint64("frames", stats.Frames).
		Int("total_systems", stats.SystemCount).
		Array("systems", systems).
		Msg("scheduler")
}
