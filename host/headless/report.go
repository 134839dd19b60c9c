package headless

import (
	"io"
	"text/template"
	"time"

	"github.com/plus3/ebeclick/ecs"
)

// Report summarises a replay.
type Report struct {
	Seed    uint64
	Frames  int
	Clicks  int
	Elapsed time.Duration

	Spawned   uint64
	Despawned uint64
	Chickens  uint64
	Dogs      uint64
	Sounds    map[string]int

	// Sprites is the number of sprites handed to the sink on the last frame.
	Sprites     int
	Projectiles []Projectile
	PlayerLive  bool

	Storage   ecs.StorageStats
	Scheduler *ecs.SchedulerStats
}

// Projectile is a projectile still alive after the last frame.
type Projectile struct {
	Kind string
	X, Y float32
}

// Live returns the number of projectiles alive after the last frame.
func (r *Report) Live() uint64 {
	return r.Spawned - r.Despawned
}

const reportTemplate = `# Replay Report

## Run
- **Seed:** {{.Seed}}
- **Frames:** {{.Frames}}
- **Scripted Clicks:** {{.Clicks}}
- **Elapsed:** {{.Elapsed}}

## Projectiles
- **Spawned:** {{.Spawned}} ({{.Chickens}} chickens, {{.Dogs}} dogs)
- **Despawned:** {{.Despawned}}
- **Live:** {{.Live}}
{{- range .Projectiles}}
  - {{.Kind}} at ({{printf "%.2f" .X}}, {{printf "%.2f" .Y}})
{{- end}}
- **Player Alive:** {{.PlayerLive}}
- **Sprites Last Frame:** {{.Sprites}}

## Sounds
{{- range $name, $n := .Sounds}}
- {{$name}}: {{$n}}
{{- else}}
- none
{{- end}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Entities:** {{.Storage.TotalEntityCount}}
{{- range .Storage.ArchetypeBreakdown}}
  - #{{.ID}} {{.ComponentTypes}}: {{.EntityCount}}
{{- end}}

## Systems
{{- range .Scheduler.Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// Write renders the report as Markdown.
func (r *Report) Write(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
