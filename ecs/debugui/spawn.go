package debugui

import "github.com/plus3/ebeclick/ecs"

// SpawnDebugUI adds the stats windows to storage as ImguiItem entities.
// The performance window also lists the systems of the given schedulers.
func SpawnDebugUI(storage *ecs.Storage, schedulers ...NamedScheduler) {
	perf := NewPerformanceStatsComponent(120, schedulers...)
	viewer := NewArchetypeViewerComponent()

	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { viewer.Render(storage) }})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
