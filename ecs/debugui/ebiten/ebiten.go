// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	ebitengine "github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ebeclick/ecs"
	"github.com/plus3/ebeclick/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini is not written.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Attach stores the backend and the input state as singletons of storage and
// registers the ImguiSystem on scheduler.
func (b *ImguiBackend) Attach(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	debugui.RegisterDebugUIComponents(storage.Registry())
	ecs.NewSingleton[ImguiBackend](storage, *b)
	ecs.NewSingleton[debugui.ImguiInputState](storage)
	scheduler.Register(&debugui.ImguiSystem{})
}

// Frame runs fn between BeginFrame and EndFrame so that ImGui windows
// queued by ImguiSystem are built inside the frame.
func (b *ImguiBackend) Frame(fn func()) {
	b.BeginFrame()
	defer b.EndFrame()
	fn()
}

// Overlay draws the ImGui windows on top of screen.
func (b *ImguiBackend) Overlay(screen *ebitengine.Image) {
	b.Draw(screen)
}
