package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ebeclick/ecs"
)

type archetypeColumn int

const (
	columnSlot archetypeColumn = iota
	columnComponents
	columnLive
	columnShare
)

// archetypeRow is one line of the entity store table.
type archetypeRow struct {
	slot       uint16
	components []string
	live       int
	share      float32
}

// ArchetypeViewerComponent lists the archetypes of a storage with their live
// entity counts and their share of the whole store.
type ArchetypeViewerComponent struct {
	rows      []archetypeRow
	total     int
	sortBy    archetypeColumn
	ascending bool
	selected  uint16
}

// NewArchetypeViewerComponent sorts by live count, largest first.
func NewArchetypeViewerComponent() *ArchetypeViewerComponent {
	return &ArchetypeViewerComponent{sortBy: columnLive}
}

// refresh rebuilds the rows from a stats snapshot. The selection survives as
// long as its archetype still exists.
func (av *ArchetypeViewerComponent) refresh(stats ecs.StorageStats) {
	av.total = stats.TotalEntityCount
	av.rows = av.rows[:0]

	found := false
	for _, arch := range stats.ArchetypeBreakdown {
		row := archetypeRow{
			slot:       arch.ID,
			components: arch.ComponentTypes,
			live:       arch.EntityCount,
		}
		if av.total > 0 {
			row.share = float32(arch.EntityCount) / float32(av.total)
		}
		found = found || arch.ID == av.selected
		av.rows = append(av.rows, row)
	}
	if !found {
		av.selected = 0
	}

	av.sort()
}

func (av *ArchetypeViewerComponent) orderBy(column archetypeColumn, ascending bool) {
	av.sortBy = column
	av.ascending = ascending
	av.sort()
}

func (av *ArchetypeViewerComponent) sort() {
	slices.SortStableFunc(av.rows, func(a, b archetypeRow) int {
		var c int
		switch av.sortBy {
		case columnSlot:
			c = cmp.Compare(a.slot, b.slot)
		case columnComponents:
			c = slices.Compare(a.components, b.components)
		default:
			// share orders exactly like the live count
			c = cmp.Compare(a.live, b.live)
		}
		if !av.ascending {
			c = -c
		}
		return c
	})
}

// Render draws the "Entity Store" window.
func (av *ArchetypeViewerComponent) Render(storage *ecs.Storage) {
	defer imgui.End()
	if !imgui.BeginV("Entity Store", nil, imgui.WindowFlagsNone) {
		return
	}

	av.refresh(storage.CollectStats())
	imgui.Text(fmt.Sprintf("%d live entities in %d archetypes", av.total, len(av.rows)))

	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("archetypes", 4, flags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumnV("Live", imgui.TableColumnFlagsDefaultSort|imgui.TableColumnFlagsPreferSortDescending, 0, 0)
		imgui.TableSetupColumn("Share")
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs != nil && specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			av.orderBy(archetypeColumn(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			specs.SetSpecsDirty(false)
		}

		for _, row := range av.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", row.slot)
			if imgui.SelectableBoolV(label, row.slot == av.selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				av.selected = row.slot
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.live))

			imgui.TableNextColumn()
			imgui.ProgressBarV(row.share, imgui.NewVec2(-1, 0), fmt.Sprintf("%.0f%%", row.share*100))
		}
		imgui.EndTable()
	}

	if row, ok := av.selectedRow(); ok {
		imgui.SeparatorText(fmt.Sprintf("archetype %d", row.slot))
		for _, name := range row.components {
			imgui.BulletText(name)
		}
	}
}

func (av *ArchetypeViewerComponent) selectedRow() (archetypeRow, bool) {
	for _, row := range av.rows {
		if row.slot == av.selected && av.selected != 0 {
			return row, true
		}
	}
	return archetypeRow{}, false
}
