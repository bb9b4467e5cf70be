package engine

import (
	"maps"

	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/geometry"
	"github.com/pixil98/go-grim/internal/snapshot"
)

// Snapshot copies the current state of every runtime. It does not change
// any state and does not append to the event log.
func (e *Engine) Snapshot() *snapshot.Document {
	w := e.world

	doc := &snapshot.Document{
		SelectedActor:  optional(w.SelectedActor()),
		VoiceEffect:    optional(w.VoiceEffect()),
		LoadedSets:     nonNil(w.LoadedSets()),
		CurrentSetups:  map[string]snapshot.SetupSelection{},
		Sets:           []snapshot.Set{},
		Actors:         map[string]*game.Actor{},
		Objects:        []snapshot.Object{},
		VisibleObjects: nonNil(w.VisibleObjects()),
		HotlistHandles: nonNil(w.Hotlist()),
		Inventory:      nonNil(w.Inventory()),
		InventoryRooms: nonNil(w.InventoryRooms()),
		Achievements:   w.Achievements(),
		CutScenes:      nonNil(e.cutscenes.CutScenes()),
		Overrides:      nonNil(e.cutscenes.Overrides()),
		Music:          e.audio.Music(),
		Sfx:            e.audio.Sfx(),
		Scripts:        nonNil(e.scripts.Scripts()),
		Paused:         w.Pause(),
		Menus:          w.Menus(),
		Events:         nonNil(e.events.Entries()),
	}
	if doc.Paused.History == nil {
		doc.Paused.History = []game.PauseEvent{}
	}

	if cur, ok := w.CurrentSet(); ok {
		cs := &snapshot.CurrentSet{
			SetFile:      cur.File,
			VariableName: cur.VariableName,
			DisplayName:  optional(cur.DisplayName),
		}
		if idx, ok := w.CurrentSetup(cur.File); ok {
			cs.Selection = setupSelection(w.Descriptor(cur.File), idx)
		}
		doc.CurrentSet = cs
	}

	for _, v := range w.KnownSets() {
		set := setView(v)
		if set.CurrentSetup != nil {
			doc.CurrentSetups[v.File] = *set.CurrentSetup
		}
		doc.Sets = append(doc.Sets, set)
	}

	for _, a := range w.Actors() {
		c := a.Clone()
		if c.CostumeStack == nil {
			c.CostumeStack = []string{}
		}
		if c.Sectors == nil {
			c.Sectors = map[string]geometry.SectorHit{}
		}
		doc.Actors[c.ID] = c
	}

	for _, o := range w.Objects() {
		doc.Objects = append(doc.Objects, e.objectView(o))
	}

	if c, ok := e.cutscenes.Commentary(); ok {
		doc.Commentary = &c
	}
	if d, ok := e.cutscenes.ActiveDialog(); ok {
		doc.Dialog = &d
	}
	if m, ok := e.cutscenes.FullscreenMovie(); ok {
		doc.Movie = &m
	}
	return doc
}

func (e *Engine) objectView(o *game.Object) snapshot.Object {
	view := snapshot.Object{
		Handle:     o.Handle,
		Name:       o.Name,
		StringName: optional(o.DisplayName),
		SetFile:    optional(o.SetFile),
		Range:      o.Range,
		Touchable:  o.Touchable,
		Visible:    o.Visible,
		Sectors:    []snapshot.ObjectSector{},
	}
	if o.Position != nil {
		p := *o.Position
		view.Position = &p
	}
	if o.InterestActor != 0 {
		link := &snapshot.ActorLink{Handle: o.InterestActor}
		if a, ok := e.world.ActorByHandle(o.InterestActor); ok {
			link.ActorID = optional(a.ID)
			link.ActorLabel = optional(a.Name)
		}
		view.InterestActor = link
	}
	for _, s := range o.Sectors {
		view.Sectors = append(view.Sectors, snapshot.ObjectSector{Name: s.Name, Kind: s.Kind.String()})
	}
	if o.SetFile != "" {
		in := e.world.ObjectInActiveSector(o)
		view.InActiveSector = &in
	}
	return view
}

func setView(v game.SetView) snapshot.Set {
	set := snapshot.Set{
		SetFile:       v.File,
		HasGeometry:   v.Geometry != nil,
		Setups:        []snapshot.Setup{},
		Sectors:       []snapshot.Sector{},
		ActiveSectors: maps.Clone(v.Sectors),
	}
	if set.ActiveSectors == nil {
		set.ActiveSectors = map[string]bool{}
	}
	if v.Descriptor != nil {
		set.VariableName = optional(v.Descriptor.VariableName)
		set.DisplayName = optional(v.Descriptor.DisplayName)
	}
	if v.CurrentSetup != nil {
		set.CurrentSetup = setupSelection(v.Descriptor, *v.CurrentSetup)
	}

	if v.Geometry == nil {
		return set
	}
	for _, s := range v.Geometry.Setups {
		set.Setups = append(set.Setups, snapshot.Setup{
			Name:     s.Name,
			Interest: pair(s.Interest),
			Position: pair(s.Position),
		})
	}
	for _, p := range v.Geometry.Sectors {
		active, ok := v.Sectors[p.Name]
		if !ok {
			active = true
		}
		sector := snapshot.Sector{
			ID:            p.ID,
			Name:          p.Name,
			Kind:          p.Kind.String(),
			DefaultActive: p.DefaultActive,
			Active:        active,
			Vertices:      make([][2]float64, 0, len(p.Vertices)),
			Centroid:      [2]float64{p.Centroid.X, p.Centroid.Y},
		}
		for _, pt := range p.Vertices {
			sector.Vertices = append(sector.Vertices, [2]float64{pt.X, pt.Y})
		}
		set.Sectors = append(set.Sectors, sector)
	}
	return set
}

func setupSelection(d *geometry.SetDescriptor, idx int) *snapshot.SetupSelection {
	sel := &snapshot.SetupSelection{Index: idx}
	if d != nil {
		if label, ok := d.SetupLabel(idx); ok {
			sel.Label = &label
		}
	}
	return sel
}

func pair(p *geometry.Point) *[2]float64 {
	if p == nil {
		return nil
	}
	return &[2]float64{p.X, p.Y}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
