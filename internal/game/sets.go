package game

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-grim/internal/geometry"
)

// CurrentSet identifies the set the player is in.
type CurrentSet struct {
	File         string `json:"set_file"`
	VariableName string `json:"variable_name"`
	DisplayName  string `json:"display_name,omitempty"`
}

type SectorToggle int

const (
	SectorApplied SectorToggle = iota
	SectorNoChange
	// SectorUnknown means the set has geometry and no sector by that name.
	SectorUnknown
	SectorNoSet
)

func (t SectorToggle) String() string {
	switch t {
	case SectorApplied:
		return "applied"
	case SectorNoChange:
		return "no_change"
	case SectorUnknown:
		return "unknown"
	default:
		return "no_set"
	}
}

type setRuntime struct {
	geometry *geometry.SetGeometry
	// resolved is set once the provider has been asked, successful or not.
	resolved     bool
	sectors      map[string]bool
	currentSetup int
	hasSetup     bool
	loaded       bool
}

func (w *WorldState) set(file string) *setRuntime {
	s, ok := w.sets[file]
	if !ok {
		s = &setRuntime{}
		w.sets[file] = s
	}
	return s
}

// Descriptor returns the static description of a set, or nil.
func (w *WorldState) Descriptor(file string) *geometry.SetDescriptor {
	if w.descriptors == nil {
		return nil
	}
	return w.descriptors.Get(file)
}

func (w *WorldState) SwitchToSet(file string) CurrentSet {
	cur := CurrentSet{File: file, VariableName: file}
	if d := w.Descriptor(file); d != nil {
		cur.VariableName = d.VariableName
		cur.DisplayName = d.DisplayName
	}
	w.current = &cur

	s := w.set(file)
	if !s.hasSetup {
		s.currentSetup = 0
		s.hasSetup = true
	}
	w.log("set.switch %s", file)

	if strings.EqualFold(file, officeSet) {
		a := w.ensureActor("Manny")
		if a.Position == nil {
			w.SetActorPosition(a.ID, officeSeedPosition)
		}
		if a.Rotation == nil {
			w.SetActorRotation(a.ID, officeSeedRotation)
		}
	}
	return cur
}

// CurrentSet returns the active set, if any.
func (w *WorldState) CurrentSet() (CurrentSet, bool) {
	if w.current == nil {
		return CurrentSet{}, false
	}
	return *w.current, true
}

func (w *WorldState) currentFile() string {
	if w.current == nil {
		return ""
	}
	return w.current.File
}

// LoadSet marks a set loaded and caches its geometry.
func (w *WorldState) LoadSet(file string) {
	s := w.set(file)
	if !s.loaded {
		s.loaded = true
		w.log("set.load %s", file)
	}
	w.ensureGeometry(file)
}

// Geometry returns the set's geometry, loading it on first use. Nil means the
// set has none.
func (w *WorldState) Geometry(file string) *geometry.SetGeometry {
	return w.ensureGeometry(file)
}

func (w *WorldState) ensureGeometry(file string) *geometry.SetGeometry {
	s := w.set(file)
	if s.resolved {
		return s.geometry
	}
	s.resolved = true

	if w.provider == nil {
		return nil
	}

	g, err := w.provider.SetGeometry(file)
	if err != nil {
		if w.verbose {
			slog.Warn("failed to load set geometry", "set", file, "error", err)
		}
		return nil
	}
	if !g.HasGeometry() {
		if w.verbose {
			slog.Info("set contained no geometry data", "set", file)
		}
		return nil
	}

	s.geometry = g
	w.seedSectors(s)
	if w.verbose {
		w.log("set.geometry %s sectors=%d setups=%d", file, len(g.Sectors), len(g.Setups))
	}
	return g
}

// seedSectors fills in default activation for polygons without a recorded
// state.
func (w *WorldState) seedSectors(s *setRuntime) {
	if s.sectors == nil {
		s.sectors = map[string]bool{}
	}
	if s.geometry == nil {
		return
	}
	for _, p := range s.geometry.Sectors {
		if _, ok := s.sectors[p.Name]; !ok {
			s.sectors[p.Name] = p.DefaultActive
		}
	}
}

// canonicalSector resolves name against polygon names, then recorded states,
// ignoring case.
func (w *WorldState) canonicalSector(file, name string) (string, bool) {
	s, ok := w.sets[file]
	if !ok {
		return "", false
	}
	if s.geometry != nil {
		if p := s.geometry.Sector(name); p != nil {
			return p.Name, true
		}
	}
	for k := range s.sectors {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// SetSectorActive toggles a sector in hint, or in the current set when hint
// is empty.
func (w *WorldState) SetSectorActive(hint, name string, active bool) SectorToggle {
	file := hint
	if file == "" {
		file = w.currentFile()
	}
	if file == "" {
		return SectorNoSet
	}

	g := w.ensureGeometry(file)
	s := w.set(file)
	w.seedSectors(s)

	canonical, known := w.canonicalSector(file, name)
	if !known {
		canonical = name
	}
	if g != nil && g.Sector(canonical) == nil {
		w.log("sector.active %s:%s unknown", file, name)
		return SectorUnknown
	}

	result := SectorApplied
	if prev, ok := s.sectors[canonical]; ok && prev == active {
		result = SectorNoChange
		w.log("sector.active %s:%s already %s", file, canonical, onOff(active))
	} else {
		s.sectors[canonical] = active
		w.log("sector.active %s:%s %s", file, canonical, onOff(active))
	}

	w.sectorActivationChanged(file, canonical, active)
	return result
}

// IsSectorActive reports a sector's activation. Sectors without a recorded
// state are active.
func (w *WorldState) IsSectorActive(file, name string) bool {
	if file == "" {
		return true
	}
	w.ensureGeometry(file)
	key, ok := w.canonicalSector(file, name)
	if !ok {
		return true
	}
	active, ok := w.sets[file].sectors[key]
	if !ok {
		return true
	}
	return active
}

func (w *WorldState) SetCurrentSetup(file string, index int) {
	s := w.set(file)
	s.currentSetup = index
	s.hasSetup = true
	w.log("set.setup.make %s -> %d", file, index)
}

func (w *WorldState) CurrentSetup(file string) (int, bool) {
	s, ok := w.sets[file]
	if !ok || !s.hasSetup {
		return 0, false
	}
	return s.currentSetup, true
}

// PointInActiveWalk reports whether pt lies in an active walk sector. Sets
// without geometry accept every point.
func (w *WorldState) PointInActiveWalk(file string, pt geometry.Point) bool {
	g := w.ensureGeometry(file)
	if g == nil {
		return true
	}
	for _, p := range g.Sectors {
		if p.Kind == geometry.KindWalk && p.Contains(pt) && w.IsSectorActive(file, p.Name) {
			return true
		}
	}
	return false
}

// SetView is a read only view of one set's runtime state.
type SetView struct {
	File         string
	Descriptor   *geometry.SetDescriptor
	Geometry     *geometry.SetGeometry
	Sectors      map[string]bool
	CurrentSetup *int
	Loaded       bool
}

// KnownSets lists every set from the resource index or touched at runtime,
// in name order.
func (w *WorldState) KnownSets() []SetView {
	files := map[string]bool{}
	for f := range w.sets {
		files[f] = true
	}
	if w.descriptors != nil {
		for f := range w.descriptors.GetAll() {
			files[f] = true
		}
	}

	out := make([]SetView, 0, len(files))
	for _, f := range slices.Sorted(maps.Keys(files)) {
		v := SetView{File: f, Descriptor: w.Descriptor(f)}
		if s, ok := w.sets[f]; ok {
			v.Geometry = s.geometry
			v.Sectors = maps.Clone(s.sectors)
			v.Loaded = s.loaded
			if s.hasSetup {
				idx := s.currentSetup
				v.CurrentSetup = &idx
			}
		}
		out = append(out, v)
	}
	return out
}

// LoadedSets lists the sets loaded so far in name order.
func (w *WorldState) LoadedSets() []string {
	var out []string
	for f, s := range w.sets {
		if s.loaded {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}
