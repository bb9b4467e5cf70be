package game

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/pixil98/go-grim/internal/geometry"
)

// hotlistWindow is the heading tolerance, in degrees, within which visible
// objects join the hotlist alongside the best candidate.
const hotlistWindow = 10.0

type ObjectSector struct {
	Name string        `json:"name"`
	Kind geometry.Kind `json:"kind"`
}

type Object struct {
	Handle      int     `json:"handle"`
	Name        string  `json:"name"`
	DisplayName string  `json:"string_name,omitempty"`
	SetFile     string  `json:"set_file,omitempty"`
	Position    *Vec3   `json:"position,omitempty"`
	Range       float64 `json:"range"`
	Touchable   bool    `json:"touchable"`
	Visible     bool    `json:"visible"`
	// InterestActor is the handle of the actor the object follows, or 0.
	InterestActor int            `json:"interest_actor,omitempty"`
	Sectors       []ObjectSector `json:"sectors"`
}

func (o *Object) label() string {
	if o.DisplayName != "" {
		return o.DisplayName
	}
	return o.Name
}

// VisibleObject is an object as seen from the focus actor at the last
// visibility pass.
type VisibleObject struct {
	Handle      int      `json:"handle"`
	Name        string   `json:"name"`
	DisplayName string   `json:"string_name,omitempty"`
	Range       float64  `json:"range"`
	Distance    *float64 `json:"distance,omitempty"`
	Heading     *float64 `json:"angle,omitempty"`
	WithinRange *bool    `json:"within_range,omitempty"`
	InHotlist   bool     `json:"in_hotlist"`
}

// RegisterObject inserts or replaces an object and reports whether it
// already existed.
func (w *WorldState) RegisterObject(obj Object) bool {
	o := obj
	if o.SetFile == "" && o.InterestActor != 0 {
		if a, ok := w.ActorByHandle(o.InterestActor); ok {
			o.SetFile = a.CurrentSet
		}
	}
	if o.SetFile == "" {
		o.SetFile = w.currentFile()
	}

	o.Sectors = nil
	if o.SetFile != "" && o.Position != nil {
		o.Sectors = w.computeSectors(o.SetFile, *o.Position)
	}

	prev, existed := w.objects[o.Handle]
	if existed && prev.InterestActor != 0 {
		delete(w.objectsByActor, prev.InterestActor)
	}
	w.objects[o.Handle] = &o
	if o.InterestActor != 0 {
		w.objectsByActor[o.InterestActor] = o.Handle
		w.log("object.link actor#%d -> %s", o.InterestActor, o.Name)
	}

	verb := "object.register"
	if existed {
		verb = "object.update"
	}
	set := o.SetFile
	if set == "" {
		set = "<unknown>"
	}
	w.log("%s %s (#%d) @ %s", verb, o.Name, o.Handle, set)

	w.visibilityChanged()
	return existed
}

func (w *WorldState) UnregisterObject(handle int) bool {
	o, ok := w.objects[handle]
	if !ok {
		return false
	}
	delete(w.objects, handle)
	if o.InterestActor != 0 && w.objectsByActor[o.InterestActor] == handle {
		delete(w.objectsByActor, o.InterestActor)
	}
	w.log("object.remove %s (#%d)", o.Name, handle)
	w.visibilityChanged()
	return true
}

func (w *WorldState) Object(handle int) (*Object, bool) {
	o, ok := w.objects[handle]
	return o, ok
}

// ObjectByName finds an object by its script name.
func (w *WorldState) ObjectByName(name string) (*Object, bool) {
	for _, h := range slices.Sorted(maps.Keys(w.objects)) {
		if o := w.objects[h]; o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Objects returns every object in ascending handle order.
func (w *WorldState) Objects() []*Object {
	out := make([]*Object, 0, len(w.objects))
	for _, h := range slices.Sorted(maps.Keys(w.objects)) {
		out = append(out, w.objects[h])
	}
	return out
}

func (w *WorldState) computeSectors(file string, pos Vec3) []ObjectSector {
	g := w.ensureGeometry(file)
	w.seedSectors(w.set(file))
	if g == nil {
		return nil
	}
	var out []ObjectSector
	for _, p := range g.Containing(geometry.Point{X: pos.X, Y: pos.Y}) {
		out = append(out, ObjectSector{Name: p.Name, Kind: p.Kind})
	}
	return out
}

func (w *WorldState) updateLinkedObject(a *Actor, pos Vec3) {
	h, ok := w.objectsByActor[a.Handle]
	if !ok {
		return
	}
	o, ok := w.objects[h]
	if !ok {
		return
	}

	p := pos
	o.Position = &p
	if o.SetFile == "" {
		o.SetFile = a.CurrentSet
		if o.SetFile == "" {
			o.SetFile = w.currentFile()
		}
	}
	if o.SetFile != "" {
		o.Sectors = w.computeSectors(o.SetFile, pos)
	} else {
		o.Sectors = nil
	}
	w.log("object.actor#%d.pos %s %s", a.Handle, o.Name, pos)
	w.visibilityChanged()
}

func (w *WorldState) SetObjectTouchable(handle int, touchable bool) {
	if o, ok := w.objects[handle]; ok {
		o.Touchable = touchable
	}
	state := "untouchable"
	if touchable {
		state = "touchable"
	}
	w.log("object.touchable #%d %s", handle, state)
	w.visibilityChanged()
}

func (w *WorldState) SetObjectVisible(handle int, visible bool) {
	o, ok := w.objects[handle]
	if !ok {
		return
	}
	if o.Visible != visible {
		o.Visible = visible
		state := "hidden"
		if visible {
			state = "visible"
		}
		w.log("object.visible #%d %s", handle, state)
	}
	w.visibilityChanged()
}

func (w *WorldState) effectivePosition(o *Object) (Vec3, bool) {
	if o.Position != nil {
		return *o.Position, true
	}
	if o.InterestActor != 0 {
		return w.ActorPosition(o.InterestActor)
	}
	return Vec3{}, false
}

// inActiveSector is vacuously true for objects outside every sector, and for
// objects that only sit in camera sectors.
func (w *WorldState) inActiveSector(o *Object, file string) bool {
	considered := false
	for _, s := range o.Sectors {
		if s.Kind == geometry.KindCamera {
			continue
		}
		considered = true
		if w.IsSectorActive(file, s.Name) {
			return true
		}
	}
	return !considered
}

// ObjectInActiveSector applies the sector activation test to an object in
// its own set.
func (w *WorldState) ObjectInActiveSector(o *Object) bool {
	if o.SetFile == "" {
		return true
	}
	return w.inActiveSector(o, o.SetFile)
}

// VisibleObjectHandles lists the touchable, visible objects of the current
// set that sit in an active sector, in ascending handle order.
func (w *WorldState) VisibleObjectHandles() []int {
	cur := w.currentFile()
	if cur == "" {
		return nil
	}
	var out []int
	for _, o := range w.Objects() {
		if !o.Touchable || !o.Visible {
			continue
		}
		if o.SetFile == "" || !strings.EqualFold(o.SetFile, cur) {
			continue
		}
		if !w.inActiveSector(o, o.SetFile) {
			continue
		}
		out = append(out, o.Handle)
	}
	return out
}

// RecordVisibleObjects measures the given objects from the focus actor and
// rebuilds the hotlist.
func (w *WorldState) RecordVisibleObjects(handles []int) {
	w.visible = nil
	w.hotlist = nil
	defer w.visibilityChanged()

	if len(handles) == 0 {
		w.log("scene.visible <none>")
		return
	}

	var focus *Vec3
	if a, ok := w.FocusActor(); ok {
		if p, ok := w.ActorPosition(a.Handle); ok {
			focus = &p
		}
	}

	var names []string
	best := math.Inf(1)
	for _, h := range handles {
		o, ok := w.objects[h]
		if !ok {
			continue
		}
		names = append(names, o.label())
		info := VisibleObject{
			Handle:      o.Handle,
			Name:        o.Name,
			DisplayName: o.DisplayName,
			Range:       o.Range,
		}
		if pos, ok := w.effectivePosition(o); ok && focus != nil {
			dist := Distance(*focus, pos)
			within := dist <= o.Range+floatEpsilon
			heading := Heading(*focus, pos)
			info.Distance = &dist
			info.WithinRange = &within
			info.Heading = &heading
			best = math.Min(best, heading)
		}
		w.visible = append(w.visible, info)
	}

	if len(names) == 0 {
		w.log("scene.visible <unknown>")
		return
	}
	w.log("scene.visible %s", strings.Join(names, ", "))

	var hot []string
	for i := range w.visible {
		v := &w.visible[i]
		if v.Heading != nil && math.Abs(*v.Heading-best) < hotlistWindow {
			v.InHotlist = true
			w.hotlist = append(w.hotlist, v.Handle)
			if v.DisplayName != "" {
				hot = append(hot, v.DisplayName)
			} else {
				hot = append(hot, v.Name)
			}
		}
	}
	if len(hot) > 0 {
		w.log("scene.hotlist %s", strings.Join(hot, ", "))
	}
}

// VisibleObjects returns the result of the last visibility pass.
func (w *WorldState) VisibleObjects() []VisibleObject {
	return slices.Clone(w.visible)
}

func (w *WorldState) Hotlist() []int {
	return slices.Clone(w.hotlist)
}

// CommentaryCandidate picks the first hotlist object, falling back to the
// first visible object.
func (w *WorldState) CommentaryCandidate() (int, bool) {
	if len(w.hotlist) > 0 {
		return w.hotlist[0], true
	}
	if len(w.visible) > 0 {
		return w.visible[0].Handle, true
	}
	return 0, false
}

// CommentaryObjectVisible reports whether commentary anchored to handle can
// play. Unanchored commentary plays while anything is visible.
func (w *WorldState) CommentaryObjectVisible(handle int, anchored bool) bool {
	if !anchored {
		return len(w.hotlist) > 0 || len(w.visible) > 0
	}
	o, ok := w.objects[handle]
	if !ok || !o.Visible || !o.Touchable {
		return false
	}
	cur := w.currentFile()
	if o.SetFile == "" || cur == "" || !strings.EqualFold(o.SetFile, cur) {
		return false
	}
	return w.inActiveSector(o, o.SetFile)
}
