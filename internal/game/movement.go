package game

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pixil98/go-grim/internal/geometry"
)

// defaultSectorID marks hits synthesized when nothing could be resolved.
const defaultSectorID = 1000

// normalizeKind maps script sector kinds, including the numeric aliases, to
// walk, hot or camera.
func normalizeKind(kind string) string {
	k := strings.ToLower(strings.TrimSpace(kind))
	switch k {
	case "", "0":
		return "walk"
	case "1":
		return "hot"
	case "2":
		return "camera"
	default:
		return k
	}
}

// WalkActorVector moves an actor by delta. In a set with geometry the move is
// rejected unless it ends inside an active walk sector.
func (w *WorldState) WalkActorVector(handle int, delta Vec3, adjustY, headingOffset *float64) bool {
	a, ok := w.ActorByHandle(handle)
	if !ok {
		w.log("walk.delta unknown_handle #%d", handle)
		return false
	}

	set := a.CurrentSet
	if set == "" {
		set = w.currentFile()
	}
	from := officeSeedPosition
	if a.Position != nil {
		from = *a.Position
	}

	w.log("walk.vector %s %.4f,%.4f", a.Name, delta.X, delta.Y)

	next := from.Add(delta)
	if adjustY != nil {
		next.Y += *adjustY
	}

	if set != "" && w.ensureGeometry(set) != nil && !w.PointInActiveWalk(set, geometry.Point{X: next.X, Y: next.Y}) {
		w.log("walk.delta blocked %s %.3f,%.3f", a.Name, next.X, next.Y)
		return false
	}

	w.SetActorPosition(a.ID, next)
	if math.Abs(delta.X)+math.Abs(delta.Y) > floatEpsilon {
		var offset float64
		if headingOffset != nil {
			offset = *headingOffset
		}
		w.SetActorRotation(a.ID, Vec3{Y: WalkYaw(delta, offset)})
	}
	if hit, ok := w.GeometrySectorHit(a.ID, "walk"); ok {
		w.recordSectorHit(a, hit)
	}
	return true
}

// WalkActorTo walks an actor straight towards target.
func (w *WorldState) WalkActorTo(handle int, target Vec3) bool {
	cur, ok := w.ActorPosition(handle)
	if !ok {
		w.log("walk.to unknown_handle #%d", handle)
		return false
	}
	delta := target.Sub(cur)
	if math.Abs(delta.X)+math.Abs(delta.Y)+math.Abs(delta.Z) <= floatEpsilon {
		return true
	}
	w.SetActorMoving(handle, true)
	moved := w.WalkActorVector(handle, delta, nil, nil)
	w.SetActorMoving(handle, false)
	return moved
}

func (w *WorldState) sectorHitFromSetup(file, label, kind string) (geometry.SectorHit, bool) {
	d := w.Descriptor(file)
	if d == nil {
		return geometry.SectorHit{}, false
	}
	idx, ok := d.SetupIndex(label)
	if !ok {
		return geometry.SectorHit{}, false
	}
	return geometry.SectorHit{ID: idx, Name: label, Kind: strings.ToUpper(kind)}, true
}

func (w *WorldState) geometryHitAt(kind string, pt geometry.Point) (geometry.SectorHit, bool) {
	cur := w.currentFile()
	if cur == "" {
		return geometry.SectorHit{}, false
	}
	g := w.ensureGeometry(cur)
	if g == nil {
		return geometry.SectorHit{}, false
	}

	switch kind {
	case "camera", "hot":
		if s := g.BestSetup(pt); s != nil {
			return w.sectorHitFromSetup(cur, s.Name, kind)
		}
	case "walk":
		if p := g.FindPolygon(geometry.KindWalk, pt); p != nil && w.IsSectorActive(cur, p.Name) {
			return geometry.SectorHit{ID: p.ID, Name: p.Name, Kind: "WALK"}, true
		}
	}
	return geometry.SectorHit{}, false
}

// GeometrySectorHit resolves the sector of kind under an actor from the
// current set's geometry. Camera and hot lookups resolve to the nearest
// camera setup.
func (w *WorldState) GeometrySectorHit(label, kind string) (geometry.SectorHit, bool) {
	a, ok := w.Actor(label)
	if !ok || a.Position == nil {
		return geometry.SectorHit{}, false
	}
	return w.geometryHitAt(normalizeKind(kind), geometry.Point{X: a.Position.X, Y: a.Position.Y})
}

func (w *WorldState) visibleSectorHit(kind string) (geometry.SectorHit, bool) {
	cur := w.currentFile()
	if cur == "" || w.ensureGeometry(cur) == nil {
		return geometry.SectorHit{}, false
	}

	handles := slices.Clone(w.hotlist)
	for _, v := range w.visible {
		if !slices.Contains(handles, v.Handle) {
			handles = append(handles, v.Handle)
		}
	}

	for _, h := range handles {
		o, ok := w.objects[h]
		if !ok {
			return geometry.SectorHit{}, false
		}
		if !o.Visible || !o.Touchable || o.SetFile == "" || !strings.EqualFold(o.SetFile, cur) {
			continue
		}
		pos, ok := w.effectivePosition(o)
		if !ok {
			continue
		}
		if hit, ok := w.geometryHitAt(kind, geometry.Point{X: pos.X, Y: pos.Y}); ok {
			return hit, true
		}
	}
	return geometry.SectorHit{}, false
}

// ResolveSectorHit finds the sector of kind for an actor, trying the cached
// hit, the set geometry, the visible objects and the set's camera setups in
// that order.
func (w *WorldState) ResolveSectorHit(label, kind string) (geometry.SectorHit, bool) {
	request := normalizeKind(kind)

	if a, ok := w.Actor(label); ok {
		if hit, ok := a.Sectors[strings.ToUpper(request)]; ok {
			return hit, true
		}
	}
	if hit, ok := w.GeometrySectorHit(label, request); ok {
		return hit, true
	}
	if hit, ok := w.visibleSectorHit(request); ok {
		return hit, true
	}

	cur := w.currentFile()
	d := w.Descriptor(cur)
	if d == nil {
		return geometry.SectorHit{}, false
	}
	switch request {
	case "camera":
		if idx, ok := w.CurrentSetup(cur); ok {
			if name, ok := d.SetupLabel(idx); ok {
				return geometry.SectorHit{ID: idx, Name: name, Kind: "CAMERA"}, true
			}
		}
		if s, ok := d.FirstSetup(); ok {
			return geometry.SectorHit{ID: s.Index, Name: s.Label, Kind: "CAMERA"}, true
		}
	case "hot":
		if s, ok := d.FirstSetup(); ok {
			return geometry.SectorHit{ID: s.Index, Name: s.Label, Kind: "HOT"}, true
		}
	}
	return geometry.SectorHit{}, false
}

// DefaultSectorHit is ResolveSectorHit with a synthesized fallback, so
// scripts always receive a sector.
func (w *WorldState) DefaultSectorHit(label, kind string) geometry.SectorHit {
	request := normalizeKind(kind)
	if hit, ok := w.ResolveSectorHit(label, request); ok {
		return hit
	}
	return geometry.SectorHit{
		ID:   defaultSectorID,
		Name: fmt.Sprintf("%s_sector", w.resolveActorID(label)),
		Kind: strings.ToUpper(request),
	}
}

// EvaluateSectorName answers whether an actor stands in a named sector when
// no geometry can decide it.
func (w *WorldState) EvaluateSectorName(label, query string) bool {
	if !strings.EqualFold(w.resolveActorID(label), PrimaryActor) {
		return false
	}
	switch query {
	case "manny", "office", "desk":
		return true
	default:
		return false
	}
}
