package geometry

import (
	"math"
	"strings"
)

// Setup is a camera configuration. Interest takes priority over Position
// when ranking setups against a point.
type Setup struct {
	Name     string
	Interest *Point
	Position *Point
}

func (s *Setup) anchor() *Point {
	if s.Interest != nil {
		return s.Interest
	}
	return s.Position
}

// SetGeometry is the parsed floor plan of one set.
type SetGeometry struct {
	Sectors []*Polygon
	Setups  []*Setup
}

func (g *SetGeometry) HasGeometry() bool {
	return g != nil && (len(g.Sectors) > 0 || len(g.Setups) > 0)
}

// FindPolygon returns the first sector of kind that contains pt. When none
// does, the sector of that kind with the nearest centroid is returned. The
// result is nil only when the set has no sector of that kind.
func (g *SetGeometry) FindPolygon(kind Kind, pt Point) *Polygon {
	var fallback *Polygon
	best := math.MaxFloat64
	for _, s := range g.Sectors {
		if s.Kind != kind {
			continue
		}
		if s.Contains(pt) {
			return s
		}
		if d := s.distanceSquared(pt); d < best {
			best = d
			fallback = s
		}
	}
	return fallback
}

// Containing returns every sector containing pt, in definition order and
// regardless of activation.
func (g *SetGeometry) Containing(pt Point) []*Polygon {
	var out []*Polygon
	for _, s := range g.Sectors {
		if s.Contains(pt) {
			out = append(out, s)
		}
	}
	return out
}

// BestSetup returns the setup whose anchor is nearest pt. Setups without an
// anchor are skipped; if none has one the first setup is returned.
func (g *SetGeometry) BestSetup(pt Point) *Setup {
	var best *Setup
	bestDist := math.MaxFloat64
	for _, s := range g.Setups {
		a := s.anchor()
		if a == nil {
			continue
		}
		if d := pt.distanceSquared(*a); d < bestDist {
			bestDist = d
			best = s
		}
	}
	if best == nil && len(g.Setups) > 0 {
		return g.Setups[0]
	}
	return best
}

// Sector looks a sector up by name, ignoring case.
func (g *SetGeometry) Sector(name string) *Polygon {
	for _, s := range g.Sectors {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// SectorHit identifies the sector (or setup) a point resolved to.
type SectorHit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}
