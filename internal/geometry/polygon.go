// Package geometry answers sector membership and camera setup queries for a
// set's floor plan.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

const (
	edgeTolerance       = 1e-4
	horizontalTolerance = 1e-6
)

// Point is a position in a set's horizontal plane.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) distanceSquared(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

type Kind int

const (
	KindWalk Kind = iota
	KindCamera
	KindSpecial
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindWalk:
		return "walk"
	case KindCamera:
		return "camera"
	case KindSpecial:
		return "special"
	default:
		return "other"
	}
}

// ParseKind maps a sector kind label onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "walk":
		return KindWalk, nil
	case "camera":
		return KindCamera, nil
	case "special":
		return KindSpecial, nil
	case "other", "":
		return KindOther, nil
	default:
		return KindOther, fmt.Errorf("%w: unknown sector kind %q", ErrMalformedGeometry, s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Polygon is a named sector. Immutable once built.
type Polygon struct {
	ID            int
	Name          string
	Kind          Kind
	Vertices      []Point
	Centroid      Point
	DefaultActive bool
}

func NewPolygon(id int, name string, kind Kind, vertices []Point, defaultActive bool) *Polygon {
	p := &Polygon{
		ID:            id,
		Name:          name,
		Kind:          kind,
		Vertices:      vertices,
		DefaultActive: defaultActive,
	}
	if len(vertices) > 0 {
		var sx, sy float64
		for _, v := range vertices {
			sx += v.X
			sy += v.Y
		}
		n := float64(len(vertices))
		p.Centroid = Point{X: sx / n, Y: sy / n}
	}
	return p
}

// Contains reports whether pt lies inside the polygon. Points on an edge
// count as inside.
func (p *Polygon) Contains(pt Point) bool {
	if len(p.Vertices) < 3 {
		return false
	}
	if onEdge(pt, p.Vertices) {
		return true
	}
	return rayCast(pt, p.Vertices)
}

func (p *Polygon) distanceSquared(pt Point) float64 {
	return pt.distanceSquared(p.Centroid)
}

func onEdge(pt Point, vertices []Point) bool {
	prev := vertices[len(vertices)-1]
	for _, cur := range vertices {
		if onSegment(pt, prev, cur) {
			return true
		}
		prev = cur
	}
	return false
}

func onSegment(p, a, b Point) bool {
	cross := (p.Y-a.Y)*(b.X-a.X) - (p.X-a.X)*(b.Y-a.Y)
	if math.Abs(cross) > edgeTolerance {
		return false
	}
	dot := (p.X-a.X)*(p.X-b.X) + (p.Y-a.Y)*(p.Y-b.Y)
	return dot <= 0
}

func rayCast(p Point, vertices []Point) bool {
	inside := false
	j := len(vertices) - 1
	for i := range vertices {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			denom := vj.Y - vi.Y
			if math.Abs(denom) > horizontalTolerance {
				xinters := (p.Y-vi.Y)*(vj.X-vi.X)/denom + vi.X
				if xinters > p.X {
					inside = !inside
				}
			}
		}
		j = i
	}
	return inside
}

// DefaultActiveFromStatus interprets a sector's authored visibility status.
func DefaultActiveFromStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "hidden", "invisible", "false", "off":
		return false
	default:
		return true
	}
}
