package geometry

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Provider supplies the geometry of a set on demand. A nil result with a
// nil error means the set ships without geometry.
type Provider interface {
	SetGeometry(setFile string) (*SetGeometry, error)
}

type sectorDoc struct {
	ID       int         `yaml:"id"`
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Status   string      `yaml:"status"`
	Vertices [][]float64 `yaml:"vertices"`
}

type setupDoc struct {
	Name     string    `yaml:"name"`
	Interest []float64 `yaml:"interest"`
	Position []float64 `yaml:"position"`
}

type setDoc struct {
	Sectors []sectorDoc `yaml:"sectors"`
	Setups  []setupDoc  `yaml:"setups"`
}

// DecodeYAML parses a set geometry document.
func DecodeYAML(data []byte) (*SetGeometry, error) {
	var doc setDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGeometry, err)
	}

	g := &SetGeometry{}
	for i, s := range doc.Sectors {
		kind, err := ParseKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", i, err)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("%w: sector %d has no name", ErrMalformedGeometry, i)
		}
		verts := make([]Point, 0, len(s.Vertices))
		for j, v := range s.Vertices {
			if len(v) < 2 {
				return nil, fmt.Errorf("%w: sector %q vertex %d needs two coordinates", ErrMalformedGeometry, s.Name, j)
			}
			verts = append(verts, Point{X: v[0], Y: v[1]})
		}
		g.Sectors = append(g.Sectors, NewPolygon(s.ID, s.Name, kind, verts, DefaultActiveFromStatus(s.Status)))
	}

	for _, s := range doc.Setups {
		g.Setups = append(g.Setups, &Setup{
			Name:     s.Name,
			Interest: toPoint(s.Interest),
			Position: toPoint(s.Position),
		})
	}

	return g, nil
}

// toPoint keeps the horizontal components of an optional anchor.
func toPoint(v []float64) *Point {
	if len(v) < 2 {
		return nil
	}
	return &Point{X: v[0], Y: v[1]}
}
