package geometry

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func square() *Polygon {
	return NewPolygon(1, "floor", KindWalk, []Point{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
		{X: 2, Y: 2},
		{X: 0, Y: 2},
	}, true)
}

func TestPolygon_Contains(t *testing.T) {
	tests := map[string]struct {
		pt  Point
		exp bool
	}{
		"interior":          {pt: Point{X: 1, Y: 1}, exp: true},
		"outside":           {pt: Point{X: 3, Y: 1}, exp: false},
		"on bottom edge":    {pt: Point{X: 1, Y: 0}, exp: true},
		"on right edge":     {pt: Point{X: 2, Y: 1.5}, exp: true},
		"on vertex":         {pt: Point{X: 2, Y: 2}, exp: true},
		"within tolerance":  {pt: Point{X: 1, Y: -0.00001}, exp: true},
		"beyond tolerance":  {pt: Point{X: 1, Y: -0.01}, exp: false},
		"on edge extension": {pt: Point{X: 3, Y: 0}, exp: false},
	}

	p := square()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "contains", p.Contains(tt.pt), tt.exp)
		})
	}
}

func TestPolygon_ContainsDegenerate(t *testing.T) {
	p := NewPolygon(1, "line", KindWalk, []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, true)
	testutil.AssertEqual(t, "contains", p.Contains(Point{X: 0.5, Y: 0.5}), false)
}

func TestPolygon_ContainsConcave(t *testing.T) {
	// L shape with the notch at the upper right.
	p := NewPolygon(2, "ell", KindWalk, []Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 2},
		{X: 2, Y: 2},
		{X: 2, Y: 4},
		{X: 0, Y: 4},
	}, true)

	testutil.AssertEqual(t, "lower arm", p.Contains(Point{X: 3, Y: 1}), true)
	testutil.AssertEqual(t, "upper arm", p.Contains(Point{X: 1, Y: 3}), true)
	testutil.AssertEqual(t, "notch", p.Contains(Point{X: 3, Y: 3}), false)
}

func TestNewPolygon_Centroid(t *testing.T) {
	p := square()
	testutil.AssertEqual(t, "centroid", p.Centroid, Point{X: 1, Y: 1})

	empty := NewPolygon(0, "empty", KindOther, nil, true)
	testutil.AssertEqual(t, "empty centroid", empty.Centroid, Point{})
}

func TestDefaultActiveFromStatus(t *testing.T) {
	tests := map[string]struct {
		status string
		exp    bool
	}{
		"empty":     {status: "", exp: true},
		"visible":   {status: "visible", exp: true},
		"hidden":    {status: "hidden", exp: false},
		"invisible": {status: "INVISIBLE", exp: false},
		"false":     {status: "false", exp: false},
		"off":       {status: "Off", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "active", DefaultActiveFromStatus(tt.status), tt.exp)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Kind
		expErr string
	}{
		"walk":    {in: "walk", exp: KindWalk},
		"camera":  {in: "Camera", exp: KindCamera},
		"special": {in: "special", exp: KindSpecial},
		"other":   {in: "other", exp: KindOther},
		"empty":   {in: "", exp: KindOther},
		"unknown": {in: "lava", expErr: "unknown sector kind"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "kind", got, tt.exp)
		})
	}
}
