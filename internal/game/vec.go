package game

import (
	"fmt"
	"math"
)

// floatEpsilon matches single precision machine epsilon, which authored
// ranges and deltas are compared against.
const floatEpsilon = 1.1920929e-7

type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("%.3f,%.3f,%.3f", v.X, v.Y, v.Z)
}

// Distance is the straight line distance between two points.
func Distance(a, b Vec3) float64 {
	d := b.Sub(a)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Heading returns the direction from one point to another in the horizontal
// plane, in degrees within [0, 360).
func Heading(from, to Vec3) float64 {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// WalkYaw converts a movement delta into the yaw an actor faces while
// walking it. Zero yaw faces +Y.
func WalkYaw(delta Vec3, offset float64) float64 {
	yaw := math.Atan2(-delta.X, delta.Y)*180/math.Pi + offset
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}

func floatLabel(v *float64) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%.3f", *v)
}

func orNil(s string) string {
	if s == "" {
		return "<nil>"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
