package joymap

import "math"

// XInput recommended stick dead zones, normalized.
const (
	LeftStickDeadZone  float32 = 7849.0 / 32767.0
	RightStickDeadZone float32 = 8689.0 / 32767.0
)

// Vector2 is a stick position.
type Vector2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vector2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// DeadZoneNormalize applies a radial dead zone. Vectors no longer than deadZone
// become zero; longer ones keep their direction and have their length remapped
// from [deadZone,1] onto [0,1], so the output is continuous at the boundary.
func DeadZoneNormalize(v Vector2, deadZone float32) Vector2 {
	if deadZone < 0 {
		deadZone = 0
	}
	if deadZone >= 1 {
		return Vector2{}
	}
	length := v.Length()
	if length <= deadZone {
		return Vector2{}
	}
	scaled := (length - deadZone) / (1 - deadZone)
	if scaled > 1 {
		scaled = 1
	}
	k := scaled / length
	return Vector2{X: v.X * k, Y: v.Y * k}
}
