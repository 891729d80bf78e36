package joymap

import (
	"encoding/json"

	"github.com/Alia5/joymap/mapping"
)

// MappedState is the normalized snapshot of one joystick slot. Stick axes are
// in [-1,1], trigger axes in [0,1]. The zero value is the neutral state.
type MappedState struct {
	buttons [mapping.NumButtons]bool
	axes    [mapping.NumAxes]float32
}

// Button reports whether b is held.
func (s MappedState) Button(b mapping.ButtonName) bool {
	if !b.Valid() {
		return false
	}
	return s.buttons[b.Index()]
}

// Axis returns the value of a.
func (s MappedState) Axis(a mapping.AxisName) float32 {
	if !a.Valid() {
		return 0
	}
	return s.axes[a.Index()]
}

func (s MappedState) LeftStick() Vector2 {
	return Vector2{X: s.Axis(mapping.AxisLeftX), Y: s.Axis(mapping.AxisLeftY)}
}

func (s MappedState) RightStick() Vector2 {
	return Vector2{X: s.Axis(mapping.AxisRightX), Y: s.Axis(mapping.AxisRightY)}
}

// PressedButtons lists held buttons in declaration order.
func (s MappedState) PressedButtons() []mapping.ButtonName {
	var out []mapping.ButtonName
	for _, b := range mapping.Buttons() {
		if s.buttons[b.Index()] {
			out = append(out, b)
		}
	}
	return out
}

// IsNeutral reports whether no button is held and every axis is at rest.
func (s MappedState) IsNeutral() bool { return s == MappedState{} }

func (s *MappedState) setButton(b mapping.ButtonName, pressed bool) { s.buttons[b.Index()] = pressed }
func (s *MappedState) setAxis(a mapping.AxisName, v float32)        { s.axes[a.Index()] = v }

// MarshalJSON encodes the state as {"buttons":{"a":true,...},"axes":{"leftx":0.5,...}}.
func (s MappedState) MarshalJSON() ([]byte, error) {
	out := struct {
		Buttons map[string]bool    `json:"buttons"`
		Axes    map[string]float32 `json:"axes"`
	}{
		Buttons: make(map[string]bool, mapping.NumButtons),
		Axes:    make(map[string]float32, mapping.NumAxes),
	}
	for _, b := range mapping.Buttons() {
		out.Buttons[b.String()] = s.buttons[b.Index()]
	}
	for _, a := range mapping.Axes() {
		out.Axes[a.String()] = s.axes[a.Index()]
	}
	return json.Marshal(out)
}
