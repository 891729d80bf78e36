package joymap

import "github.com/Alia5/joymap/mapping"

// ConnectEvent is reported by the input backend when a device appears in a slot.
type ConnectEvent struct {
	Slot int
	GUID mapping.GUID
	Name string
}

// Range is the native value range of a physical axis.
type Range struct {
	Min, Max float32
}

// DefaultRange is the signed 16 bit range most backends report.
var DefaultRange = Range{Min: -32768, Max: 32767}

// normalize maps v from r onto [-1,1], clamping values outside r.
func (r Range) normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return clamp(2*(v-r.Min)/(r.Max-r.Min)-1, -1, 1)
}

// ButtonEvent is a normalized button transition.
type ButtonEvent struct {
	Slot    int                `json:"slot"`
	Button  mapping.ButtonName `json:"button"`
	Pressed bool               `json:"pressed"`
}

// AxisEvent is a normalized axis value.
type AxisEvent struct {
	Slot  int              `json:"slot"`
	Axis  mapping.AxisName `json:"axis"`
	Value float32          `json:"value"`
}

// EventHandler receives normalized events. Calls happen synchronously from the
// Mapper entry points.
type EventHandler interface {
	OnMappedButton(ev ButtonEvent)
	OnMappedAxis(ev AxisEvent)
}

// HandlerFuncs adapts plain functions to EventHandler. Nil fields are skipped.
type HandlerFuncs struct {
	Button func(ButtonEvent)
	Axis   func(AxisEvent)
}

func (h HandlerFuncs) OnMappedButton(ev ButtonEvent) {
	if h.Button != nil {
		h.Button(ev)
	}
}

func (h HandlerFuncs) OnMappedAxis(ev AxisEvent) {
	if h.Axis != nil {
		h.Axis(ev)
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
