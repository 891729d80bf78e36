package joymap

import "github.com/Alia5/joymap/mapping"

// OnJoyButtonPressed handles a physical button press on a slot.
func (m *Mapper) OnJoyButtonPressed(idx, button int) { m.onButton(idx, button, true) }

// OnJoyButtonReleased handles a physical button release on a slot.
func (m *Mapper) OnJoyButtonReleased(idx, button int) { m.onButton(idx, button, false) }

func (m *Mapper) onButton(idx, button int, pressed bool) {
	s := m.mapped(idx)
	if s == nil || button < 0 || button >= mapping.MaxNumButtons {
		return
	}
	desc := &s.assigned.Desc
	s.pressed[button] = pressed

	if name := desc.Buttons[button]; name.Valid() {
		s.state.setButton(name, pressed)
		m.emitButton(idx, name, pressed)
	}
	if ba := desc.ButtonAxes[button]; ba.Name.Valid() {
		v := ba.Value
		if !pressed {
			v = heldButtonAxisValue(s, ba.Name)
		}
		m.writeAxis(idx, s, ba.Name, v)
	}
}

// OnJoyAxisMoved handles a physical axis reporting value within its native range r.
func (m *Mapper) OnJoyAxisMoved(idx, axis int, value float32, r Range) {
	s := m.mapped(idx)
	if s == nil || axis < 0 || axis >= mapping.MaxNumAxes {
		return
	}
	a := s.assigned.Desc.Axes[axis]
	n := r.normalize(value)

	if a.Name.Valid() {
		m.writeAxis(idx, s, a.Name, scaleAxis(a, n))
	}
	if a.ButtonPositive.Valid() {
		m.setButtonEdge(idx, s, a.ButtonPositive, n > AxisButtonThreshold)
	}
	if a.ButtonNegative.Valid() {
		m.setButtonEdge(idx, s, a.ButtonNegative, n < -AxisButtonThreshold)
	}
}

// OnJoyHatMoved handles a new direction bitmask of a physical hat. Directions
// that were released are reported before directions that were pressed.
func (m *Mapper) OnJoyHatMoved(idx, hat int, mask uint8) {
	s := m.mapped(idx)
	if s == nil || hat < 0 || hat >= mapping.MaxNumHats {
		return
	}
	mask &= mapping.HatUp | mapping.HatRight | mapping.HatDown | mapping.HatLeft
	prev := s.hats[hat]
	s.hats[hat] = mask
	if prev == mask {
		return
	}

	// A diagonal binding puts one button on two directions. It is held while
	// either of them is.
	desc := &s.assigned.Desc
	var before, after [mapping.NumButtons + 1]bool
	for dir := mapping.DirUp; dir < mapping.NumHatDirections; dir++ {
		b := desc.Hats[dir]
		if b.Hat != hat || !b.Button.Valid() {
			continue
		}
		before[b.Button] = before[b.Button] || prev&dir.Bit() != 0
		after[b.Button] = after[b.Button] || mask&dir.Bit() != 0
	}

	for _, pressed := range [2]bool{false, true} {
		for dir := mapping.DirUp; dir < mapping.NumHatDirections; dir++ {
			b := desc.Hats[dir]
			if b.Hat != hat || !b.Button.Valid() {
				continue
			}
			if before[b.Button] == after[b.Button] || after[b.Button] != pressed {
				continue
			}
			m.setButtonEdge(idx, s, b.Button, pressed)
		}
	}
}

// heldButtonAxisValue returns the value of a still held button driving a, or
// 0 when none is. With both halves of a stick held, releasing one leaves the
// other in charge.
func heldButtonAxisValue(s *slot, a mapping.AxisName) float32 {
	for i, ba := range s.assigned.Desc.ButtonAxes {
		if ba.Name == a && s.pressed[i] {
			return ba.Value
		}
	}
	return 0
}

// scaleAxis selects the bound half of n in [-1,1] and rescales it into [a.Min,a.Max].
func scaleAxis(a mapping.Axis, n float32) float32 {
	var t float32
	switch a.Half {
	case mapping.HalfPositive:
		t = clamp(n, 0, 1)
	case mapping.HalfNegative:
		t = clamp(-n, 0, 1)
	default:
		t = (n + 1) / 2
	}
	if a.Invert {
		t = 1 - t
	}
	return a.Min + t*(a.Max-a.Min)
}

// setButtonEdge changes a button and emits only if its state actually changes.
func (m *Mapper) setButtonEdge(idx int, s *slot, b mapping.ButtonName, pressed bool) {
	if s.state.Button(b) == pressed {
		return
	}
	s.state.setButton(b, pressed)
	m.emitButton(idx, b, pressed)
}

// writeAxis stores v for a and emits it. Stick axes go through the slot's
// dead zone, which may also move the other component of the same stick.
func (m *Mapper) writeAxis(idx int, s *slot, a mapping.AxisName, v float32) {
	x, y, stick, ok := stickAxes(a)
	if ok {
		s.raw[a.Index()] = v
	}
	if !ok || m.deadZones[stick] <= 0 {
		s.state.setAxis(a, v)
		m.emitAxis(idx, a, v)
		return
	}

	out := DeadZoneNormalize(Vector2{X: s.raw[x.Index()], Y: s.raw[y.Index()]}, m.deadZones[stick])

	other, otherValue := y, out.Y
	if a == y {
		other, otherValue = x, out.X
		v = out.Y
	} else {
		v = out.X
	}
	s.state.setAxis(a, v)
	m.emitAxis(idx, a, v)
	if s.state.Axis(other) != otherValue {
		s.state.setAxis(other, otherValue)
		m.emitAxis(idx, other, otherValue)
	}
}

// stickAxes returns the components of the stick a belongs to, and 0 for the
// left stick or 1 for the right one.
func stickAxes(a mapping.AxisName) (x, y mapping.AxisName, stick int, ok bool) {
	switch a {
	case mapping.AxisLeftX, mapping.AxisLeftY:
		return mapping.AxisLeftX, mapping.AxisLeftY, 0, true
	case mapping.AxisRightX, mapping.AxisRightY:
		return mapping.AxisRightX, mapping.AxisRightY, 1, true
	default:
		return mapping.AxisNone, mapping.AxisNone, 0, false
	}
}

func (m *Mapper) emitButton(idx int, b mapping.ButtonName, pressed bool) {
	if m.handler != nil {
		m.handler.OnMappedButton(ButtonEvent{Slot: idx, Button: b, Pressed: pressed})
	}
}

func (m *Mapper) emitAxis(idx int, a mapping.AxisName, v float32) {
	if m.handler != nil {
		m.handler.OnMappedAxis(AxisEvent{Slot: idx, Axis: a, Value: v})
	}
}
