package mapping

import "strings"

// String renders the record as a mapping database line without a platform
// field. Parsing the result yields an equal record.
func (m MappedJoystick) String() string {
	var sb strings.Builder
	sb.WriteString(m.GUID.String())
	sb.WriteByte(',')
	sb.WriteString(m.Name)
	sb.WriteByte(',')
	for _, b := range m.Desc.Bindings() {
		sb.WriteString(b.Key)
		sb.WriteByte(':')
		sb.WriteString(b.Source.String())
		sb.WriteByte(',')
	}
	return sb.String()
}

// Binding is one "key:value" pair of a Description.
type Binding struct {
	Key    string
	Source Source
}

// Bindings lists every assignment of d in physical index order: axes, button
// axes, buttons, then hats.
func (d *Description) Bindings() []Binding {
	var out []Binding
	for i, a := range d.Axes {
		if a.Name.Valid() {
			out = append(out, Binding{
				Key:    halfPrefix(a.Name, a.Min, a.Max) + a.Name.String(),
				Source: AxisSource{Index: i, Half: a.Half, Invert: a.Invert},
			})
		}
		if a.ButtonPositive.Valid() {
			out = append(out, Binding{Key: a.ButtonPositive.String(), Source: AxisSource{Index: i, Half: HalfPositive}})
		}
		if a.ButtonNegative.Valid() {
			out = append(out, Binding{Key: a.ButtonNegative.String(), Source: AxisSource{Index: i, Half: HalfNegative}})
		}
	}
	for i, ba := range d.ButtonAxes {
		if ba.Name.Valid() {
			_, hi := outputRange(ba.Name, HalfFull)
			key := ba.Name.String()
			if ba.Value != hi {
				key = halfPrefix(ba.Name, 0, ba.Value) + key
			}
			out = append(out, Binding{Key: key, Source: ButtonSource{Index: i}})
		}
	}
	for i, b := range d.Buttons {
		if b.Valid() {
			out = append(out, Binding{Key: b.String(), Source: ButtonSource{Index: i}})
		}
	}

	// Adjacent directions sharing hat and button fold back into one diagonal value.
	var done [NumHatDirections]bool
	for dir := DirUp; dir < NumHatDirections; dir++ {
		h := d.Hats[dir]
		if done[dir] || !h.Button.Valid() {
			continue
		}
		done[dir] = true
		mask := dir.Bit()
		next, prev := (dir+1)%NumHatDirections, (dir+NumHatDirections-1)%NumHatDirections
		switch {
		case !done[next] && d.Hats[next] == h:
			mask |= next.Bit()
			done[next] = true
		case !done[prev] && d.Hats[prev] == h:
			mask |= prev.Bit()
			done[prev] = true
		}
		out = append(out, Binding{Key: h.Button.String(), Source: HatSource{Hat: h.Hat, Mask: mask}})
	}
	return out
}

// halfPrefix returns the key prefix that reproduces a [lo,hi] output range.
func halfPrefix(a AxisName, lo, hi float32) string {
	switch {
	case lo == 0 && hi < 0:
		return "-"
	case lo == 0 && hi > 0 && !a.IsTrigger():
		return "+"
	default:
		return ""
	}
}
