// Package xinput converts a normalized gamepad snapshot into the XInput
// gamepad state and the wired Xbox 360 input report built from it.
package xinput

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/Alia5/joymap/joymap"
	"github.com/Alia5/joymap/mapping"
)

// InputState mirrors XINPUT_GAMEPAD.
type InputState struct {
	Buttons uint16
	// Triggers: 0-255
	LT, RT uint8
	// Sticks: positive Y points up
	LX, LY int16
	RX, RY int16
}

var buttonBits = map[mapping.ButtonName]uint16{
	mapping.ButtonA:             ButtonA,
	mapping.ButtonB:             ButtonB,
	mapping.ButtonX:             ButtonX,
	mapping.ButtonY:             ButtonY,
	mapping.ButtonBack:          ButtonBack,
	mapping.ButtonGuide:         ButtonGuide,
	mapping.ButtonStart:         ButtonStart,
	mapping.ButtonLeftStick:     ButtonLThumb,
	mapping.ButtonRightStick:    ButtonRThumb,
	mapping.ButtonLeftShoulder:  ButtonLShoulder,
	mapping.ButtonRightShoulder: ButtonRShoulder,
	mapping.ButtonDPadUp:        ButtonDPadUp,
	mapping.ButtonDPadDown:      ButtonDPadDown,
	mapping.ButtonDPadLeft:      ButtonDPadLeft,
	mapping.ButtonDPadRight:     ButtonDPadRight,
}

// FromState converts s. Buttons XInput has no bit for (misc, paddles,
// touchpad) are dropped. Stick Y axes are flipped since the mapped layout
// points down.
func FromState(s joymap.MappedState) InputState {
	var x InputState
	for _, b := range s.PressedButtons() {
		x.Buttons |= buttonBits[b]
	}
	x.LT = trigger(s.Axis(mapping.AxisLeftTrigger))
	x.RT = trigger(s.Axis(mapping.AxisRightTrigger))
	x.LX = stick(s.Axis(mapping.AxisLeftX))
	x.LY = stick(-s.Axis(mapping.AxisLeftY))
	x.RX = stick(s.Axis(mapping.AxisRightX))
	x.RY = stick(-s.Axis(mapping.AxisRightY))
	return x
}

func trigger(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return math.MaxUint8
	}
	return uint8(math.Round(float64(v) * math.MaxUint8))
}

func stick(v float32) int16 {
	switch {
	case v <= -1:
		return math.MinInt16
	case v >= 1:
		return math.MaxInt16
	case v < 0:
		return int16(math.Round(float64(v) * -math.MinInt16))
	default:
		return int16(math.Round(float64(v) * math.MaxInt16))
	}
}

// BuildReport encodes the state into the wired Xbox 360 input report:
//
//	 0: 0x00              - Report ID
//	 1: 0x14              - Payload size
//	 2-3: Buttons (little-endian)
//	 4: LT
//	 5: RT
//	 6-13: LX, LY, RX, RY (little-endian int16)
//	14-19: zero
func (x InputState) BuildReport() []byte {
	b := make([]byte, ReportSize)
	b[1] = ReportSize
	binary.LittleEndian.PutUint16(b[2:4], x.Buttons)
	b[4] = x.LT
	b[5] = x.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(x.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(x.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(x.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(x.RY))
	return b
}

// UnmarshalReport decodes a report produced by BuildReport.
func (x *InputState) UnmarshalReport(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	x.Buttons = binary.LittleEndian.Uint16(data[2:4])
	x.LT = data[4]
	x.RT = data[5]
	x.LX = int16(binary.LittleEndian.Uint16(data[6:8]))
	x.LY = int16(binary.LittleEndian.Uint16(data[8:10]))
	x.RX = int16(binary.LittleEndian.Uint16(data[10:12]))
	x.RY = int16(binary.LittleEndian.Uint16(data[12:14]))
	return nil
}
