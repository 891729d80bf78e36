package mapping

// AxisName is a semantic, device independent axis. The zero value means unassigned.
type AxisName uint8

const (
	AxisNone AxisName = iota
	AxisLeftX
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
)

// NumAxes is the number of semantic axes.
const NumAxes = int(AxisRightTrigger)

// ButtonName is a semantic, device independent button. The zero value means unassigned.
type ButtonName uint8

const (
	ButtonNone ButtonName = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonMisc1
	ButtonPaddle1
	ButtonPaddle2
	ButtonPaddle3
	ButtonPaddle4
	ButtonTouchpad
)

// NumButtons is the number of semantic buttons.
const NumButtons = int(ButtonTouchpad)

// Names as they appear in mapping databases, indexed by AxisName / ButtonName.
var (
	axisStrings = [...]string{
		AxisNone:         "",
		AxisLeftX:        "leftx",
		AxisLeftY:        "lefty",
		AxisRightX:       "rightx",
		AxisRightY:       "righty",
		AxisLeftTrigger:  "lefttrigger",
		AxisRightTrigger: "righttrigger",
	}
	buttonStrings = [...]string{
		ButtonNone:          "",
		ButtonA:             "a",
		ButtonB:             "b",
		ButtonX:             "x",
		ButtonY:             "y",
		ButtonBack:          "back",
		ButtonGuide:         "guide",
		ButtonStart:         "start",
		ButtonLeftStick:     "leftstick",
		ButtonRightStick:    "rightstick",
		ButtonLeftShoulder:  "leftshoulder",
		ButtonRightShoulder: "rightshoulder",
		ButtonDPadUp:        "dpup",
		ButtonDPadDown:      "dpdown",
		ButtonDPadLeft:      "dpleft",
		ButtonDPadRight:     "dpright",
		ButtonMisc1:         "misc1",
		ButtonPaddle1:       "paddle1",
		ButtonPaddle2:       "paddle2",
		ButtonPaddle3:       "paddle3",
		ButtonPaddle4:       "paddle4",
		ButtonTouchpad:      "touchpad",
	}
)

// ParseAxisName resolves a mapping database key to an axis.
func ParseAxisName(s string) (AxisName, bool) {
	for i := 1; i < len(axisStrings); i++ {
		if axisStrings[i] == s {
			return AxisName(i), true
		}
	}
	return AxisNone, false
}

// ParseButtonName resolves a mapping database key to a button.
func ParseButtonName(s string) (ButtonName, bool) {
	for i := 1; i < len(buttonStrings); i++ {
		if buttonStrings[i] == s {
			return ButtonName(i), true
		}
	}
	return ButtonNone, false
}

func (a AxisName) String() string {
	if int(a) < len(axisStrings) {
		return axisStrings[a]
	}
	return ""
}

// Valid reports whether a names an actual axis.
func (a AxisName) Valid() bool { return a > AxisNone && int(a) <= NumAxes }

// IsTrigger reports whether the axis is a single direction trigger normalized to [0,1].
func (a AxisName) IsTrigger() bool { return a == AxisLeftTrigger || a == AxisRightTrigger }

// Index returns the zero based position of the axis, for use with fixed size arrays.
func (a AxisName) Index() int { return int(a) - 1 }

func (b ButtonName) String() string {
	if int(b) < len(buttonStrings) {
		return buttonStrings[b]
	}
	return ""
}

// Valid reports whether b names an actual button.
func (b ButtonName) Valid() bool { return b > ButtonNone && int(b) <= NumButtons }

// Index returns the zero based position of the button, for use with fixed size arrays.
func (b ButtonName) Index() int { return int(b) - 1 }

// Axes returns every semantic axis in declaration order.
func Axes() []AxisName {
	out := make([]AxisName, 0, NumAxes)
	for a := AxisLeftX; int(a) <= NumAxes; a++ {
		out = append(out, a)
	}
	return out
}

// Buttons returns every semantic button in declaration order.
func Buttons() []ButtonName {
	out := make([]ButtonName, 0, NumButtons)
	for b := ButtonA; int(b) <= NumButtons; b++ {
		out = append(out, b)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (a AxisName) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (b ButtonName) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
