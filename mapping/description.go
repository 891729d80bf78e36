package mapping

import "errors"

// Capacities of a Description and of a MappedJoystick.
const (
	MaxNumAxes    = 10
	MaxNumButtons = 34
	MaxNumHats    = 4
	MaxNameLength = 64
)

var (
	ErrTooFewFields     = errors.New("mapping: too few fields")
	ErrMalformedGUID    = errors.New("mapping: malformed guid")
	ErrEmptyName        = errors.New("mapping: empty name")
	ErrInvalidValue     = errors.New("mapping: invalid value")
	ErrIndexOutOfRange  = errors.New("mapping: index out of range")
	ErrPlatformMismatch = errors.New("mapping: platform mismatch")
)

// Axis describes what a physical axis drives. Name receives the value rescaled
// into [Min,Max]; ButtonPositive/ButtonNegative are pressed when the axis is
// deflected past the activation threshold in that direction.
type Axis struct {
	Name           AxisName
	ButtonPositive ButtonName
	ButtonNegative ButtonName
	Min, Max       float32
	Half           HalfAxis
	Invert         bool
}

// ButtonAxis is a physical button driving a semantic axis, e.g. digital triggers.
// Value is written to the axis while the button is held.
type ButtonAxis struct {
	Name  AxisName
	Value float32
}

// HatBinding ties one hat direction of a physical hat to a semantic button.
type HatBinding struct {
	Hat    int
	Button ButtonName
}

// Description is a parsed device mapping. Arrays are indexed by physical index
// (Hats by HatDirection); zero values are unassigned.
type Description struct {
	Axes       [MaxNumAxes]Axis
	ButtonAxes [MaxNumButtons]ButtonAxis
	Buttons    [MaxNumButtons]ButtonName
	Hats       [NumHatDirections]HatBinding
}

// MappedJoystick is one row of the mapping Table.
type MappedJoystick struct {
	GUID GUID
	Name string
	Desc Description
}

// outputRange returns the [min,max] a semantic axis is normalized into.
func outputRange(a AxisName, half HalfAxis) (float32, float32) {
	switch {
	case half == HalfPositive:
		return 0, 1
	case half == HalfNegative:
		return 0, -1
	case a.IsTrigger():
		return 0, 1
	default:
		return -1, 1
	}
}
