package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// Source is the physical input a semantic name is bound to. It is one of
// ButtonSource, AxisSource or HatSource.
type Source interface {
	isSource()
	String() string
}

// ButtonSource is a plain physical button ("b3").
type ButtonSource struct {
	Index int
}

// HalfAxis selects which part of an axis range is used.
type HalfAxis uint8

const (
	HalfFull HalfAxis = iota
	HalfPositive
	HalfNegative
)

// AxisSource is a physical axis ("a0", "+a2", "-a1", "a3~").
type AxisSource struct {
	Index  int
	Half   HalfAxis
	Invert bool
}

// HatSource is one or two directions of a physical hat ("h0.1", "h0.3").
type HatSource struct {
	Hat  int
	Mask uint8
}

func (ButtonSource) isSource() {}
func (AxisSource) isSource()   {}
func (HatSource) isSource()    {}

func (s ButtonSource) String() string { return "b" + strconv.Itoa(s.Index) }

func (s AxisSource) String() string {
	var sb strings.Builder
	switch s.Half {
	case HalfPositive:
		sb.WriteByte('+')
	case HalfNegative:
		sb.WriteByte('-')
	}
	sb.WriteByte('a')
	sb.WriteString(strconv.Itoa(s.Index))
	if s.Invert {
		sb.WriteByte('~')
	}
	return sb.String()
}

func (s HatSource) String() string { return fmt.Sprintf("h%d.%d", s.Hat, s.Mask) }

// Hat direction bits as reported by joystick backends.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08

	hatMask = HatUp | HatRight | HatDown | HatLeft
)

// HatDirection is the index of one of the four hat slots of a Description.
type HatDirection int

const (
	DirUp HatDirection = iota
	DirRight
	DirDown
	DirLeft

	NumHatDirections = 4
)

// Bit returns the backend bit for the direction.
func (d HatDirection) Bit() uint8 { return 1 << uint(d) }

// ParseSource decodes the value part of a "key:value" pair. The form is picked
// by its lexical prefix: 'b' button, 'a' / '+a' / '-a' axis, 'h' hat.
func ParseSource(s string) (Source, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidValue)
	}
	switch s[0] {
	case 'b':
		n, err := parseIndex(s[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: button %q", ErrInvalidValue, s)
		}
		return ButtonSource{Index: n}, nil
	case 'a', '+', '-':
		return parseAxisSource(s)
	case 'h':
		return parseHatSource(s)
	default:
		return nil, fmt.Errorf("%w: unknown form %q", ErrInvalidValue, s)
	}
}

func parseAxisSource(s string) (Source, error) {
	src := AxisSource{}
	rest := s
	switch rest[0] {
	case '+':
		src.Half = HalfPositive
		rest = rest[1:]
	case '-':
		src.Half = HalfNegative
		rest = rest[1:]
	}
	if !strings.HasPrefix(rest, "a") {
		return nil, fmt.Errorf("%w: axis %q", ErrInvalidValue, s)
	}
	rest = rest[1:]
	if strings.HasSuffix(rest, "~") {
		src.Invert = true
		rest = rest[:len(rest)-1]
	}
	n, err := parseIndex(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: axis %q", ErrInvalidValue, s)
	}
	src.Index = n
	return src, nil
}

func parseHatSource(s string) (Source, error) {
	hat, mask, ok := strings.Cut(s[1:], ".")
	if !ok {
		return nil, fmt.Errorf("%w: hat %q", ErrInvalidValue, s)
	}
	h, err := parseIndex(hat)
	if err != nil {
		return nil, fmt.Errorf("%w: hat %q", ErrInvalidValue, s)
	}
	m, err := parseIndex(mask)
	if err != nil || m > int(hatMask) || !validHatMask(uint8(m)) {
		return nil, fmt.Errorf("%w: hat mask %q", ErrInvalidValue, s)
	}
	return HatSource{Hat: h, Mask: uint8(m)}, nil
}

// validHatMask accepts one direction or two adjacent ones.
func validHatMask(m uint8) bool {
	switch m {
	case HatUp, HatRight, HatDown, HatLeft,
		HatUp | HatRight, HatRight | HatDown, HatDown | HatLeft, HatLeft | HatUp:
		return true
	default:
		return false
	}
}

// parseIndex accepts plain decimal digits only, no sign.
func parseIndex(s string) (int, error) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
