package mapping

import (
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"
)

const platformKey = "platform"

// PlatformName returns the mapping database platform name for a GOOS value, or
// an empty string if the database has no entries for it.
func PlatformName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "Mac OS X"
	case "linux":
		return "Linux"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	default:
		return ""
	}
}

// Parser turns mapping database lines into MappedJoystick records.
type Parser struct {
	// Platform is compared against "platform:" fields. Lines for another platform
	// are rejected. An empty Platform accepts every line.
	Platform string
}

// NewParser returns a parser filtering for the platform the program runs on.
func NewParser() *Parser {
	return NewParserFor(runtime.GOOS)
}

// NewParserFor returns a parser filtering for goos. A GOOS without a database
// platform name is used as is, so only lines without a platform field match.
func NewParserFor(goos string) *Parser {
	name := PlatformName(goos)
	if name == "" {
		name = goos
	}
	return &Parser{Platform: name}
}

// Parse parses a line of the form "GUID,name,key:value,...". Unknown keys are
// ignored. On error the returned record is the zero value.
func (p *Parser) Parse(line string) (MappedJoystick, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 2 {
		return MappedJoystick{}, ErrTooFewFields
	}

	var m MappedJoystick
	guid, err := ParseGUID(strings.TrimSpace(fields[0]))
	if err != nil {
		return MappedJoystick{}, err
	}
	m.GUID = guid

	m.Name = truncateName(strings.TrimSpace(fields[1]))
	if m.Name == "" {
		return MappedJoystick{}, ErrEmptyName
	}

	for _, field := range fields[2:] {
		key, value, ok := strings.Cut(strings.TrimSpace(field), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == platformKey {
			if p.Platform != "" && value != p.Platform {
				return MappedJoystick{}, fmt.Errorf("%w: %q", ErrPlatformMismatch, value)
			}
			continue
		}
		if err := p.bind(&m.Desc, key, value); err != nil {
			return MappedJoystick{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return m, nil
}

func (p *Parser) bind(d *Description, key, value string) error {
	outHalf := HalfFull
	name := key
	if len(key) > 1 && (key[0] == '+' || key[0] == '-') {
		if key[0] == '+' {
			outHalf = HalfPositive
		} else {
			outHalf = HalfNegative
		}
		name = key[1:]
	}

	if axis, ok := ParseAxisName(name); ok {
		src, err := ParseSource(value)
		if err != nil {
			return err
		}
		return bindAxis(d, axis, outHalf, src)
	}
	if outHalf != HalfFull {
		return nil
	}
	if button, ok := ParseButtonName(name); ok {
		src, err := ParseSource(value)
		if err != nil {
			return err
		}
		return bindButton(d, button, src)
	}
	return nil
}

func bindAxis(d *Description, name AxisName, outHalf HalfAxis, src Source) error {
	lo, hi := outputRange(name, outHalf)
	switch s := src.(type) {
	case AxisSource:
		if s.Index >= MaxNumAxes {
			return fmt.Errorf("%w: axis %d", ErrIndexOutOfRange, s.Index)
		}
		a := &d.Axes[s.Index]
		a.Name = name
		a.Min, a.Max = lo, hi
		a.Half = s.Half
		a.Invert = s.Invert
	case ButtonSource:
		if s.Index >= MaxNumButtons {
			return fmt.Errorf("%w: button %d", ErrIndexOutOfRange, s.Index)
		}
		d.ButtonAxes[s.Index] = ButtonAxis{Name: name, Value: hi}
	case HatSource:
		// hats only drive buttons, but the index is still checked
		if s.Hat >= MaxNumHats {
			return fmt.Errorf("%w: hat %d", ErrIndexOutOfRange, s.Hat)
		}
	}
	return nil
}

func bindButton(d *Description, name ButtonName, src Source) error {
	switch s := src.(type) {
	case ButtonSource:
		if s.Index >= MaxNumButtons {
			return fmt.Errorf("%w: button %d", ErrIndexOutOfRange, s.Index)
		}
		d.Buttons[s.Index] = name
	case AxisSource:
		if s.Index >= MaxNumAxes {
			return fmt.Errorf("%w: axis %d", ErrIndexOutOfRange, s.Index)
		}
		negative := s.Half == HalfNegative
		if s.Invert {
			negative = !negative
		}
		if negative {
			d.Axes[s.Index].ButtonNegative = name
		} else {
			d.Axes[s.Index].ButtonPositive = name
		}
	case HatSource:
		if s.Hat >= MaxNumHats {
			return fmt.Errorf("%w: hat %d", ErrIndexOutOfRange, s.Hat)
		}
		for dir := DirUp; dir < NumHatDirections; dir++ {
			if s.Mask&dir.Bit() != 0 {
				d.Hats[dir] = HatBinding{Hat: s.Hat, Button: name}
			}
		}
	}
	return nil
}

// truncateName cuts s to fit MaxNameLength bytes without splitting a rune.
func truncateName(s string) string {
	if len(s) <= MaxNameLength {
		return s
	}
	cut := MaxNameLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
