// Package script reads recorded or hand-written sequences of raw joystick
// events and feeds them to a joymap.Mapper.
package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/joymap/internal/log"
	"github.com/Alia5/joymap/joymap"
	"github.com/Alia5/joymap/mapping"
)

// EventType names the raw backend event an Event stands for.
type EventType string

const (
	Connect    EventType = "connect"
	Disconnect EventType = "disconnect"
	Button     EventType = "button"
	Axis       EventType = "axis"
	Hat        EventType = "hat"
)

var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrUnknownFormat = errors.New("unknown script format")
)

// Event is one raw backend event. Which fields matter depends on Type.
type Event struct {
	Type EventType `json:"type" yaml:"type" toml:"type"`
	Slot int       `json:"slot" yaml:"slot" toml:"slot"`

	// Index is the physical button, axis or hat index.
	Index   int     `json:"index,omitempty" yaml:"index,omitempty" toml:"index,omitempty"`
	Pressed bool    `json:"pressed,omitempty" yaml:"pressed,omitempty" toml:"pressed,omitempty"`
	Value   float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	// Min and Max give the native axis range. Both zero means joymap.DefaultRange.
	Min  float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max  float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Mask int     `json:"mask,omitempty" yaml:"mask,omitempty" toml:"mask,omitempty"`

	// A connect event either carries a GUID or the USB ids it is synthesized from.
	GUID    string `json:"guid,omitempty" yaml:"guid,omitempty" toml:"guid,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Bus     int    `json:"bus,omitempty" yaml:"bus,omitempty" toml:"bus,omitempty"`
	Vendor  int    `json:"vendor,omitempty" yaml:"vendor,omitempty" toml:"vendor,omitempty"`
	Product int    `json:"product,omitempty" yaml:"product,omitempty" toml:"product,omitempty"`
	Version int    `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// Script is an ordered list of events.
type Script struct {
	Events []Event `json:"events" yaml:"events" toml:"events"`
}

// ReadFile decodes the script stored at path.
func ReadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	return Decode(path, data)
}

// Decode parses data in the format implied by name's extension (.yaml, .yml,
// .toml or .json).
func Decode(name string, data []byte) (Script, error) {
	var s Script
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	case ".toml":
		err = toml.Unmarshal(data, &s)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return Script{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	if err != nil {
		return Script{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks every event without touching a Mapper.
func (s Script) Validate() error {
	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func (ev Event) validate() error {
	switch ev.Type {
	case Connect:
		_, err := ev.guid()
		return err
	case Disconnect, Button, Axis:
		return nil
	case Hat:
		if ev.Mask < 0 || ev.Mask > 0x0F {
			return fmt.Errorf("hat mask %d out of range", ev.Mask)
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, ev.Type)
	}
}

func (ev Event) guid() (mapping.GUID, error) {
	if ev.GUID != "" {
		return mapping.ParseGUID(ev.GUID)
	}
	if ev.Vendor == 0 && ev.Product == 0 && ev.Name == "" {
		return mapping.GUID{}, nil
	}
	return mapping.CreateGUID(uint16(ev.Bus), uint16(ev.Vendor), uint16(ev.Product), uint16(ev.Version), ev.Name, 0, 0), nil
}

func (ev Event) axisRange() joymap.Range {
	if ev.Min == 0 && ev.Max == 0 {
		return joymap.DefaultRange
	}
	return joymap.Range{Min: float32(ev.Min), Max: float32(ev.Max)}
}

// String renders the event the way the event log prints it.
func (ev Event) String() string {
	switch ev.Type {
	case Connect:
		g, _ := ev.guid()
		return fmt.Sprintf("slot=%d connect guid=%s name=%q", ev.Slot, g, ev.Name)
	case Disconnect:
		return fmt.Sprintf("slot=%d disconnect", ev.Slot)
	case Button:
		return fmt.Sprintf("slot=%d button=%d pressed=%t", ev.Slot, ev.Index, ev.Pressed)
	case Axis:
		r := ev.axisRange()
		return fmt.Sprintf("slot=%d axis=%d value=%g range=[%g,%g]", ev.Slot, ev.Index, ev.Value, r.Min, r.Max)
	case Hat:
		return fmt.Sprintf("slot=%d hat=%d mask=%#x", ev.Slot, ev.Index, ev.Mask)
	default:
		return fmt.Sprintf("slot=%d %s", ev.Slot, ev.Type)
	}
}

// Apply feeds every event to m in order, logging each one to events when it
// is not nil. Scripts are validated before the first event is applied.
func (s Script) Apply(m *joymap.Mapper, events log.EventLogger) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, ev := range s.Events {
		if events != nil {
			events.Log(true, ev.String())
		}
		switch ev.Type {
		case Connect:
			g, _ := ev.guid()
			m.OnJoyConnected(joymap.ConnectEvent{Slot: ev.Slot, GUID: g, Name: ev.Name})
		case Disconnect:
			m.OnJoyDisconnected(ev.Slot)
		case Button:
			if ev.Pressed {
				m.OnJoyButtonPressed(ev.Slot, ev.Index)
			} else {
				m.OnJoyButtonReleased(ev.Slot, ev.Index)
			}
		case Axis:
			m.OnJoyAxisMoved(ev.Slot, ev.Index, float32(ev.Value), ev.axisRange())
		case Hat:
			m.OnJoyHatMoved(ev.Slot, ev.Index, uint8(ev.Mask))
		}
	}
	return nil
}
