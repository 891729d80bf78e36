// Package joymap turns raw joystick events into a normalized gamepad layout using
// the mappings of a mapping.Table.
//
// A Mapper is not safe for concurrent use. It is meant to be driven from the
// single goroutine that polls the input backend.
package joymap

import (
	"io"
	"log/slog"

	"github.com/Alia5/joymap/mapping"
)

// MaxNumJoysticks is the number of slots a Mapper tracks.
const MaxNumJoysticks = 4

// AxisButtonThreshold is the normalized deflection past which an axis bound to
// a button counts as pressed.
const AxisButtonThreshold float32 = 0.5

// AssignedMapping is the binding resolved for a connected device. Valid is
// false when the device is connected but no mapping matched it.
type AssignedMapping struct {
	Valid bool
	Desc  mapping.Description
	// Index is the table row the mapping came from, or mapping.NotFound.
	Index int
	GUID  mapping.GUID
	Name  string
}

type slot struct {
	connected bool
	assigned  AssignedMapping
	state     MappedState
	// raw holds stick values before the dead zone is applied.
	raw  [mapping.NumAxes]float32
	hats [mapping.MaxNumHats]uint8
	// pressed holds physical button states.
	pressed [mapping.MaxNumButtons]bool
}

// Mapper resolves connected devices against a mapping table and translates
// their raw events into MappedState updates and normalized events.
type Mapper struct {
	table     *mapping.Table
	handler   EventHandler
	logger    *slog.Logger
	deadZones [2]float32
	slots     [MaxNumJoysticks]slot
}

// New creates a Mapper. A nil table behaves like an empty one and a nil
// logger discards output.
func New(table *mapping.Table, logger *slog.Logger) *Mapper {
	if table == nil {
		table = mapping.NewTable(nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mapper{table: table, logger: logger}
}

// SetHandler registers the receiver of normalized events. nil disables emission.
func (m *Mapper) SetHandler(h EventHandler) { m.handler = h }

// SetStickDeadZones enables a radial dead zone on the left and right sticks.
// Zero disables it for that stick.
func (m *Mapper) SetStickDeadZones(left, right float32) {
	m.deadZones = [2]float32{left, right}
}

// Table returns the table mappings are resolved against.
func (m *Mapper) Table() *mapping.Table { return m.table }

// SetTable replaces the mapping table and resolves every connected slot again.
// Slot states are reset to neutral.
func (m *Mapper) SetTable(t *mapping.Table) {
	if t == nil {
		t = mapping.NewTable(nil)
	}
	m.table = t
	for i := range m.slots {
		s := &m.slots[i]
		if !s.connected {
			continue
		}
		m.bind(i, s.assigned.GUID, s.assigned.Name)
	}
}

// OnJoyConnected binds a mapping to the event's slot, matching by GUID first
// and by name second. It returns whether a mapping was found; unmapped devices
// still occupy the slot.
func (m *Mapper) OnJoyConnected(ev ConnectEvent) bool {
	if !validSlot(ev.Slot) {
		m.logger.Debug("connect for invalid slot ignored", "slot", ev.Slot)
		return false
	}
	return m.bind(ev.Slot, ev.GUID, ev.Name)
}

func (m *Mapper) bind(idx int, guid mapping.GUID, name string) bool {
	row := m.table.FindMappingByGUID(guid)
	if row == mapping.NotFound {
		row = m.table.FindMappingByName(name)
	}

	s := &m.slots[idx]
	*s = slot{
		connected: true,
		assigned:  AssignedMapping{Index: row, GUID: guid, Name: name},
	}
	if row != mapping.NotFound {
		s.assigned.Valid = true
		s.assigned.Desc = m.table.At(row).Desc
	}

	m.logger.Info("joystick connected",
		"slot", idx,
		"name", name,
		"guid", guid.String(),
		"mapped", s.assigned.Valid,
	)
	return s.assigned.Valid
}

// OnJoyDisconnected frees the slot and resets its state to neutral.
func (m *Mapper) OnJoyDisconnected(idx int) {
	if !validSlot(idx) {
		return
	}
	s := &m.slots[idx]
	if s.connected {
		m.logger.Info("joystick disconnected", "slot", idx, "name", s.assigned.Name)
	}
	*s = slot{}
}

// IsJoyMapped reports whether the slot holds a valid mapping.
func (m *Mapper) IsJoyMapped(idx int) bool {
	return validSlot(idx) && m.slots[idx].assigned.Valid
}

// JoyMappedState returns the slot's snapshot. Invalid or unmapped slots yield
// the neutral state.
func (m *Mapper) JoyMappedState(idx int) MappedState {
	if !m.IsJoyMapped(idx) {
		return MappedState{}
	}
	return m.slots[idx].state
}

// AssignedMapping returns the binding of a slot and whether a device is connected.
func (m *Mapper) AssignedMapping(idx int) (AssignedMapping, bool) {
	if !validSlot(idx) || !m.slots[idx].connected {
		return AssignedMapping{Index: mapping.NotFound}, false
	}
	return m.slots[idx].assigned, true
}

// mapped returns the slot if it exists and carries a valid mapping.
func (m *Mapper) mapped(idx int) *slot {
	if !validSlot(idx) {
		m.logger.Debug("event for invalid slot dropped", "slot", idx)
		return nil
	}
	s := &m.slots[idx]
	if !s.assigned.Valid {
		return nil
	}
	return s
}

func validSlot(idx int) bool { return idx >= 0 && idx < MaxNumJoysticks }
