package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Alia5/joymap/internal/log"
	"github.com/Alia5/joymap/internal/script"
	"github.com/Alia5/joymap/joymap"
	"github.com/Alia5/joymap/mapping"
	"github.com/Alia5/joymap/xinput"
)

// Replay feeds a script of raw events through the mapper and prints the
// normalized events and the final state of every connected slot.
type Replay struct {
	Script string `arg:"" help:"Event script (.yaml, .toml or .json)" type:"existingfile"`
	Format string `help:"Output format; auto prints text on a terminal and JSON lines otherwise" enum:"auto,text,json" default:"auto"`
	Report bool   `help:"Also print the final state of each mapped slot as an Xbox 360 input report"`
}

// Run is called by Kong when the replay command is executed.
func (c *Replay) Run(g *Globals, logger *slog.Logger, events log.EventLogger) error {
	format := c.Format
	if format == "auto" || format == "" {
		format = "json"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = "text"
		}
	}
	return c.run(os.Stdout, format, g, logger, events)
}

func (c *Replay) run(out io.Writer, format string, g *Globals, logger *slog.Logger, events log.EventLogger) error {
	s, err := script.ReadFile(c.Script)
	if err != nil {
		return err
	}
	table, _, err := g.LoadTable(logger)
	if err != nil {
		return err
	}

	m := g.NewMapper(table, logger)
	p := newEventPrinter(out, format == "json", events)
	m.SetHandler(p)

	if err := s.Apply(m, events); err != nil {
		return err
	}
	for i := 0; i < joymap.MaxNumJoysticks; i++ {
		am, ok := m.AssignedMapping(i)
		if !ok {
			continue
		}
		st := m.JoyMappedState(i)
		p.state(i, am, st)
		if c.Report && am.Valid {
			p.report(i, xinput.FromState(st).BuildReport())
		}
	}
	return p.err
}

// eventPrinter writes normalized events as text lines or JSON lines.
type eventPrinter struct {
	out    io.Writer
	enc    *json.Encoder
	events log.EventLogger
	err    error
}

func newEventPrinter(out io.Writer, asJSON bool, events log.EventLogger) *eventPrinter {
	p := &eventPrinter{out: out, events: events}
	if asJSON {
		p.enc = json.NewEncoder(out)
	}
	return p
}

func (p *eventPrinter) OnMappedButton(ev joymap.ButtonEvent) {
	line := fmt.Sprintf("slot=%d %s pressed=%t", ev.Slot, ev.Button, ev.Pressed)
	p.emit(line, struct {
		Kind string `json:"kind"`
		joymap.ButtonEvent
	}{"button", ev})
}

func (p *eventPrinter) OnMappedAxis(ev joymap.AxisEvent) {
	line := fmt.Sprintf("slot=%d %s=%.4f", ev.Slot, ev.Axis, ev.Value)
	p.emit(line, struct {
		Kind string `json:"kind"`
		joymap.AxisEvent
	}{"axis", ev})
}

func (p *eventPrinter) state(slot int, am joymap.AssignedMapping, st joymap.MappedState) {
	var b strings.Builder
	fmt.Fprintf(&b, "slot=%d state name=%q mapped=%t", slot, am.Name, am.Valid)
	if pressed := st.PressedButtons(); len(pressed) > 0 {
		names := make([]string, len(pressed))
		for i, n := range pressed {
			names[i] = n.String()
		}
		fmt.Fprintf(&b, " buttons=%s", strings.Join(names, ","))
	}
	for _, a := range mapping.Axes() {
		if v := st.Axis(a); v != 0 {
			fmt.Fprintf(&b, " %s=%.4f", a, v)
		}
	}
	p.emit(b.String(), struct {
		Kind   string             `json:"kind"`
		Slot   int                `json:"slot"`
		Name   string             `json:"name"`
		Mapped bool               `json:"mapped"`
		State  joymap.MappedState `json:"state"`
	}{"state", slot, am.Name, am.Valid, st})
}

func (p *eventPrinter) report(slot int, report []byte) {
	p.emit(fmt.Sprintf("slot=%d report % x", slot, report), struct {
		Kind   string `json:"kind"`
		Slot   int    `json:"slot"`
		Report string `json:"report"`
	}{"report", slot, hex.EncodeToString(report)})
}

func (p *eventPrinter) emit(line string, v any) {
	if p.events != nil {
		p.events.Log(false, line)
	}
	if p.err != nil {
		return
	}
	if p.enc != nil {
		p.err = p.enc.Encode(v)
		return
	}
	_, p.err = fmt.Fprintln(p.out, line)
}
