package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/joymap/joymap"
	"github.com/Alia5/joymap/mapping"
)

const testDB = "testdata/gamecontrollerdb.txt"

func linuxGlobals(db ...string) *Globals {
	return &Globals{Platform: "Linux", DB: db}
}

func testLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	err := (&Check{}).run(&out, linuxGlobals(testDB), testLogger())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, testDB+":4: ")
	assert.Contains(t, text, testDB+":5: ")
	assert.Contains(t, text, testDB+": 2 added, 2 rejected")
	assert.Contains(t, text, "2 mappings in 1 files")
}

func TestCheckStrict(t *testing.T) {
	err := (&Check{Strict: true}).run(&bytes.Buffer{}, linuxGlobals(testDB), testLogger())
	assert.ErrorIs(t, err, ErrRejected)

	err = (&Check{Strict: true}).run(&bytes.Buffer{}, &Globals{Platform: AnyPlatform, DB: []string{testDB}}, testLogger())
	assert.ErrorIs(t, err, ErrRejected, "the broken line is rejected on every platform")
}

func TestCheckMissingExplicitDB(t *testing.T) {
	err := (&Check{}).run(&bytes.Buffer{}, linuxGlobals("testdata/nope.txt"), testLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGuid(t *testing.T) {
	cases := []struct {
		name     string
		cmd      Guid
		expected string
	}{
		{name: "usb ids", cmd: Guid{Bus: "3", Vendor: "0x045e", Product: "0x028e", Version: "0x0114"}, expected: "030000005e0400008e02000014010000"},
		{name: "decimal ids", cmd: Guid{Bus: "3", Vendor: "1118", Product: "654", Version: "276"}, expected: "030000005e0400008e02000014010000"},
		{name: "name only", cmd: Guid{Bus: "5", Name: "Pad"}, expected: "0500286a506164000000000000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, tc.cmd.run(&out, linuxGlobals(testDB), testLogger()))
			assert.Equal(t, tc.expected+"\n", out.String())
		})
	}
}

func TestGuidInvalid(t *testing.T) {
	err := (&Guid{Bus: "3", Vendor: "0x10000"}).run(&bytes.Buffer{}, linuxGlobals(testDB), testLogger())
	assert.ErrorContains(t, err, "vendor")
}

func TestGuidLookup(t *testing.T) {
	var out bytes.Buffer
	cmd := Guid{Bus: "3", Vendor: "0x79", Product: "0x6", Version: "0x110", Lookup: true}
	require.NoError(t, cmd.run(&out, linuxGlobals(testDB), testLogger()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "03000000790000000600000010010000", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "03000000790000000600000010010000,DragonRise Generic USB Joystick,"))
}

func TestLookup(t *testing.T) {
	cases := []struct {
		name   string
		cmd    Lookup
		prefix string
		err    error
	}{
		{name: "guid", cmd: Lookup{GUID: "030000005e0400008e02000014010000"}, prefix: "030000005e0400008e02000014010000,Xbox 360 Controller,"},
		{name: "name fallback", cmd: Lookup{GUID: "ffffffffffffffffffffffffffffffff", Name: "DragonRise Generic USB Joystick"}, prefix: "03000000790000000600000010010000,"},
		{name: "other platform", cmd: Lookup{Name: "PS4 Controller"}, err: ErrNoMapping},
		{name: "bad guid", cmd: Lookup{GUID: "xyz"}, err: mapping.ErrMalformedGUID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := tc.cmd.run(&out, linuxGlobals(testDB), testLogger())
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out.String(), tc.prefix), out.String())
		})
	}
}

func TestLookupOutputParsesBack(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Lookup{Name: "DragonRise Generic USB Joystick"}).run(&out, linuxGlobals(testDB), testLogger()))

	p := &mapping.Parser{}
	again, err := p.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "DragonRise Generic USB Joystick", again.Name)
	assert.Equal(t, mapping.ButtonDPadRight, again.Desc.Axes[3].ButtonPositive)
	assert.Equal(t, mapping.ButtonDPadLeft, again.Desc.Axes[3].ButtonNegative)
}

type eventLines struct{ raw, mapped []string }

func (e *eventLines) Log(in bool, line string) {
	if in {
		e.raw = append(e.raw, line)
	} else {
		e.mapped = append(e.mapped, line)
	}
}

func TestReplayText(t *testing.T) {
	var out bytes.Buffer
	events := &eventLines{}
	cmd := Replay{Script: "testdata/replay.yaml"}
	require.NoError(t, cmd.run(&out, "text", linuxGlobals(testDB), testLogger(), events))

	assert.Equal(t, []string{
		"slot=1 a pressed=true",
		"slot=1 dpright pressed=true",
		"slot=1 leftx=-1.0000",
		`slot=1 state name="DragonRise Generic USB Joystick" mapped=true buttons=a,dpright leftx=-1.0000`,
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
	assert.Len(t, events.raw, 4)
	assert.Equal(t, events.mapped, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

func TestReplayJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := Replay{Script: "testdata/replay.yaml"}
	require.NoError(t, cmd.run(&out, "json", linuxGlobals(testDB), testLogger(), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, map[string]any{"kind": "button", "slot": float64(1), "button": "a", "pressed": true}, first)

	var last struct {
		Kind  string `json:"kind"`
		Slot  int    `json:"slot"`
		State struct {
			Buttons map[string]bool    `json:"buttons"`
			Axes    map[string]float64 `json:"axes"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &last))
	assert.Equal(t, "state", last.Kind)
	assert.Equal(t, 1, last.Slot)
	assert.True(t, last.State.Buttons["dpright"])
	assert.InDelta(t, -1.0, last.State.Axes["leftx"], 1e-6)
}

func TestReplayReport(t *testing.T) {
	var out bytes.Buffer
	cmd := Replay{Script: "testdata/replay.yaml", Report: true}
	require.NoError(t, cmd.run(&out, "text", linuxGlobals(testDB), testLogger(), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	// a + dpright, leftx fully left
	assert.Equal(t, "slot=1 report 00 14 08 10 00 00 00 80 00 00 00 00 00 00 00 00 00 00 00 00", lines[4])
}

func TestConfigInitRender(t *testing.T) {
	data, err := (&ConfigInit{Command: "global", Format: "yaml"}).render()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{"level": "info", "file": "", "event_file": ""}, got["log"])
	assert.Equal(t, []any{}, got["db"])
	assert.Equal(t, false, got["dead_zone"])
	assert.Equal(t, "", got["platform"])
}

func TestConfigInitCommands(t *testing.T) {
	data, err := (&ConfigInit{Command: "watch", Format: "json"}).render()
	require.NoError(t, err)
	assert.JSONEq(t, `{"script":"","debounce":"250ms"}`, string(data))

	data, err = (&ConfigInit{Command: "guid", Format: "toml"}).render()
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver_signature")
	assert.NotContains(t, string(data), "name", "positional arguments are not configurable")
}

func TestConfigInitWrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sub", "joymap.json")
	c := &ConfigInit{Command: "replay", Format: "json", Output: dest}
	require.NoError(t, c.Run())
	assert.FileExists(t, dest)

	assert.Error(t, c.Run(), "refuses to overwrite")
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"DeadZone":        "dead_zone",
		"DB":              "db",
		"GUID":            "guid",
		"EventFile":       "event_file",
		"DriverSignature": "driver_signature",
		"HTTPPort":        "http_port",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, snakeCase(in))
	}
}

func TestWatchReloadsTable(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "gamecontrollerdb.txt")
	require.NoError(t, os.WriteFile(db, []byte("# empty\n"), 0o644))
	scriptPath := filepath.Join(dir, "connect.json")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`{"events":[{"type":"connect","slot":2,"guid":"030000005e0400008e02000014010000","name":"Xbox 360 Controller"}]}`), 0o644))

	ready := make(chan struct{})
	reloaded := make(chan joymap.AssignedMapping, 4)
	w := &Watch{
		Script:   scriptPath,
		Debounce: 10 * time.Millisecond,
		ready:    func() { close(ready) },
		onReload: func(m *joymap.Mapper) {
			am, _ := m.AssignedMapping(2)
			select {
			case reloaded <- am:
			default:
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- w.watch(ctx, &out, linuxGlobals(db), testLogger(), nil) }()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("watch returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}

	line := "030000005e0400008e02000014010000,Xbox 360 Controller,a:b0,leftx:a0,platform:Linux,\n"
	require.NoError(t, os.WriteFile(db, []byte(line), 0o644))

	var am joymap.AssignedMapping
	require.Eventually(t, func() bool {
		select {
		case am = <-reloaded:
			return am.Valid
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, am.Index)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), `slot=2 guid=030000005e0400008e02000014010000 name="Xbox 360 Controller" mapped=false row=-1`)
	assert.Contains(t, out.String(), `mapped=true row=0`)
}
