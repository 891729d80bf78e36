package mapping_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/joymap/mapping"
)

const xboxLine = "030000005e0400008e02000014010000,Xbox Controller,a:b1,leftx:a0,dpup:h0.1"

func linuxParser() *mapping.Parser { return &mapping.Parser{Platform: "Linux"} }

func TestParseExampleLine(t *testing.T) {
	m, err := linuxParser().Parse(xboxLine)
	require.NoError(t, err)

	assert.Equal(t, "030000005e0400008e02000014010000", m.GUID.String())
	assert.Equal(t, "Xbox Controller", m.Name)
	assert.Equal(t, mapping.ButtonA, m.Desc.Buttons[1])
	assert.Equal(t, mapping.AxisLeftX, m.Desc.Axes[0].Name)
	assert.Equal(t, float32(-1), m.Desc.Axes[0].Min)
	assert.Equal(t, float32(1), m.Desc.Axes[0].Max)
	assert.Equal(t, mapping.HatBinding{Hat: 0, Button: mapping.ButtonDPadUp}, m.Desc.Hats[mapping.DirUp])

	for _, dir := range []mapping.HatDirection{mapping.DirRight, mapping.DirDown, mapping.DirLeft} {
		assert.Equal(t, mapping.ButtonNone, m.Desc.Hats[dir].Button)
	}
	assert.Equal(t, mapping.ButtonNone, m.Desc.Buttons[0])
	assert.Equal(t, mapping.AxisNone, m.Desc.Axes[1].Name)
}

func TestParseValueForms(t *testing.T) {
	line := " 03000000de280000ff11000001000000 ,  Steam Virtual Gamepad , a : b0 ," +
		"lefty:a1~,lefttrigger:a2,righttrigger:+a5,+rightx:a3,-righty:a4," +
		"+leftx:b12,-leftx:b11,rightshoulder:b5," +
		"dpleft:-a6,dpright:+a6,dpup:a7~,back:h0.4,guide:h1.8,"
	m, err := linuxParser().Parse(line)
	require.NoError(t, err)

	d := m.Desc
	assert.Equal(t, "Steam Virtual Gamepad", m.Name)
	assert.Equal(t, mapping.ButtonA, d.Buttons[0])
	assert.Equal(t, mapping.ButtonRightShoulder, d.Buttons[5])

	assert.Equal(t, mapping.Axis{Name: mapping.AxisLeftY, Min: -1, Max: 1, Invert: true}, d.Axes[1])
	assert.Equal(t, mapping.Axis{Name: mapping.AxisLeftTrigger, Min: 0, Max: 1}, d.Axes[2])
	assert.Equal(t, mapping.Axis{Name: mapping.AxisRightTrigger, Min: 0, Max: 1, Half: mapping.HalfPositive}, d.Axes[5])
	assert.Equal(t, mapping.Axis{Name: mapping.AxisRightX, Min: 0, Max: 1}, d.Axes[3])
	assert.Equal(t, mapping.Axis{Name: mapping.AxisRightY, Min: 0, Max: -1}, d.Axes[4])

	assert.Equal(t, mapping.ButtonAxis{Name: mapping.AxisLeftX, Value: 1}, d.ButtonAxes[12])
	assert.Equal(t, mapping.ButtonAxis{Name: mapping.AxisLeftX, Value: -1}, d.ButtonAxes[11])

	assert.Equal(t, mapping.ButtonDPadLeft, d.Axes[6].ButtonNegative)
	assert.Equal(t, mapping.ButtonDPadRight, d.Axes[6].ButtonPositive)
	assert.Equal(t, mapping.AxisNone, d.Axes[6].Name)
	assert.Equal(t, mapping.ButtonDPadUp, d.Axes[7].ButtonNegative, "inverted full axis drives the negative alias")

	assert.Equal(t, mapping.HatBinding{Hat: 0, Button: mapping.ButtonBack}, d.Hats[mapping.DirDown])
	assert.Equal(t, mapping.HatBinding{Hat: 1, Button: mapping.ButtonGuide}, d.Hats[mapping.DirLeft])
}

func TestParseDiagonalHat(t *testing.T) {
	m, err := linuxParser().Parse("030000005e0400008e02000014010000,Diag,dpup:h0.3")
	require.NoError(t, err)

	assert.Equal(t, mapping.ButtonDPadUp, m.Desc.Hats[mapping.DirUp].Button)
	assert.Equal(t, mapping.ButtonDPadUp, m.Desc.Hats[mapping.DirRight].Button)
	assert.Equal(t, mapping.ButtonNone, m.Desc.Hats[mapping.DirDown].Button)
	assert.Equal(t, mapping.ButtonNone, m.Desc.Hats[mapping.DirLeft].Button)
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	m, err := linuxParser().Parse(xboxLine + ",crc:ab12,hint:!SDL_GAMECONTROLLER_USE_BUTTON_LABELS:=1,turbo:b3,noseparator,+a:b2")
	require.NoError(t, err)
	assert.Equal(t, mapping.ButtonA, m.Desc.Buttons[1])
	assert.Equal(t, mapping.ButtonNone, m.Desc.Buttons[3])
	assert.Equal(t, mapping.ButtonNone, m.Desc.Buttons[2])
}

func TestParsePlatformFilter(t *testing.T) {
	cases := []struct {
		name     string
		platform string
		line     string
		wantErr  bool
	}{
		{name: "matching platform", platform: "Linux", line: xboxLine + ",platform:Linux,"},
		{name: "other platform", platform: "Linux", line: xboxLine + ",platform:Windows,", wantErr: true},
		{name: "platform names are case sensitive", platform: "Linux", line: xboxLine + ",platform:linux", wantErr: true},
		{name: "mac name with spaces", platform: "Mac OS X", line: xboxLine + ", platform:Mac OS X"},
		{name: "no platform field", platform: "Windows", line: xboxLine},
		{name: "empty filter accepts all", platform: "", line: xboxLine + ",platform:Android"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &mapping.Parser{Platform: tc.platform}
			m, err := p.Parse(tc.line)
			if tc.wantErr {
				assert.ErrorIs(t, err, mapping.ErrPlatformMismatch)
				assert.Equal(t, mapping.MappedJoystick{}, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, mapping.ButtonA, m.Desc.Buttons[1])
		})
	}
}

func TestParseFailures(t *testing.T) {
	const guid = "030000005e0400008e02000014010000"
	cases := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "empty line", line: "", wantErr: mapping.ErrTooFewFields},
		{name: "guid only", line: guid, wantErr: mapping.ErrTooFewFields},
		{name: "malformed guid", line: "xyz,Pad,a:b0", wantErr: mapping.ErrMalformedGUID},
		{name: "empty name", line: guid + ", ,a:b0", wantErr: mapping.ErrEmptyName},
		{name: "unknown value form", line: guid + ",Pad,a:x0", wantErr: mapping.ErrInvalidValue},
		{name: "empty value", line: guid + ",Pad,a:", wantErr: mapping.ErrInvalidValue},
		{name: "signed button index", line: guid + ",Pad,a:b-1", wantErr: mapping.ErrInvalidValue},
		{name: "axis without index", line: guid + ",Pad,leftx:+a", wantErr: mapping.ErrInvalidValue},
		{name: "hat without mask", line: guid + ",Pad,dpup:h0", wantErr: mapping.ErrInvalidValue},
		{name: "hat zero mask", line: guid + ",Pad,dpup:h0.0", wantErr: mapping.ErrInvalidValue},
		{name: "hat mask too large", line: guid + ",Pad,dpup:h0.16", wantErr: mapping.ErrInvalidValue},
		{name: "hat opposite directions", line: guid + ",Pad,dpup:h0.5", wantErr: mapping.ErrInvalidValue},
		{name: "hat left and right", line: guid + ",Pad,dpup:h0.10", wantErr: mapping.ErrInvalidValue},
		{name: "hat three directions", line: guid + ",Pad,dpup:h0.7", wantErr: mapping.ErrInvalidValue},
		{name: "hat on axis key out of range", line: guid + ",Pad,leftx:h9.1", wantErr: mapping.ErrIndexOutOfRange},
		{name: "button index out of range", line: guid + ",Pad,a:b34", wantErr: mapping.ErrIndexOutOfRange},
		{name: "axis index out of range", line: guid + ",Pad,leftx:a10", wantErr: mapping.ErrIndexOutOfRange},
		{name: "axis alias index out of range", line: guid + ",Pad,dpup:-a12", wantErr: mapping.ErrIndexOutOfRange},
		{name: "button axis index out of range", line: guid + ",Pad,lefttrigger:b40", wantErr: mapping.ErrIndexOutOfRange},
		{name: "hat index out of range", line: guid + ",Pad,dpup:h4.1", wantErr: mapping.ErrIndexOutOfRange},
		{name: "late failure keeps nothing", line: guid + ",Pad,a:b0,b:b1,x:q", wantErr: mapping.ErrInvalidValue},
	}

	p := linuxParser()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := p.Parse(tc.line)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, mapping.MappedJoystick{}, m, "no partial record on failure")
		})
	}
}

func TestParseTruncatesLongNames(t *testing.T) {
	name := strings.Repeat("n", mapping.MaxNameLength-1) + "é" + "tail"
	m, err := linuxParser().Parse("030000005e0400008e02000014010000," + name + ",a:b0")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("n", mapping.MaxNameLength-1), m.Name)
}

func TestFormatParsesBack(t *testing.T) {
	lines := []string{
		xboxLine,
		"03000000de280000ff11000001000000,Steam Virtual Gamepad,a:b0,b:b1,lefty:a1~,lefttrigger:a2,-lefttrigger:b9,righttrigger:+a5," +
			"+rightx:a3,-righty:a4,+leftx:b12,-leftx:b11,dpleft:-a6,dpright:+a6,dpup:h0.3,dpdown:h0.4,guide:h1.8,",
		guid2Line,
	}
	p := linuxParser()
	for _, line := range lines {
		first, err := p.Parse(line)
		require.NoError(t, err)

		second, err := p.Parse(first.String())
		require.NoError(t, err, first.String())
		assert.Equal(t, first, second)
	}

	m, err := p.Parse(xboxLine)
	require.NoError(t, err)
	assert.Equal(t, "030000005e0400008e02000014010000,Xbox Controller,leftx:a0,a:b1,dpup:h0.1,", m.String())
}

const guid2Line = "03000000de280000ff11000001000000,Split Hat,start:h0.1,start:h0.4,back:h1.8,"

func TestFormatHatFolding(t *testing.T) {
	p := linuxParser()
	m, err := p.Parse(guid2Line)
	require.NoError(t, err)
	assert.Equal(t, guid2Line, m.String(), "opposite directions stay separate values")

	m, err = p.Parse("03000000de280000ff11000001000000,Pad,dpup:h2.9,")
	require.NoError(t, err)
	assert.Equal(t, "03000000de280000ff11000001000000,Pad,dpup:h2.9,", m.String())
}

func TestParserForUnlistedOS(t *testing.T) {
	p := mapping.NewParserFor("freebsd")
	assert.Equal(t, "freebsd", p.Platform)

	_, err := p.Parse("03000000ffff00000000000000000000,Windows Pad,a:b0,platform:Windows,")
	assert.ErrorIs(t, err, mapping.ErrPlatformMismatch)

	m, err := p.Parse("03000000ffff00000000000000000000,Any Pad,a:b0,")
	require.NoError(t, err)
	assert.Equal(t, "Any Pad", m.Name)

	assert.Equal(t, "Linux", mapping.NewParserFor("linux").Platform)
}

func TestParseSource(t *testing.T) {
	cases := []struct {
		in       string
		expected mapping.Source
	}{
		{in: "b12", expected: mapping.ButtonSource{Index: 12}},
		{in: "a3", expected: mapping.AxisSource{Index: 3}},
		{in: "+a3", expected: mapping.AxisSource{Index: 3, Half: mapping.HalfPositive}},
		{in: "-a3~", expected: mapping.AxisSource{Index: 3, Half: mapping.HalfNegative, Invert: true}},
		{in: "h2.8", expected: mapping.HatSource{Hat: 2, Mask: mapping.HatLeft}},
		{in: "h1.9", expected: mapping.HatSource{Hat: 1, Mask: mapping.HatLeft | mapping.HatUp}},
		{in: "h0.6", expected: mapping.HatSource{Hat: 0, Mask: mapping.HatRight | mapping.HatDown}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			src, err := mapping.ParseSource(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, src)
			assert.Equal(t, tc.in, src.String())
		})
	}
}
