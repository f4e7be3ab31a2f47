package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want KeyInput
	}{
		{"q", Rune('q')},
		{"Q", Rune('Q')},
		{"space", Rune(' ')},
		{"escape", KeyInput{Key: KeyEscape}},
		{"esc", KeyInput{Key: KeyEscape}},
		{"shift_tab", KeyInput{Key: KeyBacktab}},
		{"ctrl_c", KeyInput{Key: KeyCtrlC}},
		{"F5", KeyInput{Key: KeyF5}},
		{"alt+x", KeyInput{Key: KeyRune, Rune: 'x', Mod: ModAlt}},
		{"ctrl+shift+up", KeyInput{Key: KeyUp, Mod: ModCtrl | ModShift}},
		{"+", Rune('+')},
		{"alt++", KeyInput{Key: KeyRune, Rune: '+', Mod: ModAlt}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "  ", "hyper+x", "notakey"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestKeyStringRoundTrip(t *testing.T) {
	keys := []KeyInput{
		Rune('q'),
		Rune(' '),
		{Key: KeyEnter},
		{Key: KeyCtrlZ},
		{Key: KeyPageDown, Mod: ModShift},
		{Key: KeyRune, Rune: 'k', Mod: ModCtrl | ModAlt},
	}
	for _, k := range keys {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err, "key %s", k)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "ctrl+alt+k", KeyInput{Key: KeyRune, Rune: 'k', Mod: ModCtrl | ModAlt}.String())
	assert.Equal(t, "page_down", KeyName(KeyPageDown))
	assert.Empty(t, KeyName(KeyRune))
}

func TestKeyMatches(t *testing.T) {
	assert.True(t, Rune('q').Matches(Rune('q')))
	assert.False(t, Rune('q').Matches(Rune('w')))
	assert.False(t, Rune('q').Matches(KeyInput{Key: KeyRune, Rune: 'q', Mod: ModAlt}))
	// Rune is ignored for named keys
	assert.True(t, KeyInput{Key: KeyEscape}.Matches(KeyInput{Key: KeyEscape, Rune: 27}))
}

type board struct {
	cells []int
}

func (b board) Clone() board {
	return board{cells: append([]int(nil), b.cells...)}
}

func TestCustomPayloadClone(t *testing.T) {
	orig := Custom(board{cells: []int{1, 2, 3}})
	clone := orig.Clone()

	got, ok := PayloadAs[board](clone)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got.cells)

	// Deep copy through Cloner
	src, _ := PayloadAs[board](orig)
	src.cells[0] = 99
	assert.Equal(t, 1, got.cells[0])

	_, ok = PayloadAs[string](clone)
	assert.False(t, ok)
	_, ok = PayloadAs[board](QuitEvent())
	assert.False(t, ok)
}

type tag string

func (t tag) Clone() Payload { return t }
func (t tag) String() string { return string(t) }

func TestCustomPayloadDirect(t *testing.T) {
	ev := CustomEvent(tag("hello"))
	got, ok := PayloadAs[tag](ev.Clone())
	require.True(t, ok)
	assert.Equal(t, tag("hello"), got)
	assert.Equal(t, "Custom(hello)", ev.String())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Key(ctrl_c)", KeyEvent(KeyInput{Key: KeyCtrlC}).String())
	assert.Equal(t, "Resize(80x24)", ResizeEvent(80, 24).String())
	assert.Equal(t, "Mouse(Left Drag @1,2)", MouseEvent(MouseInput{X: 1, Y: 2, Button: MouseBtnLeft, Action: MouseActionDrag}).String())
	assert.Equal(t, "Quit", QuitEvent().String())
	assert.Equal(t, "Custom(nil)", Event{Kind: KindCustom}.String())
}

func TestTranslate(t *testing.T) {
	_, ok := Translate(Input{Kind: InputOther})
	assert.False(t, ok)

	ev, ok := Translate(Input{Kind: InputResize, Width: 10, Height: 5})
	require.True(t, ok)
	assert.Equal(t, ResizeEvent(10, 5), ev)
}
