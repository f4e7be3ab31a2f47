package event

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key represents a parsed input key, independent of the terminal backend
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check KeyInput.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter; Ctrl+H, Ctrl+I, Ctrl+M arrive as Backspace, Tab, Enter
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// KeyInput is one key press
// Comparable; two equal values describe the same press bit-for-bit
type KeyInput struct {
	Key  Key
	Rune rune // Valid when Key == KeyRune
	Mod  Modifier
}

// Rune builds a printable key input
func Rune(r rune) KeyInput {
	return KeyInput{Key: KeyRune, Rune: r}
}

// Matches reports whether k is the same press as other, ignoring Rune for non-rune keys
func (k KeyInput) Matches(other KeyInput) bool {
	if k.Key != other.Key || k.Mod != other.Mod {
		return false
	}
	return k.Key != KeyRune || k.Rune == other.Rune
}

// String renders k in ParseKey syntax, e.g. "q", "ctrl_c", "alt+x"
func (k KeyInput) String() string {
	var sb strings.Builder
	for _, m := range modNames {
		if k.Mod&m.mod != 0 {
			sb.WriteString(m.name)
			sb.WriteByte('+')
		}
	}
	switch k.Key {
	case KeyRune:
		if k.Rune == ' ' {
			sb.WriteString("space")
		} else {
			sb.WriteRune(k.Rune)
		}
	case KeyNone:
		sb.WriteString("none")
	default:
		if name, ok := keyToName[k.Key]; ok {
			sb.WriteString(name)
		} else {
			fmt.Fprintf(&sb, "key(%d)", uint16(k.Key))
		}
	}
	return sb.String()
}

var modNames = []struct {
	name string
	mod  Modifier
}{
	{"ctrl", ModCtrl},
	{"alt", ModAlt},
	{"meta", ModMeta},
	{"shift", ModShift},
}

// keyToName maps Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA: "ctrl_a",
	KeyCtrlB: "ctrl_b",
	KeyCtrlC: "ctrl_c",
	KeyCtrlD: "ctrl_d",
	KeyCtrlE: "ctrl_e",
	KeyCtrlF: "ctrl_f",
	KeyCtrlG: "ctrl_g",
	KeyCtrlJ: "ctrl_j",
	KeyCtrlK: "ctrl_k",
	KeyCtrlL: "ctrl_l",
	KeyCtrlN: "ctrl_n",
	KeyCtrlO: "ctrl_o",
	KeyCtrlP: "ctrl_p",
	KeyCtrlQ: "ctrl_q",
	KeyCtrlR: "ctrl_r",
	KeyCtrlS: "ctrl_s",
	KeyCtrlT: "ctrl_t",
	KeyCtrlU: "ctrl_u",
	KeyCtrlV: "ctrl_v",
	KeyCtrlW: "ctrl_w",
	KeyCtrlX: "ctrl_x",
	KeyCtrlY: "ctrl_y",
	KeyCtrlZ: "ctrl_z",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// ParseKey resolves a key description such as "q", "escape", "ctrl_c" or "alt+x"
// Modifier prefixes are joined with '+'; "space" names the space rune
func ParseKey(s string) (KeyInput, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyInput{}, fmt.Errorf("empty key name")
	}

	var in KeyInput
	for {
		idx := strings.IndexByte(s, '+')
		if idx <= 0 || idx == len(s)-1 {
			break
		}
		mod, ok := parseModifier(strings.ToLower(s[:idx]))
		if !ok {
			return KeyInput{}, fmt.Errorf("unknown modifier %q", s[:idx])
		}
		in.Mod |= mod
		s = s[idx+1:]
	}

	if s == "space" {
		in.Key, in.Rune = KeyRune, ' '
		return in, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		in.Key, in.Rune = KeyRune, r
		return in, nil
	}
	if k, ok := nameToKey[strings.ToLower(s)]; ok {
		in.Key = k
		return in, nil
	}
	return KeyInput{}, fmt.Errorf("unknown key %q", s)
}

func parseModifier(s string) (Modifier, bool) {
	for _, m := range modNames {
		if m.name == s {
			return m.mod, true
		}
	}
	return ModNone, false
}
