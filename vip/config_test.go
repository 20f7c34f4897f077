package vip

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nf/ch8/chip8"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ch8.toml")
	if err := os.WriteFile(p, []byte(s), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	km, err := c.Keymap()
	if err != nil {
		t.Fatal(err)
	}
	if len(km) != chip8.NumKeys {
		t.Errorf("default keymap has %d keys, want %d", len(km), chip8.NumKeys)
	}
	seen := map[chip8.Key]bool{}
	for _, k := range km {
		seen[k] = true
	}
	if len(seen) != chip8.NumKeys {
		t.Errorf("default keymap covers %d keypad keys, want %d", len(seen), chip8.NumKeys)
	}
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
ticks_per_frame = 20
foreground = "#33ff66"
seed = 7

[keys]
p = "f"
M = "a"
`)
	c, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.TicksPerFrame != 20 || c.FrameRate != 60 || c.Seed != 7 {
		t.Errorf("got ticks_per_frame %d, frame_rate %d, seed %d", c.TicksPerFrame, c.FrameRate, c.Seed)
	}
	if w := (Color{0x33, 0xff, 0x66}); c.Foreground != w {
		t.Errorf("foreground is %v, want %v", c.Foreground, w)
	}
	km, err := c.Keymap()
	if err != nil {
		t.Fatal(err)
	}
	for r, w := range map[rune]chip8.Key{'p': chip8.KeyF, 'm': chip8.KeyA, '1': chip8.Key1, 'v': chip8.KeyF} {
		if g, ok := km[r]; !ok || g != w {
			t.Errorf("keymap[%q] = %v, %v, want %v", r, g, ok, w)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, c := range []struct {
		name, toml, err string
	}{
		{"unknown", `colour = "#ffffff"`, "unknown settings: colour"},
		{"color", `foreground = "red"`, "invalid colour"},
		{"rate", `frame_rate = 0`, "frame_rate must be positive"},
		{"keyname", "[keys]\nq = \"g\"", "invalid key"},
		{"keychar", "[keys]\nqq = \"1\"", "not a single character"},
		{"syntax", `ticks_per_frame = `, "ch8.toml"},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, c.toml))
			if err == nil || !strings.Contains(err.Error(), c.err) {
				t.Errorf("got error %v, want one containing %q", err, c.err)
			}
		})
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#0aBc12")); err != nil {
		t.Fatal(err)
	}
	if c != (Color{0x0a, 0xbc, 0x12}) {
		t.Errorf("got %v", c)
	}
	if g, w := c.String(), "#0ABC12"; g != w {
		t.Errorf("String() = %q, want %q", g, w)
	}
	for _, s := range []string{"", "#fff", "0aBc12", "#0aBc1g", "#0aBc123"} {
		if err := c.UnmarshalText([]byte(s)); err == nil {
			t.Errorf("UnmarshalText(%q) succeeded", s)
		}
	}
}
