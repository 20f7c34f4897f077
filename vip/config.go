package vip

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/nf/ch8/chip8"
)

// Config holds the settings of the host system.
type Config struct {
	TicksPerFrame int   `toml:"ticks_per_frame"`
	FrameRate     int   `toml:"frame_rate"`
	Scale         int   `toml:"scale"`
	Foreground    Color `toml:"foreground"`
	Background    Color `toml:"background"`

	// Seed for the RND instruction; zero means seed from the clock.
	Seed int64 `toml:"seed"`

	// KeyHoldMS is how long the terminal front end holds a key down after
	// the last time the terminal reported it.
	KeyHoldMS int `toml:"key_hold_ms"`

	// Keys maps keyboard characters to keypad keys, both as strings.
	// Entries from a file are merged over the default layout.
	Keys map[string]string `toml:"keys"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TicksPerFrame: 10,
		FrameRate:     60,
		Scale:         10,
		Foreground:    Color{0xff, 0xff, 0xff},
		Background:    Color{0x00, 0x00, 0x00},
		KeyHoldMS:     100,
		Keys: map[string]string{
			"1": "1", "2": "2", "3": "3", "4": "C",
			"q": "4", "w": "5", "e": "6", "r": "D",
			"a": "7", "s": "8", "d": "9", "f": "E",
			"z": "A", "x": "0", "c": "B", "v": "F",
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	md, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: unknown settings: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with c, if any.
func (c Config) Validate() error {
	switch {
	case c.TicksPerFrame <= 0:
		return errors.New("ticks_per_frame must be positive")
	case c.FrameRate <= 0:
		return errors.New("frame_rate must be positive")
	case c.Scale <= 0:
		return errors.New("scale must be positive")
	case c.KeyHoldMS <= 0:
		return errors.New("key_hold_ms must be positive")
	}
	_, err := c.Keymap()
	return err
}

// Keymap returns the key layout, keyed by lower-case character.
func (c Config) Keymap() (map[rune]chip8.Key, error) {
	m := make(map[rune]chip8.Key, len(c.Keys))
	for char, name := range c.Keys {
		r, n := utf8.DecodeRuneInString(char)
		if r == utf8.RuneError || n != len(char) {
			return nil, fmt.Errorf("keys: %q is not a single character", char)
		}
		k, err := chip8.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %q: %v", char, err)
		}
		m[unicode.ToLower(r)] = k
	}
	return m, nil
}

// Color is a 24-bit colour written as #RRGGBB.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

func (c Color) String() string { return fmt.Sprintf("#%.2X%.2X%.2X", c.R, c.G, c.B) }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	s := string(b)
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("invalid colour %q, want #RRGGBB", s)
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := unhex(s[1+2*i])
		lo, ok2 := unhex(s[2+2*i])
		if !ok1 || !ok2 {
			return fmt.Errorf("invalid colour %q, want #RRGGBB", s)
		}
		v[i] = hi<<4 | lo
	}
	c.R, c.G, c.B = v[0], v[1], v[2]
	return nil
}

func unhex(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
