package chip8

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies one of the 16 keys of the hex keypad.
type Key byte

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// NumKeys is the number of keys on the keypad.
const NumKeys = 16

func (k Key) String() string { return fmt.Sprintf("%X", byte(k)) }

// ParseKey parses a single hex digit naming a key, such as "7" or "c".
func ParseKey(s string) (Key, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 8)
	if err != nil || v >= NumKeys {
		return 0, fmt.Errorf("invalid key %q", s)
	}
	return Key(v), nil
}

// Keypad latches the pressed state of each key.
type Keypad [NumKeys]bool

func (p *Keypad) Press(k Key)   { p[k&0xf] = true }
func (p *Keypad) Release(k Key) { p[k&0xf] = false }

// IsPressed reports whether k is currently held.
func (p *Keypad) IsPressed(k Key) bool { return p[k&0xf] }

// Pressed returns the lowest-numbered key that is held, if any.
func (p *Keypad) Pressed() (Key, bool) {
	for i, down := range p {
		if down {
			return Key(i), true
		}
	}
	return 0, false
}
