package chip8

import "fmt"

const (
	// MemSize is the number of addressable bytes.
	MemSize = 0x1000

	// ProgramStart is where loaded programs begin; everything below it is
	// reserved for the interpreter and holds the glyph table.
	ProgramStart = 0x200

	// FontStart is the address of the first glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes (rows) in each glyph.
	GlyphSize = 5
)

// Memory is the flat, bounds-checked address space of the machine.
type Memory [MemSize]byte

// Read returns the byte at addr, or a MemoryFault if addr is outside memory.
func (m *Memory) Read(addr uint16) (byte, error) {
	if int(addr) >= len(m) {
		return 0, MemoryFault{Addr: addr}
	}
	return m[addr], nil
}

// Write stores b at addr, or returns a MemoryFault if addr is outside memory.
func (m *Memory) Write(addr uint16, b byte) error {
	if int(addr) >= len(m) {
		return MemoryFault{Addr: addr}
	}
	m[addr] = b
	return nil
}

// Load copies b into memory starting at start.
// The caller must make sure that b fits.
func (m *Memory) Load(start uint16, b []byte) {
	copy(m[start:], b)
}

func (m *Memory) loadFont() {
	m.Load(FontStart, font[:])
}

// MemoryFault is returned when an access falls outside of memory.
type MemoryFault struct {
	Addr uint16
}

func (e MemoryFault) Error() string {
	return fmt.Sprintf("memory fault at %.4x", e.Addr)
}

// glyph returns the address of the glyph for the hex digit d.
func glyph(d byte) uint16 {
	return FontStart + uint16(d&0xf)*GlyphSize
}

var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
