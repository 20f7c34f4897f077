// Package chip8 provides an implementation of a CHIP-8 interpreter core,
// called Machine, that can be used to execute CHIP-8 programs.
package chip8

import (
	"errors"
	"fmt"
	"math/rand"
)

// Machine is the complete state of a CHIP-8 interpreter.
type Machine struct {
	Mem    Memory
	V      Registers
	I      uint16
	PC     uint16
	Stack  Stack
	DT, ST Timer
	Keys   Keypad
	Screen Framebuffer

	// Rand is the source used by RND.
	Rand *rand.Rand
}

// NewMachine returns a Machine with the glyph table loaded, PC set to
// ProgramStart and a deterministically seeded random source.
func NewMachine() *Machine {
	m := &Machine{Rand: rand.New(rand.NewSource(0))}
	m.Reset()
	return m
}

// Reset returns the machine to its power-on state, keeping Rand.
func (m *Machine) Reset() {
	r := m.Rand
	*m = Machine{PC: ProgramStart, Rand: r}
	m.Mem.loadFont()
}

var ErrROMTooLarge = errors.New("rom too large")

// Load copies rom into memory at ProgramStart.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MemSize-ProgramStart {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, len(rom), MemSize-ProgramStart)
	}
	m.Mem.Load(ProgramStart, rom)
	return nil
}

// Press and Release latch the state of key k.
func (m *Machine) Press(k Key)   { m.Keys.Press(k) }
func (m *Machine) Release(k Key) { m.Keys.Release(k) }

// Sound reports whether the buzzer should be sounding.
func (m *Machine) Sound() bool { return m.ST > 0 }

// FrameTick decrements both timers. Hosts call it at 60Hz.
func (m *Machine) FrameTick() {
	m.DT.Decrease()
	m.ST.Decrease()
}

// Tick fetches, decodes and executes the instruction at PC.
// Any fault is returned as a HaltError; PC has already been advanced past
// the faulting instruction unless the fault occurred during fetch.
func (m *Machine) Tick() error {
	addr := m.PC
	op, err := m.fetch()
	if err != nil {
		return HaltError{Err: err, Addr: addr}
	}
	m.advance()
	in, err := Decode(op)
	if err == nil {
		err = m.execute(in)
	}
	if err != nil {
		return HaltError{Err: err, Op: op, Addr: addr}
	}
	return nil
}

// Fetch returns the opcode at addr without modifying the machine.
func (m *Machine) Fetch(addr uint16) (Opcode, error) {
	hi, err := m.Mem.Read(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.Mem.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return Opcode(hi)<<8 | Opcode(lo), nil
}

func (m *Machine) fetch() (Opcode, error) { return m.Fetch(m.PC) }

func (m *Machine) advance() { m.PC += 2 }

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.advance()
	}
}

// ref returns the address I+i.
func (m *Machine) ref(i int) (uint16, error) {
	a := int(m.I) + i
	if a >= MemSize {
		if a > 0xffff {
			a = 0xffff
		}
		return 0, MemoryFault{Addr: uint16(a)}
	}
	return uint16(a), nil
}

func (m *Machine) execute(in Instruction) error {
	var (
		x  = in.X & 0xf
		y  = in.Y & 0xf
		vx = m.V[x]
		vy = m.V[y]
	)
	switch in.Op {
	case CLS:
		m.Screen.Clear()
	case RET:
		addr, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		m.PC = addr
	case SYS, JP:
		m.PC = in.NNN
	case CALL:
		if err := m.Stack.Push(m.PC); err != nil {
			return err
		}
		m.PC = in.NNN
	case SEB:
		m.skipIf(vx == in.NN)
	case SNEB:
		m.skipIf(vx != in.NN)
	case SE:
		m.skipIf(vx == vy)
	case SNE:
		m.skipIf(vx != vy)
	case LDB:
		m.V.Load(x, in.NN)
	case ADDB:
		m.V.AddImmediate(x, in.NN)
	case LD:
		m.V.Load(x, vy)
	case OR:
		m.V.Or(x, y)
	case AND:
		m.V.And(x, y)
	case XOR:
		m.V.Xor(x, y)
	case ADD:
		m.V.AddChecked(x, y)
	case SUB:
		m.V.Sub(x, y)
	case SUBN:
		m.V.SubN(x, y)
	case SHR:
		m.V.ShiftRight(x)
	case SHL:
		m.V.ShiftLeft(x)
	case LDI:
		m.I = in.NNN
	case JPV:
		m.PC = in.NNN + uint16(m.V[0])
	case RND:
		m.V.Load(x, byte(m.Rand.Intn(0x100))&in.NN)
	case DRW:
		return m.draw(vx, vy, int(in.N&0xf))
	case SKP:
		m.skipIf(m.Keys.IsPressed(Key(vx)))
	case SKNP:
		m.skipIf(!m.Keys.IsPressed(Key(vx)))
	case LDVDT:
		m.V.Load(x, m.DT.Get())
	case LDK:
		if k, ok := m.Keys.Pressed(); ok {
			m.V.Load(x, byte(k))
		} else {
			m.PC -= 2
		}
	case LDDT:
		m.DT.Set(vx)
	case LDST:
		m.ST.Set(vx)
	case ADDI:
		m.I += uint16(vx)
	case LDF:
		m.I = glyph(vx)
	case BCD:
		for i, d := range [3]byte{vx / 100, vx / 10 % 10, vx % 10} {
			a, err := m.ref(i)
			if err != nil {
				return err
			}
			m.Mem[a] = d
		}
	case STR:
		for i := 0; i <= int(x); i++ {
			a, err := m.ref(i)
			if err != nil {
				return err
			}
			m.Mem[a] = m.V[i]
		}
	case LDR:
		for i := 0; i <= int(x); i++ {
			a, err := m.ref(i)
			if err != nil {
				return err
			}
			m.V[i] = m.Mem[a]
		}
	default:
		panic(fmt.Errorf("internal error: %v not implemented", in.Op))
	}
	return nil
}

// draw XORs the n-row sprite at I onto the screen at (vx, vy).
// The sprite is read in full before any pixel changes.
func (m *Machine) draw(vx, vy byte, n int) error {
	rows := make([]byte, n)
	for i := range rows {
		a, err := m.ref(i)
		if err != nil {
			return err
		}
		rows[i] = m.Mem[a]
	}
	erased := false
	for row, bits := range rows {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if m.Screen.Paint(int(vx)+col, int(vy)+row) {
				erased = true
			}
		}
	}
	m.V.setFlag(erased)
	return nil
}

// HaltError is returned by Tick if execution is halted by a fault.
type HaltError struct {
	Err  error
	Op   Opcode
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%v executing %s at %.4x", e.Err, e.Op, e.Addr)
}

func (e HaltError) Unwrap() error { return e.Err }
