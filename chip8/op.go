package chip8

import (
	"fmt"
	"strings"
)

// Opcode is a 16-bit instruction word, stored big-endian in memory.
type Opcode uint16

func (o Opcode) String() string { return fmt.Sprintf("%.4x", uint16(o)) }

// Op identifies an instruction form.
type Op byte

const (
	CLS   Op = iota // 00E0
	RET             // 00EE
	SYS             // 0nnn
	JP              // 1nnn
	CALL            // 2nnn
	SEB             // 3xnn
	SNEB            // 4xnn
	SE              // 5xy0
	LDB             // 6xnn
	ADDB            // 7xnn
	LD              // 8xy0
	OR              // 8xy1
	AND             // 8xy2
	XOR             // 8xy3
	ADD             // 8xy4
	SUB             // 8xy5
	SHR             // 8xy6
	SUBN            // 8xy7
	SHL             // 8xyE
	SNE             // 9xy0
	LDI             // Annn
	JPV             // Bnnn
	RND             // Cxnn
	DRW             // Dxyn
	SKP             // Ex9E
	SKNP            // ExA1
	LDVDT           // Fx07
	LDK             // Fx0A
	LDDT            // Fx15
	LDST            // Fx18
	ADDI            // Fx1E
	LDF             // Fx29
	BCD             // Fx33
	STR             // Fx55
	LDR             // Fx65

	numOps
)

func (o Op) String() string {
	if o >= numOps {
		return fmt.Sprintf("Op(%d)", byte(o))
	}
	return opStrings[o]
}

var opStrings = strings.Fields(`
	CLS RET SYS JP CALL
	SEB SNEB SE LDB ADDB
	LD OR AND XOR ADD SUB SHR SUBN SHL
	SNE LDI JPV RND DRW SKP SKNP
	LDVDT LDK LDDT LDST ADDI LDF BCD STR LDR
`)

// Description returns a one-line summary of what the instruction does.
func (o Op) Description() string {
	if o >= numOps {
		return ""
	}
	return opInfo[o].desc
}

// operand layouts
type form byte

const (
	formNone form = iota
	formAddr      // nnn
	formXNN       // x, nn
	formXY        // x, y
	formXYN       // x, y, n
	formX         // x
)

var opInfo = [numOps]struct {
	base Opcode
	form form
	desc string
}{
	CLS:   {0x00E0, formNone, "Clear the display."},
	RET:   {0x00EE, formNone, "Return from a subroutine."},
	SYS:   {0x0000, formAddr, "Jump to machine code routine at nnn."},
	JP:    {0x1000, formAddr, "Jump to nnn."},
	CALL:  {0x2000, formAddr, "Call subroutine at nnn."},
	SEB:   {0x3000, formXNN, "Skip next instruction if Vx == nn."},
	SNEB:  {0x4000, formXNN, "Skip next instruction if Vx != nn."},
	SE:    {0x5000, formXY, "Skip next instruction if Vx == Vy."},
	LDB:   {0x6000, formXNN, "Set Vx = nn."},
	ADDB:  {0x7000, formXNN, "Set Vx = Vx + nn."},
	LD:    {0x8000, formXY, "Set Vx = Vy."},
	OR:    {0x8001, formXY, "Set Vx = Vx OR Vy."},
	AND:   {0x8002, formXY, "Set Vx = Vx AND Vy."},
	XOR:   {0x8003, formXY, "Set Vx = Vx XOR Vy."},
	ADD:   {0x8004, formXY, "Set Vx = Vx + Vy, VF = carry."},
	SUB:   {0x8005, formXY, "Set Vx = Vx - Vy, VF = NOT borrow."},
	SHR:   {0x8006, formXY, "Set Vx = Vx >> 1, VF = shifted out bit."},
	SUBN:  {0x8007, formXY, "Set Vx = Vy - Vx, VF = NOT borrow."},
	SHL:   {0x800E, formXY, "Set Vx = Vx << 1, VF = shifted out bit."},
	SNE:   {0x9000, formXY, "Skip next instruction if Vx != Vy."},
	LDI:   {0xA000, formAddr, "Set I = nnn."},
	JPV:   {0xB000, formAddr, "Jump to nnn + V0."},
	RND:   {0xC000, formXNN, "Set Vx = random byte AND nn."},
	DRW:   {0xD000, formXYN, "Draw n-byte sprite at I at (Vx, Vy), VF = collision."},
	SKP:   {0xE09E, formX, "Skip next instruction if key Vx is pressed."},
	SKNP:  {0xE0A1, formX, "Skip next instruction if key Vx is not pressed."},
	LDVDT: {0xF007, formX, "Set Vx = delay timer."},
	LDK:   {0xF00A, formX, "Wait for a key press, store the key in Vx."},
	LDDT:  {0xF015, formX, "Set delay timer = Vx."},
	LDST:  {0xF018, formX, "Set sound timer = Vx."},
	ADDI:  {0xF01E, formX, "Set I = I + Vx."},
	LDF:   {0xF029, formX, "Set I = location of glyph for digit Vx."},
	BCD:   {0xF033, formX, "Store BCD of Vx at I, I+1 and I+2."},
	STR:   {0xF055, formX, "Store V0 through Vx in memory starting at I."},
	LDR:   {0xF065, formX, "Read V0 through Vx from memory starting at I."},
}

// Instruction is a decoded opcode. Only the operand fields used by Op are set.
type Instruction struct {
	Op   Op
	X, Y byte   // register indices
	N    byte   // 4-bit sprite height
	NN   byte   // 8-bit literal
	NNN  uint16 // 12-bit address
}

// DecodeFault is returned when an opcode matches no instruction.
type DecodeFault struct {
	Opcode Opcode
}

func (e DecodeFault) Error() string {
	return fmt.Sprintf("invalid opcode %s", e.Opcode)
}

// Decode returns the instruction encoded by o.
func Decode(o Opcode) (Instruction, error) {
	var (
		x   = byte(o>>8) & 0xf
		y   = byte(o>>4) & 0xf
		n   = byte(o) & 0xf
		nn  = byte(o)
		nnn = uint16(o) & 0xfff
	)
	addr := func(op Op) (Instruction, error) { return Instruction{Op: op, NNN: nnn}, nil }
	xnn := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x, NN: nn}, nil }
	xy := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x, Y: y}, nil }
	reg := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x}, nil }

	switch o >> 12 {
	case 0x0:
		switch nnn {
		case 0x0E0:
			return Instruction{Op: CLS}, nil
		case 0x0EE:
			return Instruction{Op: RET}, nil
		}
		return addr(SYS)
	case 0x1:
		return addr(JP)
	case 0x2:
		return addr(CALL)
	case 0x3:
		return xnn(SEB)
	case 0x4:
		return xnn(SNEB)
	case 0x5:
		if n == 0 {
			return xy(SE)
		}
	case 0x6:
		return xnn(LDB)
	case 0x7:
		return xnn(ADDB)
	case 0x8:
		switch n {
		case 0x0:
			return xy(LD)
		case 0x1:
			return xy(OR)
		case 0x2:
			return xy(AND)
		case 0x3:
			return xy(XOR)
		case 0x4:
			return xy(ADD)
		case 0x5:
			return xy(SUB)
		case 0x6:
			return xy(SHR)
		case 0x7:
			return xy(SUBN)
		case 0xE:
			return xy(SHL)
		}
	case 0x9:
		if n == 0 {
			return xy(SNE)
		}
	case 0xA:
		return addr(LDI)
	case 0xB:
		return addr(JPV)
	case 0xC:
		return xnn(RND)
	case 0xD:
		return Instruction{Op: DRW, X: x, Y: y, N: n}, nil
	case 0xE:
		switch nn {
		case 0x9E:
			return reg(SKP)
		case 0xA1:
			return reg(SKNP)
		}
	case 0xF:
		switch nn {
		case 0x07:
			return reg(LDVDT)
		case 0x0A:
			return reg(LDK)
		case 0x15:
			return reg(LDDT)
		case 0x18:
			return reg(LDST)
		case 0x1E:
			return reg(ADDI)
		case 0x29:
			return reg(LDF)
		case 0x33:
			return reg(BCD)
		case 0x55:
			return reg(STR)
		case 0x65:
			return reg(LDR)
		}
	}
	return Instruction{}, DecodeFault{Opcode: o}
}

// Encode returns the opcode for in. For every opcode o that decodes
// successfully, Decode(o) followed by Encode returns o.
func (in Instruction) Encode() Opcode {
	if in.Op >= numOps {
		return 0
	}
	info := opInfo[in.Op]
	var (
		x = Opcode(in.X&0xf) << 8
		y = Opcode(in.Y&0xf) << 4
	)
	switch info.form {
	case formAddr:
		return info.base | Opcode(in.NNN&0xfff)
	case formXNN:
		return info.base | x | Opcode(in.NN)
	case formXY:
		return info.base | x | y
	case formXYN:
		return info.base | x | y | Opcode(in.N&0xf)
	case formX:
		return info.base | x
	}
	return info.base
}

// String returns the instruction in conventional assembler syntax.
func (in Instruction) String() string {
	x, y := in.X&0xf, in.Y&0xf
	switch in.Op {
	case CLS, RET:
		return in.Op.String()
	case SYS, JP, CALL:
		return fmt.Sprintf("%s $%.3X", in.Op, in.NNN)
	case SEB:
		return fmt.Sprintf("SE V%X, $%.2X", x, in.NN)
	case SNEB:
		return fmt.Sprintf("SNE V%X, $%.2X", x, in.NN)
	case LDB:
		return fmt.Sprintf("LD V%X, $%.2X", x, in.NN)
	case ADDB:
		return fmt.Sprintf("ADD V%X, $%.2X", x, in.NN)
	case RND:
		return fmt.Sprintf("RND V%X, $%.2X", x, in.NN)
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SUBN:
		return fmt.Sprintf("%s V%X, V%X", in.Op, x, y)
	case SHR, SHL:
		return fmt.Sprintf("%s V%X", in.Op, x)
	case LDI:
		return fmt.Sprintf("LD I, $%.3X", in.NNN)
	case JPV:
		return fmt.Sprintf("JP V0, $%.3X", in.NNN)
	case DRW:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, in.N&0xf)
	case SKP, SKNP:
		return fmt.Sprintf("%s V%X", in.Op, x)
	case LDVDT:
		return fmt.Sprintf("LD V%X, DT", x)
	case LDK:
		return fmt.Sprintf("LD V%X, K", x)
	case LDDT:
		return fmt.Sprintf("LD DT, V%X", x)
	case LDST:
		return fmt.Sprintf("LD ST, V%X", x)
	case ADDI:
		return fmt.Sprintf("ADD I, V%X", x)
	case LDF:
		return fmt.Sprintf("LD F, V%X", x)
	case BCD:
		return fmt.Sprintf("LD B, V%X", x)
	case STR:
		return fmt.Sprintf("LD [I], V%X", x)
	case LDR:
		return fmt.Sprintf("LD V%X, [I]", x)
	}
	return in.Op.String()
}
