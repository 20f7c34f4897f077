package chip8

import "fmt"

// Line is one disassembled instruction or data word.
type Line struct {
	Addr  uint16
	Op    Opcode
	Size  int    // 2 for opcodes, 1 for a trailing odd byte
	Text  string // assembler syntax
	Desc  string
	ASCII string // raw bytes as text, if they are printable
}

// Disassemble decodes rom as if it were loaded at origin. Words that do not
// decode are emitted as DW, and a trailing odd byte as DB.
func Disassemble(rom []byte, origin uint16) []Line {
	var lines []Line
	for i := 0; i < len(rom); i += 2 {
		addr := origin + uint16(i)
		if i+1 == len(rom) {
			lines = append(lines, Line{
				Addr:  addr,
				Op:    Opcode(rom[i]),
				Size:  1,
				Text:  fmt.Sprintf("DB $%.2X", rom[i]),
				Desc:  "Raw data.",
				ASCII: printable(rom[i : i+1]),
			})
			break
		}
		op := Opcode(rom[i])<<8 | Opcode(rom[i+1])
		l := Line{Addr: addr, Op: op, Size: 2, ASCII: printable(rom[i : i+2])}
		if in, err := Decode(op); err != nil {
			l.Text = fmt.Sprintf("DW $%.4X", uint16(op))
			l.Desc = "Raw data."
		} else {
			l.Text = in.String()
			l.Desc = in.Op.Description()
		}
		lines = append(lines, l)
	}
	return lines
}

func printable(b []byte) string {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return ""
		}
	}
	return string(b)
}
