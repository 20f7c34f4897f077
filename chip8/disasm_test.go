package chip8

import "testing"

func TestDisassemble(t *testing.T) {
	lines := Disassemble([]byte{0x61, 0x02, 0x81, 0x28, 0x00, 0xe0, 0x41}, ProgramStart)
	want := []struct {
		addr uint16
		size int
		text string
	}{
		{0x200, 2, "LD V1, $02"},
		{0x202, 2, "DW $8128"},
		{0x204, 2, "CLS"},
		{0x206, 1, "DB $41"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		l := lines[i]
		if l.Addr != w.addr || l.Size != w.size || l.Text != w.text {
			t.Errorf("line %d is %.4x %d %q, want %.4x %d %q", i, l.Addr, l.Size, l.Text, w.addr, w.size, w.text)
		}
		if l.Desc == "" {
			t.Errorf("line %d has no description", i)
		}
	}
	if lines[3].ASCII != "A" {
		t.Errorf("ASCII of 41 is %q, want %q", lines[3].ASCII, "A")
	}
	if lines[0].ASCII != "" {
		t.Errorf("ASCII of unprintable bytes is %q, want empty", lines[0].ASCII)
	}
}
