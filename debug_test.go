package main

import (
	"strings"
	"testing"

	"github.com/nf/ch8/chip8"
	"github.com/nf/ch8/vip"
)

func TestStateMsg(t *testing.T) {
	syms, err := parseSymbols(strings.NewReader("0200 main\n0210 draw\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := chip8.NewMachine()
	m.Load([]byte{0x22, 0x10}) // CALL $210
	m.V[1] = 0xab
	m.I = 0x123
	m.Stack.Push(0x2fe)

	msg := stateMsg(syms, m, vip.BreakState)
	lines := strings.Split(msg, "\n")
	for _, want := range []string{"200", "CALL $210", "[break]", "main (200) -> draw (210)"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line %q does not contain %q", lines[0], want)
		}
	}
	if !strings.HasPrefix(lines[1], "v: 00 ab 00") {
		t.Errorf("register line is %q", lines[1])
	}
	if !strings.Contains(lines[2], "i: 123") || !strings.Contains(lines[2], "( 2fe )") {
		t.Errorf("index line is %q", lines[2])
	}

	m.Load([]byte{0xff, 0xff})
	if msg := stateMsg(nil, m, vip.HaltState); !strings.Contains(msg, "DW $ffff") || !strings.Contains(msg, "[HALT!]") {
		t.Errorf("halt state is %q", msg)
	}
}
