package chip8

import (
	"fmt"
	"testing"
)

// Every opcode either decodes to an instruction that encodes back to the
// same opcode, or fails with a DecodeFault naming it.
func TestDecodeTotal(t *testing.T) {
	valid := 0
	for i := 0; i <= 0xffff; i++ {
		o := Opcode(i)
		in, err := Decode(o)
		if err != nil {
			if err != (DecodeFault{Opcode: o}) {
				t.Fatalf("Decode(%v) returned error %v, want DecodeFault", o, err)
			}
			continue
		}
		valid++
		if g := in.Encode(); g != o {
			t.Fatalf("Decode(%v).Encode() = %v (%v)", o, g, in)
		}
	}
	// 0, 1, 2, 3, 4, 6, 7, A, B, C, D are fully populated; 5 and 9 one in
	// sixteen; 8 nine in sixteen; E two and F nine of every 256.
	want := 11*0x1000 + 2*0x100 + 9*0x100 + 16*2 + 16*9
	if valid != want {
		t.Errorf("%d opcodes decoded, want %d", valid, want)
	}
}

func TestDecode(t *testing.T) {
	for _, c := range []struct {
		op   Opcode
		want Instruction
		str  string
	}{
		{0x00e0, Instruction{Op: CLS}, "CLS"},
		{0x00ee, Instruction{Op: RET}, "RET"},
		{0x0123, Instruction{Op: SYS, NNN: 0x123}, "SYS $123"},
		{0x1abc, Instruction{Op: JP, NNN: 0xabc}, "JP $ABC"},
		{0x2abc, Instruction{Op: CALL, NNN: 0xabc}, "CALL $ABC"},
		{0x3a12, Instruction{Op: SEB, X: 0xa, NN: 0x12}, "SE VA, $12"},
		{0x4a12, Instruction{Op: SNEB, X: 0xa, NN: 0x12}, "SNE VA, $12"},
		{0x5ab0, Instruction{Op: SE, X: 0xa, Y: 0xb}, "SE VA, VB"},
		{0x6102, Instruction{Op: LDB, X: 1, NN: 2}, "LD V1, $02"},
		{0x7101, Instruction{Op: ADDB, X: 1, NN: 1}, "ADD V1, $01"},
		{0x8210, Instruction{Op: LD, X: 2, Y: 1}, "LD V2, V1"},
		{0x8211, Instruction{Op: OR, X: 2, Y: 1}, "OR V2, V1"},
		{0x8212, Instruction{Op: AND, X: 2, Y: 1}, "AND V2, V1"},
		{0x8213, Instruction{Op: XOR, X: 2, Y: 1}, "XOR V2, V1"},
		{0x8214, Instruction{Op: ADD, X: 2, Y: 1}, "ADD V2, V1"},
		{0x8215, Instruction{Op: SUB, X: 2, Y: 1}, "SUB V2, V1"},
		{0x8216, Instruction{Op: SHR, X: 2, Y: 1}, "SHR V2"},
		{0x8217, Instruction{Op: SUBN, X: 2, Y: 1}, "SUBN V2, V1"},
		{0x821e, Instruction{Op: SHL, X: 2, Y: 1}, "SHL V2"},
		{0x9120, Instruction{Op: SNE, X: 1, Y: 2}, "SNE V1, V2"},
		{0xa123, Instruction{Op: LDI, NNN: 0x123}, "LD I, $123"},
		{0xb123, Instruction{Op: JPV, NNN: 0x123}, "JP V0, $123"},
		{0xc10f, Instruction{Op: RND, X: 1, NN: 0x0f}, "RND V1, $0F"},
		{0xd125, Instruction{Op: DRW, X: 1, Y: 2, N: 5}, "DRW V1, V2, 5"},
		{0xe19e, Instruction{Op: SKP, X: 1}, "SKP V1"},
		{0xe1a1, Instruction{Op: SKNP, X: 1}, "SKNP V1"},
		{0xf107, Instruction{Op: LDVDT, X: 1}, "LD V1, DT"},
		{0xf10a, Instruction{Op: LDK, X: 1}, "LD V1, K"},
		{0xf115, Instruction{Op: LDDT, X: 1}, "LD DT, V1"},
		{0xf118, Instruction{Op: LDST, X: 1}, "LD ST, V1"},
		{0xf11e, Instruction{Op: ADDI, X: 1}, "ADD I, V1"},
		{0xf129, Instruction{Op: LDF, X: 1}, "LD F, V1"},
		{0xf133, Instruction{Op: BCD, X: 1}, "LD B, V1"},
		{0xf155, Instruction{Op: STR, X: 1}, "LD [I], V1"},
		{0xf165, Instruction{Op: LDR, X: 1}, "LD V1, [I]"},
	} {
		t.Run(c.op.String(), func(t *testing.T) {
			in, err := Decode(c.op)
			if err != nil {
				t.Fatal(err)
			}
			if in != c.want {
				t.Errorf("Decode returned %+v, want %+v", in, c.want)
			}
			if g := in.String(); g != c.str {
				t.Errorf("String() = %q, want %q", g, c.str)
			}
		})
	}
}

func TestDecodeFault(t *testing.T) {
	for _, o := range []Opcode{
		0x5121, 0x512f, 0x9121, 0x912f,
		0x8128, 0x8129, 0x812a, 0x812b, 0x812c, 0x812d, 0x812f,
		0xe100, 0xe19f, 0xe1a0, 0xe1ff,
		0xf100, 0xf108, 0xf10b, 0xf130, 0xf156, 0xf166, 0xf1ff,
	} {
		t.Run(o.String(), func(t *testing.T) {
			_, err := Decode(o)
			if err != (DecodeFault{Opcode: o}) {
				t.Errorf("Decode returned %v, want DecodeFault", err)
			}
		})
	}
}

func TestOpString(t *testing.T) {
	if len(opStrings) != int(numOps) {
		t.Fatalf("%d op strings for %d ops", len(opStrings), int(numOps))
	}
	for o := Op(0); o < numOps; o++ {
		if o.Description() == "" {
			t.Errorf("%v has no description", o)
		}
	}
	if g, w := Op(numOps).String(), fmt.Sprintf("Op(%d)", int(numOps)); g != w {
		t.Errorf("out of range op is %q, want %q", g, w)
	}
}
