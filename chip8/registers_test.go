package chip8

import "testing"

func TestRegisters(t *testing.T) {
	type want struct{ x, flag byte }
	for _, c := range []struct {
		name   string
		x, y   byte
		flag   byte
		f      func(r *Registers)
		result want
	}{
		{"AddImmediate", 0xff, 0, 9, func(r *Registers) { r.AddImmediate(1, 2) }, want{1, 9}},
		{"AddChecked", 0xff, 2, 0, func(r *Registers) { r.AddChecked(1, 2) }, want{1, 1}},
		{"AddChecked/nocarry", 1, 2, 1, func(r *Registers) { r.AddChecked(1, 2) }, want{3, 0}},
		{"Sub/borrow", 1, 2, 1, func(r *Registers) { r.Sub(1, 2) }, want{255, 0}},
		{"Sub", 12, 11, 0, func(r *Registers) { r.Sub(1, 2) }, want{1, 1}},
		{"SubN", 11, 12, 0, func(r *Registers) { r.SubN(1, 2) }, want{1, 1}},
		{"SubN/borrow", 2, 1, 1, func(r *Registers) { r.SubN(1, 2) }, want{255, 0}},
		{"ShiftLeft", 0b10100101, 0, 0, func(r *Registers) { r.ShiftLeft(1) }, want{0b01001010, 1}},
		{"ShiftRight", 0b10100101, 0, 0, func(r *Registers) { r.ShiftRight(1) }, want{0b01010010, 1}},
		{"And", 0b1100, 0b1010, 5, func(r *Registers) { r.And(1, 2) }, want{0b1000, 5}},
		{"Or", 0b1100, 0b1010, 5, func(r *Registers) { r.Or(1, 2) }, want{0b1110, 5}},
		{"Xor", 0b1100, 0b1010, 5, func(r *Registers) { r.Xor(1, 2) }, want{0b0110, 5}},
	} {
		t.Run(c.name, func(t *testing.T) {
			var r Registers
			r[1], r[2], r[Flag] = c.x, c.y, c.flag
			c.f(&r)
			if g := (want{r[1], r[Flag]}); g != c.result {
				t.Errorf("V1, VF = %d, %d, want %d, %d", g.x, g.flag, c.result.x, c.result.flag)
			}
		})
	}
}

// The flag is written after the result, so it wins when the target is VF.
func TestRegistersFlagTarget(t *testing.T) {
	var r Registers
	r[Flag] = 0x80
	r.AddChecked(Flag, Flag)
	if r[Flag] != 1 {
		t.Errorf("VF = %d, want 1", r[Flag])
	}
}
