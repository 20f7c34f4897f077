package chip8

import (
	"fmt"
	"strings"
)

// Flag is the index of the register that receives carry, borrow, shifted-out
// bits and sprite collisions. It is also an ordinary register.
const Flag = 0xf

// Registers holds V0 through VF.
type Registers [16]byte

// Load sets Vx to v.
func (r *Registers) Load(x, v byte) { r[x&0xf] = v }

// AddImmediate adds k to Vx. The flag register is not touched.
func (r *Registers) AddImmediate(x, k byte) { r[x&0xf] += k }

// AddChecked adds Vy to Vx and sets VF to 1 on carry, 0 otherwise.
func (r *Registers) AddChecked(x, y byte) {
	sum := uint16(r[x&0xf]) + uint16(r[y&0xf])
	r[x&0xf] = byte(sum)
	r.setFlag(sum > 0xff)
}

// Sub subtracts Vy from Vx and sets VF to 1 if there was no borrow.
func (r *Registers) Sub(x, y byte) {
	vx, vy := r[x&0xf], r[y&0xf]
	r[x&0xf] = vx - vy
	r.setFlag(vx >= vy)
}

// SubN sets Vx to Vy minus Vx and sets VF to 1 if there was no borrow.
func (r *Registers) SubN(x, y byte) {
	vx, vy := r[x&0xf], r[y&0xf]
	r[x&0xf] = vy - vx
	r.setFlag(vy >= vx)
}

func (r *Registers) And(x, y byte) { r[x&0xf] &= r[y&0xf] }
func (r *Registers) Or(x, y byte)  { r[x&0xf] |= r[y&0xf] }
func (r *Registers) Xor(x, y byte) { r[x&0xf] ^= r[y&0xf] }

// ShiftRight shifts Vx right by one, moving the old low bit into VF.
func (r *Registers) ShiftRight(x byte) {
	v := r[x&0xf]
	r[x&0xf] = v >> 1
	r[Flag] = v & 0x01
}

// ShiftLeft shifts Vx left by one, moving the old high bit into VF.
func (r *Registers) ShiftLeft(x byte) {
	v := r[x&0xf]
	r[x&0xf] = v << 1
	r[Flag] = v >> 7
}

func (r *Registers) setFlag(b bool) {
	if b {
		r[Flag] = 1
	} else {
		r[Flag] = 0
	}
}

func (r Registers) String() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2x", v)
	}
	return b.String()
}
