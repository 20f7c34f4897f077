package chip8

// Timer is a countdown counter decremented once per frame.
type Timer byte

func (t *Timer) Set(v byte) { *t = Timer(v) }
func (t Timer) Get() byte   { return byte(t) }

// Decrease counts down by one, stopping at zero.
func (t *Timer) Decrease() {
	if *t > 0 {
		*t--
	}
}
