package chip8

import (
	"errors"
	"fmt"
	"strings"
)

// StackCapacity is the number of return addresses the stack can hold.
const StackCapacity = 16

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack holds subroutine return addresses.
type Stack struct {
	Addrs [StackCapacity]uint16
	Ptr   int
}

// Push stores addr on top of the stack.
func (s *Stack) Push(addr uint16) error {
	if s.Ptr >= len(s.Addrs) {
		return ErrStackOverflow
	}
	s.Addrs[s.Ptr] = addr
	s.Ptr++
	return nil
}

// Pop removes and returns the address on top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.Ptr == 0 {
		return 0, ErrStackUnderflow
	}
	s.Ptr--
	return s.Addrs[s.Ptr], nil
}

// Len reports the number of addresses on the stack.
func (s *Stack) Len() int { return s.Ptr }

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, v := range s.Addrs[:s.Ptr] {
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%.3x", v)
	}
	b.WriteByte(' ')
	b.WriteByte(')')
	return b.String()
}
