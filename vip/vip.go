// Package vip implements the host system around a CHIP-8 machine: the frame
// clock, keyboard input, display front ends and developer controls.
package vip

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/nf/ch8/chip8"
)

// StateKind describes why a StateFunc was called.
type StateKind int

const (
	ClearState StateKind = iota // machine (re)started
	BreakState                  // stopped at a breakpoint
	PauseState                  // paused or single stepped
	DebugState                  // passed a debug point
	HaltState                   // halted by a fault
	QuietState                  // end of frame
)

// StateFunc observes the machine. It is called on the goroutine that runs
// the machine, so it may read m but must not retain it.
type StateFunc func(m *chip8.Machine, k StateKind)

// Frame is a snapshot of the machine outputs at the end of a frame.
type Frame struct {
	Pixels [chip8.Width * chip8.Height]bool
	Sound  bool
}

// Snapshot returns the current outputs of m.
func Snapshot(m *chip8.Machine) Frame {
	return Frame{Pixels: m.Screen.Pixels(), Sound: m.Sound()}
}

// Frontend presents frames to the user and feeds key events back to the
// Runner. Run should return when exit is closed or the user quits.
type Frontend interface {
	Run(r *Runner, exit <-chan bool) error
}

// Headless is a Frontend that shows nothing and runs until exit is closed.
type Headless struct{}

func (Headless) Run(r *Runner, exit <-chan bool) error {
	<-exit
	return nil
}

// Runner drives a machine at the configured frame rate.
type Runner struct {
	cfg   Config
	dev   bool
	state StateFunc

	keys     chan keyEvent
	swap     chan []byte
	swapDone chan error
	debug    chan debugCmd
	frames   chan Frame
	done     chan bool

	mu   sync.Mutex
	last Frame
}

type keyEvent struct {
	key  chip8.Key
	down bool
}

type debugCmd struct {
	cmd  string
	addr uint16
}

// NewRunner returns a Runner using cfg. In dev mode faults halt the machine
// instead of ending Run, and Swap and Debug may be used. sf may be nil.
func NewRunner(cfg Config, devMode bool, sf StateFunc) *Runner {
	return &Runner{
		cfg:      cfg,
		dev:      devMode,
		state:    sf,
		keys:     make(chan keyEvent, 16),
		swap:     make(chan []byte),
		swapDone: make(chan error),
		debug:    make(chan debugCmd),
		frames:   make(chan Frame, 1),
		done:     make(chan bool),
	}
}

// Run loads rom and executes it until the front end returns, or until the
// machine faults outside of dev mode, in which case the fault is returned.
func (r *Runner) Run(rom []byte, f Frontend) error {
	m := chip8.NewMachine()
	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.Rand = rand.New(rand.NewSource(seed))
	if err := m.Load(rom); err != nil {
		return err
	}

	var (
		exit    = make(chan bool)
		stop    = make(chan bool)
		execErr = make(chan error, 1)
	)
	go func() {
		err := r.exec(m, rom, stop)
		close(r.done)
		close(exit)
		execErr <- err
	}()
	ferr := f.Run(r, exit)
	close(stop)
	if err := <-execErr; err != nil {
		return err
	}
	return ferr
}

// Frames returns the channel on which the latest frame is published.
// Unread frames are replaced by newer ones.
func (r *Runner) Frames() <-chan Frame { return r.frames }

// LastFrame returns the most recently published frame.
func (r *Runner) LastFrame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Key reports a key press or release.
func (r *Runner) Key(k chip8.Key, down bool) {
	select {
	case r.keys <- keyEvent{k, down}:
	case <-r.done:
	}
}

var ErrStopped = errors.New("runner stopped")

// Swap resets the machine and loads rom in place of the running program.
func (r *Runner) Swap(rom []byte) error {
	if !r.dev {
		panic("Swap called while not running in dev mode")
	}
	select {
	case r.swap <- rom:
		return <-r.swapDone
	case <-r.done:
		return ErrStopped
	}
}

// Debug sends a debugger command to the machine goroutine:
//
//	b, break   set the breakpoint to addr, or clear it if addr is zero
//	d, debug   set the debug point to addr, or clear it if addr is zero
//	c, cont    continue after a break or pause
//	s, step    execute one instruction while paused
//	p, pause   pause execution
//	r, reset   restart the current program
//	exit       stop the machine
func (r *Runner) Debug(cmd string, addr uint16) {
	select {
	case r.debug <- debugCmd{cmd, addr}:
	case <-r.done:
	}
}

// execState is owned by the exec goroutine.
type execState struct {
	m       *chip8.Machine
	rom     []byte
	running bool // false after a fault
	paused  bool
	resume  bool // skip break and debug points for the next instruction
	brk     int  // -1 when unset
	dbg     int
}

func (r *Runner) exec(m *chip8.Machine, rom []byte, stop <-chan bool) error {
	s := &execState{m: m, rom: rom, running: true, brk: -1, dbg: -1}
	r.report(m, ClearState)

	t := time.NewTicker(time.Second / time.Duration(r.cfg.FrameRate))
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case ev := <-r.keys:
			if ev.down {
				m.Press(ev.key)
			} else {
				m.Release(ev.key)
			}
		case rom := <-r.swap:
			s.rom = rom
			r.swapDone <- r.reset(s)
		case c := <-r.debug:
			if c.cmd == "exit" {
				return nil
			}
			r.handleDebug(s, c)
		case <-t.C:
			if s.running && !s.paused {
				if err := r.frame(s); err != nil {
					if !r.dev {
						return err
					}
					log.Printf("chip8: %v", err)
					s.running = false
					r.report(m, HaltState)
				} else if !s.paused {
					r.report(m, QuietState)
				}
			}
			r.publish(Snapshot(m))
		}
	}
}

// frame runs one frame worth of instructions and then ticks the timers.
func (r *Runner) frame(s *execState) error {
	for i := 0; i < r.cfg.TicksPerFrame; i++ {
		if !s.resume {
			pc := int(s.m.PC)
			if pc == s.brk {
				s.paused = true
				r.report(s.m, BreakState)
				return nil
			}
			if pc == s.dbg {
				r.report(s.m, DebugState)
			}
		}
		s.resume = false
		if err := s.m.Tick(); err != nil {
			return err
		}
	}
	s.m.FrameTick()
	return nil
}

func (r *Runner) handleDebug(s *execState, c debugCmd) {
	point := func(p *int) {
		if c.addr == 0 {
			*p = -1
		} else {
			*p = int(c.addr)
		}
	}
	switch c.cmd {
	case "b", "break":
		point(&s.brk)
	case "d", "debug":
		point(&s.dbg)
	case "c", "cont":
		if s.paused {
			s.paused = false
			s.resume = true
			r.report(s.m, ClearState)
		}
	case "s", "step":
		if !s.running {
			log.Print("machine is halted")
			return
		}
		s.paused = true
		if err := s.m.Tick(); err != nil {
			log.Printf("chip8: %v", err)
			s.running = false
			r.report(s.m, HaltState)
			return
		}
		r.report(s.m, PauseState)
	case "p", "pause":
		s.paused = true
		r.report(s.m, PauseState)
	case "r", "reset":
		if err := r.reset(s); err != nil {
			log.Printf("reset: %v", err)
		}
	default:
		log.Printf("unknown command %q", c.cmd)
	}
}

func (r *Runner) reset(s *execState) error {
	s.m.Reset()
	if err := s.m.Load(s.rom); err != nil {
		s.running = false
		r.report(s.m, HaltState)
		return err
	}
	s.running = true
	s.paused = false
	s.resume = false
	r.report(s.m, ClearState)
	return nil
}

func (r *Runner) report(m *chip8.Machine, k StateKind) {
	if r.state != nil {
		r.state(m, k)
	}
}

func (r *Runner) publish(f Frame) {
	r.mu.Lock()
	r.last = f
	r.mu.Unlock()

	// Replace any unread frame; this goroutine is the only sender.
	select {
	case <-r.frames:
	default:
	}
	r.frames <- f
}
