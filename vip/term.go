package vip

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/ch8/chip8"
)

// Terminal is a Frontend that draws into a terminal using half-block
// characters, two pixels per cell.
type Terminal struct {
	fg, bg tcell.Color
	keymap map[rune]chip8.Key
	hold   time.Duration
}

// NewTerminal returns a Terminal configured by cfg.
func NewTerminal(cfg Config) (*Terminal, error) {
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}
	hold := time.Duration(cfg.KeyHoldMS) * time.Millisecond
	if hold <= 0 {
		hold = 100 * time.Millisecond
	}
	return &Terminal{
		fg:     tcellColor(cfg.Foreground),
		bg:     tcellColor(cfg.Background),
		keymap: km,
		hold:   hold,
	}, nil
}

func tcellColor(c Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) Run(r *Runner, exit <-chan bool) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.Clear()

	var (
		events = make(chan tcell.Event)
		quit   = make(chan bool)
	)
	defer close(quit)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	// Terminals only report key repeats, never releases, so a key is
	// released once it has not been seen for t.hold.
	held := map[chip8.Key]time.Time{}
	release := time.NewTicker(t.hold / 4)
	defer release.Stop()

	sounding := false
	for {
		select {
		case <-exit:
			return nil
		case f := <-r.Frames():
			t.draw(s, f)
			if f.Sound && !sounding {
				s.Beep()
			}
			sounding = f.Sound
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					k, ok := t.keymap[unicode.ToLower(ev.Rune())]
					if !ok {
						break
					}
					if _, down := held[k]; !down {
						r.Key(k, true)
					}
					held[k] = time.Now()
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case now := <-release.C:
			for k, at := range held {
				if now.Sub(at) >= t.hold {
					r.Key(k, false)
					delete(held, k)
				}
			}
		}
	}
}

func (t *Terminal) draw(s tcell.Screen, f Frame) {
	for y := 0; y < chip8.Height/2; y++ {
		for x := 0; x < chip8.Width; x++ {
			top := f.Pixels[x+chip8.Width*2*y]
			bot := f.Pixels[x+chip8.Width*(2*y+1)]
			st := tcell.StyleDefault.
				Foreground(t.pick(top)).
				Background(t.pick(bot))
			s.SetContent(x, y, '▀', nil, st)
		}
	}
	s.Show()
}

func (t *Terminal) pick(on bool) tcell.Color {
	if on {
		return t.fg
	}
	return t.bg
}
