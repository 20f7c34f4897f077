package vip

import (
	"image"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/ch8/chip8"
)

// Window is a Frontend that opens a desktop window.
type Window struct {
	cfg    Config
	keymap map[rune]chip8.Key
}

// NewWindow returns a Window configured by cfg.
func NewWindow(cfg Config) (*Window, error) {
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}
	return &Window{cfg: cfg, keymap: km}, nil
}

func (g *Window) Run(r *Runner, exit <-chan bool) (err error) {
	driver.Main(func(s screen.Screen) {
		err = g.run(s, r, exit)
	})
	return err
}

func (g *Window) run(s screen.Screen, r *Runner, exit <-chan bool) error {
	scale := g.cfg.Scale
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Title:  "ch8",
		Width:  chip8.Width * scale,
		Height: chip8.Height * scale,
	})
	if err != nil {
		return err
	}
	defer w.Release()

	dim := image.Point{chip8.Width, chip8.Height}
	buf, err := s.NewBuffer(dim)
	if err != nil {
		return err
	}
	defer buf.Release()
	tex, err := s.NewTexture(dim)
	if err != nil {
		return err
	}
	defer tex.Release()

	type update struct{}
	go func() {
		t := time.NewTicker(time.Second / 60)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(update{})
			case <-exit:
				w.Send(update{})
				return
			}
		}
	}()

	var (
		sz    size.Event
		frame Frame
		dirty = true
	)
	for {
		e := w.NextEvent()

		select {
		case <-exit:
			return nil
		default:
		}

		switch e := e.(type) {
		case size.Event:
			sz = e
			if sz.WidthPx+sz.HeightPx == 0 {
				return nil
			}
			dirty = true

		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case key.Event:
			if e.Code == key.CodeEscape {
				return nil
			}
			k, ok := g.keymap[unicode.ToLower(e.Rune)]
			if !ok {
				break
			}
			switch e.Direction {
			case key.DirPress:
				r.Key(k, true)
			case key.DirRelease:
				r.Key(k, false)
			}

		case paint.Event:
			dirty = true

		case update:
			select {
			case frame = <-r.Frames():
				dirty = true
			default:
				// no new frame
			}
			if dirty && sz.WidthPx > 0 {
				frame.Draw(buf.RGBA(), g.cfg.Foreground, g.cfg.Background)
				tex.Upload(image.Point{}, buf, buf.Bounds())
				w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
				w.Publish()
				dirty = false
			}

		case error:
			log.Print(e)
		}
	}
}
