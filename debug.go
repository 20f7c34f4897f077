package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/ch8/chip8"
	"github.com/nf/ch8/vip"
)

type debugger struct {
	run *vip.Runner
	cfg vip.Config

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	dbg, brk *symbol

	mu      sync.Mutex
	syms    symbols
	watches []watch
}

type watch struct {
	symbol
	word bool
}

func (d *debugger) symbols() symbols {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syms
}

func (d *debugger) setSymbols(s symbols) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.syms = s
}

func newDebugger(cfg vip.Config) *debugger {
	d := &debugger{
		cfg: cfg,
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "b", "break", "d", "debug", "w", "w2", "watch", "watch2":
				for _, s := range d.symbols().withLabelPrefix(arg) {
					entries = append(entries, cmd+" "+s.label)
				}
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugger) command(cmd string) {
	if cmd == "exit" {
		d.app.Stop()
		return
	}
	if cmd, arg, ok := strings.Cut(cmd, " "); ok {
		switch cmd {
		case "b", "break", "d", "debug":
			s, ok := d.symbols().resolve(arg)
			if !ok {
				log.Printf("invalid addr %q", arg)
				return
			}
			d.run.Debug(cmd, s.addr)
			d.mu.Lock()
			switch cmd[0] {
			case 'b':
				d.brk = &s
				log.Printf("set break %.3x", s.addr)
			case 'd':
				d.dbg = &s
				log.Printf("set debug %.3x", s.addr)
			}
			d.mu.Unlock()
			return
		case "w", "w2", "watch", "watch2":
			s, ok := d.symbols().resolve(arg)
			if !ok || int(s.addr) >= chip8.MemSize {
				log.Printf("invalid address %q", arg)
				return
			}
			d.mu.Lock()
			d.watches = append(d.watches,
				watch{symbol: s, word: strings.HasSuffix(cmd, "2")})
			d.mu.Unlock()
			log.Printf("watching %.3x", s.addr)
			return
		case "shot":
			if err := d.shot(arg); err != nil {
				log.Printf("shot: %v", err)
				return
			}
			log.Printf("wrote %s", arg)
			return
		}
	}
	d.run.Debug(cmd, 0)
	d.mu.Lock()
	defer d.mu.Unlock()
	switch cmd {
	case "b", "break":
		d.brk = nil
		log.Print("cleared break")
	case "d", "debug":
		d.dbg = nil
		log.Print("cleared debug")
	}
}

// shot writes the current display to file as a PNG.
func (d *debugger) shot(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	err = vip.WritePNG(f, d.run.LastFrame(), d.cfg.Scale, d.cfg.Foreground, d.cfg.Background)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(m *chip8.Machine, k vip.StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != vip.ClearState && k != vip.QuietState {
		state = stateMsg(d.symbols(), m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case vip.DebugState, vip.ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case vip.BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case vip.PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case vip.HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != vip.QuietState {
			d.state.SetText(state)
		}
	})
}

func stateMsg(syms symbols, m *chip8.Machine, k vip.StateKind) string {
	var (
		text  = "???"
		pcSym string
		sym   string
	)
	if op, err := m.Fetch(m.PC); err == nil {
		if in, err := chip8.Decode(op); err == nil {
			text = in.String()
			switch in.Op {
			case chip8.SYS, chip8.JP, chip8.CALL, chip8.LDI, chip8.JPV:
				if s := syms.forAddr(in.NNN); len(s) > 0 {
					sym = s[0].String()
				}
			}
		} else {
			text = "DW $" + op.String()
		}
	}
	if s := syms.forAddr(m.PC); len(s) > 0 {
		pcSym = s[0].String() + " -> "
	}
	kind := "       "
	switch k {
	case vip.BreakState:
		kind = "[break]"
	case vip.DebugState:
		kind = "[debug]"
	case vip.PauseState:
		kind = "[pause]"
	case vip.HaltState:
		kind = "[HALT!]"
	}
	return fmt.Sprintf("%.3x %-16s %s %s%s\nv: %v\ni: %.3x dt: %.2x st: %.2x stack: %v\n",
		m.PC, text, kind, pcSym, sym, m.V, m.I, m.DT.Get(), m.ST.Get(), m.Stack)
}

func (d *debugger) watchContent(m *chip8.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if s := d.brk; s != nil {
		fmt.Fprintf(&b, "%s [%.3x] brk!\n", s.label, s.addr)
	}
	if s := d.dbg; s != nil {
		fmt.Fprintf(&b, "%s [%.3x] dbg?\n", s.label, s.addr)
	}
	for _, w := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s [%.3x] ", w.label, w.addr)
		if w.word && int(w.addr)+1 < chip8.MemSize {
			fmt.Fprintf(&b, "%.2x%.2x", m.Mem[w.addr], m.Mem[w.addr+1])
		} else {
			fmt.Fprintf(&b, "  %.2x", m.Mem[w.addr])
		}
	}
	return b.String()
}
