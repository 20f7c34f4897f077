package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/ch8/vip"
)

// devMode runs srcFile, rebuilding and restarting it whenever it changes.
// If debug is set, an interactive debugger takes over the terminal.
func devMode(cfg vip.Config, gui, debug bool, srcFile string) error {
	srcFile = filepath.Clean(srcFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(srcFile)); err != nil {
		return err
	}

	var (
		sf  vip.StateFunc
		dbg *debugger
	)
	if debug {
		dbg = newDebugger(cfg)
		sf = dbg.StateFunc
	}
	runner := vip.NewRunner(cfg, true, sf)

	var f vip.Frontend = vip.Headless{}
	switch {
	case gui:
		if f, err = vip.NewWindow(cfg); err != nil {
			return err
		}
	case !debug:
		// The debugger owns the terminal when it is enabled.
		if f, err = vip.NewTerminal(cfg); err != nil {
			return err
		}
	}

	if dbg != nil {
		dbg.run = runner
		log.SetPrefix("")
		log.SetOutput(dbg.log)
		go func() {
			if err := dbg.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("ch8: ")
			runner.Debug("exit", 0)
		}()
	}

	var out io.Writer = os.Stderr
	if dbg != nil {
		out = dbg.log
	}
	romCh := make(chan []byte)
	go func() {
		started := false
		rebuild := time.After(1 * time.Millisecond)
		for {
			select {
			case <-rebuild:
				log.Printf("dev: build %s", filepath.Base(srcFile))
				rom, err := devBuild(out, srcFile)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				syms, err := readSymbols(srcFile + ".sym")
				if err != nil {
					log.Printf("dev: reading symbols: %v", err)
				}
				if dbg != nil {
					dbg.setSymbols(syms)
				}
				if !started {
					log.Printf("dev: start")
					romCh <- rom
					started = true
				} else {
					log.Printf("dev: reset")
					if err := runner.Swap(rom); err != nil {
						log.Printf("dev: %v", err)
					}
				}
			case ev := <-watcher.Event:
				if ev.Name == srcFile && !ev.IsAttrib() {
					rebuild = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			}
		}
	}()
	if err := runner.Run(<-romCh, f); err != nil {
		return fmt.Errorf("dev: %v", err)
	}
	return nil
}

// devBuild produces the ROM for srcFile: octo sources are assembled into a
// temporary file, anything else is read as a ROM.
func devBuild(out io.Writer, srcFile string) ([]byte, error) {
	if filepath.Ext(srcFile) != ".8o" {
		return os.ReadFile(srcFile)
	}
	tmp, err := os.MkdirTemp("", "ch8-dev-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)
	romFile := filepath.Join(tmp, filepath.Base(srcFile)+".ch8")
	return build(out, srcFile, romFile)
}
