// Command ch8 executes CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/nf/ch8/chip8"
	"github.com/nf/ch8/vip"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

func main() {
	log.SetPrefix("ch8: ")
	log.SetFlags(0)

	var (
		cliFlag    = flag.Bool("cli", false, "run in the terminal instead of a window")
		devFlag    = flag.Bool("dev", false, "enable developer mode (live re-build and run an octo program)")
		debugFlag  = flag.Bool("debug", false, "enable debugger (implies -dev)")
		configFlag = flag.String("config", "", "read settings from TOML `file`")
		disasmFlag = flag.Bool("disasm", false, "print a disassembly of the program and exit")
		verFlag    = flag.Bool("version", false, "print the version and exit")
		ticksFlag  = flag.Int("ticks", 0, "instructions per frame (overrides config)")
		scaleFlag  = flag.Int("scale", 0, "window pixels per CHIP-8 pixel (overrides config)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-config file] <program.ch8 | program.8o>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-cli] <-dev | -debug> <program.8o>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -disasm <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if *verFlag {
		fmt.Printf("ch8 version: %s\n", buildinfo.Version(version, commit, date))
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
	}

	cfg := vip.DefaultConfig()
	if f := *configFlag; f != "" {
		var err error
		if cfg, err = vip.LoadConfig(f); err != nil {
			log.Fatal(err)
		}
	}
	if *ticksFlag > 0 {
		cfg.TicksPerFrame = *ticksFlag
	}
	if *scaleFlag > 0 {
		cfg.Scale = *scaleFlag
	}

	if *disasmFlag {
		if err := disasm(os.Stdout, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *devFlag || *debugFlag {
		if err := devMode(cfg, !*cliFlag, *debugFlag, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(cfg, flag.Arg(0), !*cliFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg vip.Config, romFile string, guiEnabled bool) error {
	rom, err := readProgram(romFile)
	if err != nil {
		return err
	}
	f, err := frontend(cfg, guiEnabled)
	if err != nil {
		return err
	}
	return vip.NewRunner(cfg, false, nil).Run(rom, f)
}

func frontend(cfg vip.Config, guiEnabled bool) (vip.Frontend, error) {
	if guiEnabled {
		return vip.NewWindow(cfg)
	}
	return vip.NewTerminal(cfg)
}

// readProgram reads a ROM, assembling it first if it is an octo source file.
func readProgram(file string) ([]byte, error) {
	if filepath.Ext(file) != ".8o" {
		return os.ReadFile(file)
	}
	tmp, err := os.MkdirTemp("", "ch8-build-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)
	return build(os.Stderr, file, filepath.Join(tmp, filepath.Base(file)+".ch8"))
}

// build assembles srcFile into romFile with octo and returns the ROM.
func build(out io.Writer, srcFile, romFile string) ([]byte, error) {
	cmd := exec.Command("octo", srcFile, romFile)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("octo: %v", err)
	}
	return os.ReadFile(romFile)
}

func disasm(w io.Writer, file string) error {
	rom, err := readProgram(file)
	if err != nil {
		return err
	}
	syms, err := readSymbols(file + ".sym")
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 8, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "addr\topcode\tinstruction\tascii\tdescription")
	for _, l := range chip8.Disassemble(rom, chip8.ProgramStart) {
		for _, s := range syms.forAddr(l.Addr) {
			fmt.Fprintf(tw, "%s:\n", s.label)
		}
		op := fmt.Sprintf("%.4X", uint16(l.Op))
		if l.Size == 1 {
			op = fmt.Sprintf("%.2X", uint16(l.Op))
		}
		ascii := ""
		if l.ASCII != "" {
			ascii = "`" + l.ASCII + "`"
		}
		fmt.Fprintf(tw, "%.4X\t%s\t%s\t%s\t%s\n", l.Addr, op, l.Text, ascii, l.Desc)
	}
	return tw.Flush()
}
