package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
)

type symbols []symbol

type symbol struct {
	addr  uint16
	label string
}

func (s symbol) String() string { return fmt.Sprintf("%s (%.3x)", s.label, s.addr) }

// readSymbols reads the symbol file symFile. A missing file yields no symbols.
func readSymbols(symFile string) (symbols, error) {
	b, err := os.ReadFile(symFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ss, err := parseSymbols(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %v", symFile, err)
	}
	return ss, nil
}

// parseSymbols reads lines of the form "0202 main", with the address in hex.
// Blank lines and lines starting with # are ignored.
func parseSymbols(r io.Reader) (symbols, error) {
	var (
		ss   symbols
		sc   = bufio.NewScanner(r)
		line = 0
	)
	for sc.Scan() {
		line++
		t := strings.TrimSpace(sc.Text())
		if t == "" || t[0] == '#' {
			continue
		}
		f := strings.Fields(t)
		if len(f) != 2 {
			return nil, fmt.Errorf("line %d: want address and label, got %q", line, t)
		}
		addr, ok := parseAddr(f[0])
		if !ok {
			return nil, fmt.Errorf("line %d: invalid address %q", line, f[0])
		}
		ss = append(ss, symbol{addr: addr, label: f[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].addr < ss[j].addr
	})
	return ss, nil
}

func parseAddr(s string) (uint16, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err == nil
}

func (s symbols) forAddr(addr uint16) (ss []symbol) {
	i := sort.Search(len(s), func(i int) bool { return s[i].addr >= addr })
	for ; i < len(s) && s[i].addr == addr; i++ {
		ss = append(ss, s[i])
	}
	return ss
}

// resolve returns the symbol with the given label,
// or an anonymous symbol if arg is a hex address.
func (s symbols) resolve(arg string) (symbol, bool) {
	for _, sym := range s {
		if sym.label == arg {
			return sym, true
		}
	}
	if addr, ok := parseAddr(arg); ok {
		return symbol{addr: addr, label: fmt.Sprintf("%.3x", addr)}, true
	}
	return symbol{}, false
}

func (s symbols) withLabelPrefix(p string) (ss []symbol) {
	for _, sym := range s {
		if strings.HasPrefix(sym.label, p) {
			ss = append(ss, sym)
		}
	}
	return ss
}
