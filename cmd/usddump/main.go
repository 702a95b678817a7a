// usddump is a diagnostic CLI: decode a Crate or ASCII scene-description
// file and print its reconstructed typed prim tree. It exists as a thin
// smoke-test driver over usdcore.Decode, not as part of the module's
// public API surface.
//
// Usage:
//
//	usddump [-max-memory bytes] [-workers n] [-base-dir dir] <file>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/prim"
	"github.com/sacereda/tinyusdz/usdcore"
)

func main() {
	lim := limits.Default()

	maxMemory := flag.Int64("max-memory", lim.MaxMemoryBudget, "§5 memory budget in bytes")
	workers := flag.Int("workers", lim.NumThreads, "worker count for parallel fanout (-1 = detect hardware, 0 = disable)")
	baseDir := flag.String("base-dir", "", "base directory hint for relative asset paths (informational only; this module does not resolve references)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: usddump [-max-memory bytes] [-workers n] [-base-dir dir] <file>")
		os.Exit(1)
	}

	lim.MaxMemoryBudget = *maxMemory
	lim.NumThreads = *workers

	path := flag.Arg(0)
	buf, err := os.ReadFile(path)
	if err != nil {
		fatal("read %s: %v", path, err)
	}

	if *baseDir != "" {
		fmt.Fprintf(os.Stderr, "usddump: base-dir %q noted but not resolved (no composition engine in this build)\n", *baseDir)
	}

	res, err := usdcore.DecodeWithLimits(buf, lim)
	if err != nil {
		fatal("decode %s: %v", path, err)
	}

	for _, w := range res.Diagnostics.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	for _, e := range res.Diagnostics.Errors {
		fmt.Fprintf(os.Stderr, "error: %v\n", e)
	}

	for _, p := range res.Prims {
		printPrim(p, 0)
	}
}

func printPrim(p prim.Typed, depth int) {
	b := p.AsBase()
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s %s (%T)\n", indent, b.Path, b.PrimType, p)
	for name := range b.Residual {
		fmt.Printf("%s  residual: %s\n", indent, name)
	}
	for _, c := range b.Children {
		printPrim(c, depth+1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "usddump: "+format+"\n", args...)
	os.Exit(1)
}
