// cmd/garnish-bench/main.go runs many independent VM/Store pairs
// concurrently to demonstrate that the core holds no shared mutable
// state across instances (spec §5: "a single Data Store is the unique
// owner of all values... the VM never shares mutable state with the
// host other than through the Context interface"). The core itself
// never runs concurrently with itself (no goroutines inside gvm/gops/
// gheap); this harness only proves many *independent* runs are safe to
// drive from separate goroutines.
//
// Grounded on the teacher's own go.mod dependency golang.org/x/sync
// (errgroup); cmd/sentra has no direct equivalent fan-out harness, so
// this adapts the library's standard "bounded group of workers, first
// error wins" idiom rather than any specific teacher file.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"garnish/internal/gcontext"
	"garnish/internal/gvm"
	"garnish/internal/seed"
)

func main() {
	runs := 1000
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "usage: garnish-bench [run-count]")
			os.Exit(1)
		}
		runs = n
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(8)

	for i := 0; i < runs; i++ {
		name := seed.Names[i%len(seed.Names)]
		g.Go(func() error {
			prog, ok := seed.Build(name)
			if !ok {
				return fmt.Errorf("unknown seed %q", name)
			}
			vm := gvm.New(prog.Store, gcontext.NoopContext{})
			vm.Start()
			prog.Store.SetInstructionCursor(prog.Entry)
			return vm.Run()
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "garnish-bench: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	rate := float64(runs) / elapsed.Seconds()
	fmt.Printf("%s runs in %s (%s runs/sec)\n",
		humanize.Comma(int64(runs)), elapsed, humanize.Comma(int64(rate)))
}
