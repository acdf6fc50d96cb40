// cmd/garnish/tracer.go
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"garnish/internal/gheap"
	"garnish/internal/gvm"
)

// tracer prints a step-by-step trace of a running VM (opcode, cursor,
// register depth, current register-stack top). Grounded on the
// teacher's internal/debugger_cli color-gating pattern: ANSI codes only
// when stdout is an actual terminal, per github.com/mattn/go-isatty
// (the teacher's own go.mod dependency; used the same way by pack
// sibling funvibe-funxy's internal/evaluator/builtins_term.go).
type tracer struct {
	enabled bool
	color   bool
	steps   uint64
}

func newTracer(enabled bool) *tracer {
	return &tracer{
		enabled: enabled,
		color:   enabled && isatty.IsTerminal(os.Stdout.Fd()),
	}
}

const (
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
	ansiYellow = "\x1b[33m"
)

func (t *tracer) step(cursor int, opcode string, store *gheap.Store, vm *gvm.VM) {
	if !t.enabled {
		return
	}
	t.steps++
	current := "()"
	if idx, ok := vm.Result(); ok {
		current = store.Display(idx)
	}
	if t.color {
		fmt.Printf("%s#%-4d%s %s%-20s%s regs=%-3d top=%s\n",
			ansiDim, cursor, ansiReset, ansiYellow, opcode, ansiReset,
			store.GetRegisterLen(), current)
		return
	}
	fmt.Printf("#%-4d %-20s regs=%-3d top=%s\n", cursor, opcode, store.GetRegisterLen(), current)
}

// summary renders a human-readable step/allocation count at the end of a
// traced run (SPEC_FULL.md §11: this is go-humanize's home).
func (t *tracer) summary(store *gheap.Store) string {
	if !t.enabled {
		return ""
	}
	return fmt.Sprintf("%s steps, heap grew to %s values", humanize.Comma(int64(t.steps)), humanize.Comma(int64(store.Len())))
}
