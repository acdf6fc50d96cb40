// cmd/garnish/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"garnish/internal/gcontext"
	"garnish/internal/gvm"
	"garnish/internal/inspector"
	"garnish/internal/seed"
)

// commandAliases mirrors the teacher's cmd/sentra short-form convention
// (cmd/sentra/main.go's commandAliases map) scaled down to three of this
// demo CLI's four subcommands (inspect has no alias).
var commandAliases = map[string]string{
	"r": "run",
	"t": "trace",
	"l": "list",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Println("garnish 0.1.0 (core only; no compiler/parser)")
	case "list":
		for _, name := range seed.Names {
			fmt.Println(name)
		}
	case "run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: garnish run <seed-name>")
			os.Exit(1)
		}
		if err := runSeed(args[1], false); err != nil {
			log.Fatalf("garnish: %v", err)
		}
	case "trace":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: garnish trace <seed-name>")
			os.Exit(1)
		}
		if err := runSeed(args[1], true); err != nil {
			log.Fatalf("garnish: %v", err)
		}
	case "inspect":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: garnish inspect <addr> <seed-name>")
			os.Exit(1)
		}
		if err := runInspected(args[1], args[2]); err != nil {
			log.Fatalf("garnish: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`garnish: a host for the Garnish core VM (value model + bytecode engine)

Usage:
  garnish list                    list the built-in seed programs
  garnish run <seed-name>         run a seed program to completion
  garnish trace <seed-name>       run a seed program, printing a step trace
  garnish inspect <addr> <name>   run a seed program, streaming steps over a websocket server

This binary exercises the core (internal/gheap, internal/gops, internal/gvm)
with programs built directly against the Data Store API; it does not parse
or compile source text (spec §1: parsing/compilation are out of scope).`)
}

func runSeed(name string, trace bool) error {
	prog, ok := seed.Build(name)
	if !ok {
		return fmt.Errorf("unknown seed program %q (try: garnish list)", name)
	}
	vm := gvm.New(prog.Store, gcontext.NoopContext{})
	vm.Start()
	prog.Store.SetInstructionCursor(prog.Entry)

	tr := newTracer(trace)
	for vm.State() == gvm.Running {
		instr, err := prog.Store.GetInstruction(prog.Store.GetInstructionCursor())
		if err != nil {
			return err
		}
		cursor := prog.Store.GetInstructionCursor()
		if err := vm.Step(); err != nil {
			return err
		}
		tr.step(cursor, instr.Op.String(), prog.Store, vm)
	}

	if summary := tr.summary(prog.Store); summary != "" {
		fmt.Println(summary)
	}

	resultIdx, ok := vm.Result()
	if !ok {
		fmt.Println("(no result)")
		return nil
	}
	fmt.Printf("%s => %s\n", prog.Name, prog.Store.Display(resultIdx))
	return nil
}

func runInspected(addr, name string) error {
	prog, ok := seed.Build(name)
	if !ok {
		return fmt.Errorf("unknown seed program %q (try: garnish list)", name)
	}
	vm := gvm.New(prog.Store, gcontext.NoopContext{})
	vm.Start()
	prog.Store.SetInstructionCursor(prog.Entry)

	srv := inspector.New()
	go func() {
		log.Printf("garnish inspect: session %s listening on %s", srv.SessionID, addr)
		if err := serveInspector(addr, srv); err != nil {
			log.Printf("garnish inspect: server stopped: %v", err)
		}
	}()

	for vm.State() == gvm.Running {
		instr, err := prog.Store.GetInstruction(prog.Store.GetInstructionCursor())
		if err != nil {
			return err
		}
		if err := inspector.StepAndBroadcast(srv, vm, prog.Store, instr.Op.String()); err != nil {
			return err
		}
	}
	resultIdx, ok := vm.Result()
	if ok {
		fmt.Printf("%s => %s\n", prog.Name, prog.Store.Display(resultIdx))
	}
	return nil
}
