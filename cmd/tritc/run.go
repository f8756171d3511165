package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/raymyers/tritc/pkg/assembler"
	"github.com/raymyers/tritc/pkg/cpu"
	"github.com/raymyers/tritc/pkg/gpu"
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/symtab"
)

// dumpSymbols prints the identifier to register bindings (-dsym flag)
func dumpSymbols(out io.Writer, entries []symtab.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Symbols")
	t.AppendHeader(table.Row{"Name", "Reg", "Pointer"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Reg, e.IsPointer})
	}
	t.AppendFooter(table.Row{"", "Total", len(entries)})
	t.Render()
}

// doRun assembles the freshly written output, executes it and saves the
// final frame (--run flag)
func doRun(profile *machine.Profile, log *slog.Logger, out, errOut io.Writer) error {
	f, err := os.Open(outputFile)
	if err != nil {
		fmt.Fprintf(errOut, "tritc: error reading %s: %v\n", outputFile, err)
		return err
	}
	prog, err := assembler.New(profile.Layout).Assemble(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(errOut, "tritc: assembling %s: %v\n", outputFile, err)
		return err
	}

	vm := cpu.New(profile.Layout, cpu.Options{Logger: log})
	if err := vm.Load(prog); err != nil {
		fmt.Fprintf(errOut, "tritc: %v\n", err)
		return err
	}
	steps, err := vm.Run(maxSteps)
	switch {
	case errors.Is(err, cpu.ErrStepLimit):
		log.Warn("emulator stopped at step limit", "steps", steps)
	case err != nil:
		fmt.Fprintf(errOut, "tritc: runtime error: %v\n", err)
		return err
	default:
		log.Info("emulator halted", "steps", steps, "pc", vm.PC())
	}

	if dRegs {
		vm.Dump(out)
	}

	if err := gpu.SaveFrame(frameFile, vm.VRAM(), frameScale); err != nil {
		fmt.Fprintf(errOut, "tritc: %v\n", err)
		return err
	}
	log.Info("frame written", "file", frameFile, "scale", frameScale)
	return nil
}
