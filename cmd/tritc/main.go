package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"

	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/stmt"
	"github.com/raymyers/tritc/pkg/symtab"
	"github.com/raymyers/tritc/pkg/translate"
)

var version = "0.1.0"

// Output options
var (
	outputFile string
	profileRef string
	header     bool
	verbose    int
)

// Debug flags for dumping translator state
var (
	dSym   bool
	dStmt  bool
	dRegs  bool
	lsProf bool
)

// Emulator options
var (
	runProgram bool
	maxSteps   int
	frameFile  string
	frameScale int
)

// atexit.Exit runs the registered handlers, closing any open streams.
func main() {
	atexit.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

func run(out, errOut io.Writer, args []string) int {
	rootCmd := newRootCmd(out, errOut)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, symtab.ErrRegisterExhausted) {
			fmt.Fprintf(errOut, "tritc: fatal: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tritc [file]",
		Short: "tritc translates Trit-C into VOID-3 assembly",
		Long: `tritc is a line-oriented translator from Trit-C, a tiny C-like
language, to VASM, the assembly of the VOID-3 balanced-ternary machine.
Each source line is classified on its own and lowered to a fixed
instruction template; lines that match no known shape are ignored.

The input defaults to $TRITC_INPUT or main.tc, the output to
$TRITC_OUTPUT or main.vasm.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lsProf {
				for _, name := range machine.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			input := env.Str("TRITC_INPUT", translate.DefaultInput)
			if len(args) > 0 {
				input = args[0]
			}

			profile, err := machine.Resolve(profileRef)
			if err != nil {
				fmt.Fprintf(errOut, "tritc: %v\n", err)
				return err
			}
			return doTranslate(input, profile, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", env.Str("TRITC_OUTPUT", translate.DefaultOutput), "Write VASM to `file`")
	rootCmd.Flags().StringVar(&profileRef, "profile", env.Str("TRITC_PROFILE", machine.DefaultProfileName), "Target profile: a builtin name or a YAML file")
	rootCmd.Flags().BoolVar(&header, "header", true, "Write the compiler banner before the first instruction")
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "Log progress to stderr (repeat for per-line tracing)")
	rootCmd.Flags().BoolVar(&lsProf, "profiles", false, "List builtin profiles and exit")

	rootCmd.Flags().BoolVar(&dSym, "dsym", false, "Dump the symbol table after translation")
	rootCmd.Flags().BoolVar(&dStmt, "dstmt", false, "Dump every recognized statement")
	rootCmd.Flags().BoolVar(&dRegs, "dregs", false, "Dump the register file after --run")

	rootCmd.Flags().BoolVar(&runProgram, "run", false, "Assemble the output and execute it on the emulator")
	rootCmd.Flags().IntVar(&maxSteps, "steps", env.Int("TRITC_STEPS", 100000), "Stop the emulator after this many instructions (0 for no limit)")
	rootCmd.Flags().StringVar(&frameFile, "frame", "frame.png", "Write the final frame buffer to this PNG `file`")
	rootCmd.Flags().IntVar(&frameScale, "scale", 1, "Upscale the frame by this factor")

	verbose = env.Int("TRITC_VERBOSE", 0)

	return rootCmd
}

// newLogger builds the diagnostic logger for the current verbosity.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose >= 2:
		level = translate.LevelTrace
	case verbose == 1:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// doTranslate runs the translator over input and writes outputFile.
func doTranslate(input string, profile *machine.Profile, out, errOut io.Writer) error {
	log := newLogger(errOut)

	streams, err := translate.Open(input, outputFile)
	if err != nil {
		fmt.Fprintf(errOut, "tritc: %v\n", err)
		return err
	}
	atexit.Register(func() { streams.Close() })
	defer streams.Close()

	opts := translate.Options{Header: header, Logger: log}
	if dStmt {
		opts.OnStatement = func(line int, s stmt.Stmt) {
			fmt.Fprintf(out, "%d: %-14s %s\n", line, s.Kind(), s)
		}
	}
	tr := translate.New(profile, opts)

	stats, err := tr.Run(streams.Source(), streams.Sink())
	if dSym {
		dumpSymbols(out, tr.Context().Symbols.Entries())
	}
	if err != nil {
		if !errors.Is(err, symtab.ErrRegisterExhausted) {
			fmt.Fprintf(errOut, "tritc: %v\n", err)
		}
		return err
	}
	if err := streams.Close(); err != nil {
		fmt.Fprintf(errOut, "tritc: error writing %s: %v\n", outputFile, err)
		return err
	}

	log.Info("translated", "input", input, "output", outputFile, "profile", profile.Name,
		"lines", stats.Lines, "statements", stats.Statements, "instructions", stats.Instructions)

	if runProgram {
		return doRun(profile, log, out, errOut)
	}
	return nil
}
