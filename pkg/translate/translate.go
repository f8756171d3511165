// Package translate drives a single pass of Trit-C to VASM translation:
// pull a line, classify it, emit its instructions, repeat.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/raymyers/tritc/pkg/classify"
	"github.com/raymyers/tritc/pkg/emit"
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/stmt"
)

// Header is the banner line written before any instruction when
// Options.Header is set.
const Header = "// TRIT-C UNIVERSAL COMPILER OUTPUT"

// LevelTrace is below Debug; per-line tracing is only shown when asked for.
const LevelTrace = slog.LevelDebug - 4

// Source yields raw source lines. NextLine returns io.EOF once exhausted.
type Source interface {
	NextLine() (string, error)
}

// Sink receives emitted text, one instruction or label per call.
type Sink interface {
	Emit(text string) error
}

// Options configures a Translator
type Options struct {
	Header bool         // write the Header banner first
	Logger *slog.Logger // nil discards

	// OnStatement, if set, observes every recognized statement.
	OnStatement func(line int, s stmt.Stmt)
}

// Stats summarizes a run
type Stats struct {
	Lines        int // source lines read
	Statements   int // statements recognized
	Skipped      int // lines that matched no shape
	Instructions int // lines written to the sink, banner excluded
}

// Translator owns the translation context for one run
type Translator struct {
	ctx        *emit.Context
	classifier *classify.Classifier
	opts       Options
	log        *slog.Logger
}

// New creates a Translator targeting profile
func New(profile *machine.Profile, opts Options) *Translator {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Translator{
		ctx:        emit.NewContext(profile),
		classifier: classify.New(profile),
		opts:       opts,
		log:        log,
	}
}

// Context exposes the symbol table and label counter of the run.
func (t *Translator) Context() *emit.Context {
	return t.ctx
}

// Run translates every line of src into dst. Unrecognized lines are
// skipped. Register exhaustion aborts the run; output already written to
// dst is left as is.
func (t *Translator) Run(src Source, dst Sink) (Stats, error) {
	var st Stats
	if t.opts.Header {
		if err := dst.Emit(Header); err != nil {
			return st, err
		}
	}

	for {
		line, err := src.NextLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, fmt.Errorf("reading line %d: %w", st.Lines+1, err)
		}
		st.Lines++

		stmts := t.classifier.Classify(line)
		if len(stmts) == 0 {
			st.Skipped++
			t.log.Log(context.Background(), LevelTrace, "skip", "line", st.Lines, "text", line)
			continue
		}

		for _, s := range stmts {
			st.Statements++
			if t.opts.OnStatement != nil {
				t.opts.OnStatement(st.Lines, s)
			}
			lines, err := emit.Emit(t.ctx, s)
			if err != nil {
				t.log.Error("translation aborted", "line", st.Lines, "stmt", s.String(), "err", err)
				return st, fmt.Errorf("line %d: %w", st.Lines, err)
			}
			for _, l := range lines {
				if err := dst.Emit(l.String()); err != nil {
					return st, err
				}
				st.Instructions++
			}
			t.log.Log(context.Background(), LevelTrace, "emit", "line", st.Lines, "stmt", s.String(), "count", len(lines))
		}
	}

	t.log.Debug("translation complete",
		"lines", st.Lines, "statements", st.Statements,
		"skipped", st.Skipped, "registers", t.ctx.Symbols.Len(),
		"labels", t.ctx.Labels.Peek())
	return st, nil
}
