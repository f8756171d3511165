package translate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/raymyers/tritc/pkg/machine"
)

// Default stream names used when none are given.
const (
	DefaultInput  = "main.tc"
	DefaultOutput = "main.vasm"
)

// ErrResourceUnavailable is returned when an input or output stream cannot
// be acquired. No translation is attempted in that case.
var ErrResourceUnavailable = errors.New("resource unavailable")

// LineReader adapts an io.Reader to Source
type LineReader struct {
	sc *bufio.Scanner
}

// NewLineReader reads lines from r. Lines may be arbitrarily long.
func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 1<<20)
	return &LineReader{sc: sc}
}

// NextLine returns the next line without its terminator, or io.EOF.
func (r *LineReader) NextLine() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// LineWriter adapts an io.Writer to Sink, one line per Emit
type LineWriter struct {
	w io.Writer
}

// NewLineWriter writes each emitted text as its own line to w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Emit writes text followed by a newline
func (w *LineWriter) Emit(text string) error {
	_, err := io.WriteString(w.w, text+"\n")
	return err
}

// Streams holds the input and output files of one run. Close releases both
// exactly once, whichever path ends the run.
type Streams struct {
	in  *os.File
	out *os.File
	buf *bufio.Writer

	once     sync.Once
	closeErr error
}

// Open acquires the input for reading and creates the output for writing.
func Open(inPath, outPath string) (*Streams, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	return &Streams{in: in, out: out, buf: bufio.NewWriter(out)}, nil
}

// Source returns the input as a line source
func (s *Streams) Source() Source {
	return NewLineReader(s.in)
}

// Sink returns the buffered output as a line sink
func (s *Streams) Sink() Sink {
	return NewLineWriter(s.buf)
}

// OutputPath returns the name of the output file
func (s *Streams) OutputPath() string {
	return s.out.Name()
}

// Close flushes the output and closes both files. It is safe to call more
// than once; later calls return the first result.
func (s *Streams) Close() error {
	s.once.Do(func() {
		errFlush := s.buf.Flush()
		errOut := s.out.Close()
		errIn := s.in.Close()
		s.closeErr = errors.Join(errFlush, errOut, errIn)
	})
	return s.closeErr
}

// Files translates inPath into outPath with profile. Both files are closed
// before Files returns, including when translation fails.
func Files(inPath, outPath string, profile *machine.Profile, opts Options) (st Stats, err error) {
	streams, err := Open(inPath, outPath)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := streams.Close(); err == nil {
			err = cerr
		}
	}()
	return New(profile, opts).Run(streams.Source(), streams.Sink())
}
