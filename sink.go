package golg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// headerTimeLayout is the timestamp layout of the log header line.
const headerTimeLayout = "2006-01-02 15:04:05.000000"

// logHeader is the first block of every log file.
func logHeader(now time.Time) string {
	return fmt.Sprintf("=== Log initialised at %s ===\n\n", now.Format(headerTimeLayout))
}

// Sink is an append-only text destination for trace records. Writes are
// expected to be durable when WriteString returns: the engine never
// buffers records across events. Sinks are not required to be safe for
// concurrent use; the [Logger] serializes its writes.
type Sink interface {
	WriteString(s string) error
	Close() error
}

// FileSink writes records to a file, truncated on open and flushed after
// every write. The file begins with a header line recording when the log
// was initialised.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

var _ Sink = (*FileSink)(nil)

// NewFileSink opens path for writing, truncating any previous contents,
// and writes the log header.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fs := &FileSink{
		f: f,
		w: bufio.NewWriter(f),
	}

	if err := fs.WriteString(logHeader(time.Now())); err != nil {
		f.Close()
		return nil, fmt.Errorf("initialise log file: %w", err)
	}

	return fs, nil
}

// WriteString appends s and flushes.
func (fs *FileSink) WriteString(s string) error {
	if _, err := fs.w.WriteString(s); err != nil {
		return err
	}
	return fs.w.Flush()
}

// Close flushes and closes the underlying file.
func (fs *FileSink) Close() error {
	if err := fs.w.Flush(); err != nil {
		fs.f.Close()
		return err
	}
	return fs.f.Close()
}

// WriterSink adapts any io.Writer into a Sink, without a header. It's
// useful for tests and for writing records to an existing stream.
type WriterSink struct {
	w io.Writer
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink returns a Sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteString writes s to the underlying writer.
func (ws *WriterSink) WriteString(s string) error {
	_, err := io.WriteString(ws.w, s)
	return err
}

// Close is a no-op: the underlying writer is owned by the caller.
func (ws *WriterSink) Close() error {
	return nil
}
