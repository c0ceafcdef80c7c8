package golg

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/wkozlowski/golg/internal/golgdebug"
)

// CallSite identifies where a traced function was declared, or where a
// free-form trace statement was made. It is captured once and immutable
// thereafter.
type CallSite struct {
	// File is the base name of the declaration file.
	File string

	// Line is the declaration line number.
	Line int

	// Scope is the name of the enclosing scope (receiver type or
	// enclosing function), or empty at the top level.
	Scope string

	// Function is the bare function name.
	Function string
}

// Logger renders trace records and writes them to a Sink. It owns the
// scope stack used to qualify function names of nested instrumented
// calls, and it serializes sink writes, so records never interleave.
//
// Qualification assumes a single logical call stack: use one Logger per
// concurrent call chain.
type Logger struct {
	cfg   Config
	sink  Sink
	stack *ScopeStack

	mtx  sync.Mutex // serializes sink writes
	errw io.Writer
	exit func(int)
	now  func() time.Time
}

// LoggerOption adjusts collaborators of a Logger that default to
// process-level values.
type LoggerOption func(*Logger)

// WithErrorStream sets the destination for warnings and mirrored
// exception stacks. The default is os.Stderr.
func WithErrorStream(w io.Writer) LoggerOption {
	return func(l *Logger) { l.errw = w }
}

// WithExitFunc sets the function invoked by the force-exit policy. The
// default is os.Exit. The function is expected not to return.
func WithExitFunc(exit func(int)) LoggerOption {
	return func(l *Logger) { l.exit = exit }
}

// WithClock sets the time source for the timestamp column. The default
// is time.Now.
func WithClock(now func() time.Time) LoggerOption {
	return func(l *Logger) { l.now = now }
}

// New returns a Logger writing records formatted per cfg to sink. When
// cfg.Enable is false the Logger is a permanent no-op and sink may be
// nil. When scope name resolution is disabled, the scope stack is
// disabled up front, since nothing will ever consume it.
func New(cfg Config, sink Sink, opts ...LoggerOption) *Logger {
	l := &Logger{
		cfg:   cfg,
		sink:  sink,
		stack: NewScopeStack(),
		errw:  os.Stderr,
		exit:  os.Exit,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	if !cfg.ScopeNameResolution {
		l.stack.Disable()
	}

	return l
}

// Enabled returns whether the Logger produces records.
func (l *Logger) Enabled() bool {
	return l.cfg.Enable
}

// Config returns the option set the Logger was built with.
func (l *Logger) Config() Config {
	return l.cfg
}

// Stack returns the Logger's scope stack.
func (l *Logger) Stack() *ScopeStack {
	return l.stack
}

// Trace writes a free-form record, capturing the caller's file, line and
// function as the call site. The function name is qualified by the scope
// of the innermost active instrumented call, if any.
func (l *Logger) Trace(message string) error {
	return l.TraceDepth(2, message)
}

// TraceDepth is like Trace but captures the call site calldepth frames
// up the stack: 1 identifies the caller of TraceDepth itself. It exists
// for wrappers such as [github.com/wkozlowski/golg/ezgolg].
func (l *Logger) TraceDepth(calldepth int, message string) error {
	if !l.cfg.Enable {
		return nil
	}
	return l.emit(callerSite(calldepth+1), message)
}

// TraceAt writes a free-form record against an explicitly supplied call
// site, for callers that register declaration metadata themselves.
func (l *Logger) TraceAt(site CallSite, message string) error {
	if !l.cfg.Enable {
		return nil
	}
	return l.emit(site, message)
}

// emit renders one record and writes it to the sink. The scope qualifier
// is read from the top of the stack; it belongs to the innermost active
// instrumented call and is never modified here.
func (l *Logger) emit(site CallSite, message string) error {
	qualifier := l.stack.Peek()

	line := formatLine(l.cfg, site, qualifier, message, l.now())

	l.mtx.Lock()
	defer l.mtx.Unlock()

	golgdebug.Engine.Records.Add(1)

	return l.sink.WriteString(line)
}

// callerSite captures the call site skip frames above callerSite itself,
// as for runtime.Caller.
func callerSite(skip int) CallSite {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallSite{File: "???", Function: "???"}
	}

	site := CallSite{
		File: filepath.Base(file),
		Line: line,
	}

	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = baseFuncName(fn.Name())
		site.Scope = scopeFromFunc(fn.Name())
	}

	return site
}

// baseFuncName reduces a runtime function name like
// "github.com/x/pkg.(*Server).handle-fm" to "handle".
func baseFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}

// scopeFromFunc derives the enclosing scope name from a runtime function
// name: the receiver type for methods, the plain function name for
// functions, and empty for package-level initializers, which are the
// top-level scope and never qualify anything.
func scopeFromFunc(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}

	parts := strings.Split(full, ".")
	if len(parts) < 2 {
		return ""
	}

	name := parts[1]

	if strings.HasPrefix(name, "(") {
		name = strings.TrimPrefix(name, "(")
		name = strings.TrimPrefix(name, "*")
		name = strings.TrimSuffix(name, ")")
		return name
	}

	if name == "init" || strings.HasPrefix(name, "glob") {
		return ""
	}

	return name
}
