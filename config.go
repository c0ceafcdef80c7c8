package golg

// Config is the complete, immutable set of formatting and tracing options
// consumed by a [Logger]. A Config is normally produced by the loader in
// [github.com/wkozlowski/golg/golgconf], which validates types and ranges
// before the core ever sees a value. The core itself never coerces or
// repairs an option: a malformed Config is a bug in whatever built it.
//
// Configs are plain values, shared by copy. Once a Logger has been
// constructed from a Config, changing the original has no effect.
type Config struct {
	// Enable controls whether tracing happens at all. A Logger built from
	// a disabled Config is a no-op.
	Enable bool

	// File is the sink target path, used by [NewFileSink] and by the
	// convenience layer when it opens the log.
	File string

	// ExceptionWarning emits a warning line on the Logger's error stream
	// when an instrumented call panics.
	ExceptionWarning bool

	// ExceptionTraceFile appends the captured goroutine stack to the
	// EXCEPTION record written to the sink.
	ExceptionTraceFile bool

	// ExceptionTraceStderr mirrors the captured goroutine stack to the
	// Logger's error stream.
	ExceptionTraceStderr bool

	// ExceptionExit terminates the process immediately after the
	// EXCEPTION record is written, instead of repanicking to the caller.
	ExceptionExit bool

	// TraceTime enables the timestamp column. TimeFormat is a Go
	// reference-time layout.
	TraceTime  bool
	TimeFormat string

	// TraceFilename enables the file column: the declaration file's base
	// name, left-justified, padded or truncated to FilenameColumnWidth.
	TraceFilename       bool
	FilenameColumnWidth int

	// TraceLineno enables the line-number column, zero-padded to at least
	// LinenoWidth digits. Wider numbers are never truncated.
	TraceLineno bool
	LinenoWidth int

	// TraceFunction enables the function column, left-justified, padded
	// or truncated to FunctionColumnWidth.
	TraceFunction       bool
	FunctionColumnWidth int

	// ScopeNameResolution qualifies function names with the enclosing
	// scope of the innermost active instrumented call. When false, the
	// scope stack is permanently disabled to skip its bookkeeping.
	ScopeNameResolution bool

	// TraceMessage enables the message column. MessageWidth bounds its
	// width; 0 means unlimited. MessageWrap selects wrapping over
	// truncation, and MessageMarkTruncation replaces the final character
	// of a truncated line with a marker.
	TraceMessage          bool
	MessageWidth          int
	MessageWrap           bool
	MessageMarkTruncation bool

	// TraceSelf includes a first parameter named "self" in ENTRY records.
	// By default it is omitted, matching the owning-instance convention.
	TraceSelf bool

	// CollapseSlices and CollapseMaps render slice/array and map argument
	// values as length markers instead of their full contents.
	CollapseSlices bool
	CollapseMaps   bool

	// TraceArgs, TraceRV and TraceRVType are the per-process defaults for
	// argument tracing, return-value tracing, and return-type annotation.
	// Each can be overridden per binding with [FuncOption] values.
	TraceArgs   bool
	TraceRV     bool
	TraceRVType bool
}
