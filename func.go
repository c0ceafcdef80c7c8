package golg

import (
	"fmt"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/wkozlowski/golg/internal/golgdebug"
)

// TraceFunc instruments one target function. It is constructed once per
// target with [Logger.Func], capturing the declaration site, and then
// drives the entry/exit/exception protocol on every [TraceFunc.Invoke].
//
// A TraceFunc is reentrant: recursive and nested invocations operate
// independently, since the captured call site is read-only and only the
// Logger's scope stack carries per-invocation state.
type TraceFunc struct {
	logger *Logger
	fn     reflect.Value
	fnType reflect.Type
	site   CallSite

	params   []string
	defaults map[string]any

	exceptionWarning     bool
	exceptionTraceFile   bool
	exceptionTraceStderr bool
	exceptionExit        bool
	traceArgs            bool
	traceRV              bool
	traceRVType          bool

	// bind-time adjustments, consumed by Func
	bindDepth     int
	overrideSite  *CallSite
	overrideScope *string
	overrideName  string
}

// FuncOption adjusts a binding. Behavioral options override the
// process-wide defaults from [Config] for this binding only.
type FuncOption func(*TraceFunc)

// WithParams declares the target's parameter names, in order, including
// the variadic parameter if any. Go reflection cannot recover parameter
// names, so without this option arguments render as arg0, arg1, and so
// on. A first parameter named "self" is treated as the owning instance
// and omitted from ENTRY records unless [Config.TraceSelf] is set.
func WithParams(names ...string) FuncOption {
	return func(tf *TraceFunc) { tf.params = names }
}

// WithDefaults declares default values for trailing parameters, filled
// in when Invoke is given fewer arguments than the target declares. Keys
// must be names declared via WithParams.
func WithDefaults(defaults map[string]any) FuncOption {
	return func(tf *TraceFunc) { tf.defaults = defaults }
}

// WithSite overrides the captured declaration file and line.
func WithSite(file string, line int) FuncOption {
	return func(tf *TraceFunc) { tf.overrideSite = &CallSite{File: file, Line: line} }
}

// WithScope overrides the captured enclosing scope name. An empty scope
// is top-level and never qualifies the function name.
func WithScope(scope string) FuncOption {
	return func(tf *TraceFunc) { tf.overrideScope = &scope }
}

// WithName overrides the captured function name.
func WithName(name string) FuncOption {
	return func(tf *TraceFunc) { tf.overrideName = name }
}

// WithCallDepth captures the declaration site extra frames further up
// the stack. It exists for wrappers such as
// [github.com/wkozlowski/golg/ezgolg].
func WithCallDepth(extra int) FuncOption {
	return func(tf *TraceFunc) { tf.bindDepth += extra }
}

// WithTraceArgs overrides argument tracing for this binding.
func WithTraceArgs(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.traceArgs = v }
}

// WithTraceRV overrides return-value tracing for this binding.
func WithTraceRV(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.traceRV = v }
}

// WithTraceRVType overrides return-type annotation for this binding.
func WithTraceRVType(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.traceRVType = v }
}

// WithExceptionWarning overrides the panic warning for this binding.
func WithExceptionWarning(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.exceptionWarning = v }
}

// WithExceptionTraceFile overrides in-record stack capture for this
// binding.
func WithExceptionTraceFile(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.exceptionTraceFile = v }
}

// WithExceptionTraceStderr overrides stack mirroring to the error stream
// for this binding.
func WithExceptionTraceStderr(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.exceptionTraceStderr = v }
}

// WithExceptionExit overrides the force-exit policy for this binding.
func WithExceptionExit(v bool) FuncOption {
	return func(tf *TraceFunc) { tf.exceptionExit = v }
}

// Func binds fn for tracing. Binding is the fail-fast step: a nil or
// non-function target, mismatched parameter names, or defaults for
// undeclared parameters are usage errors reported here, never during
// steady-state tracing.
//
// The declaration site (file, line, enclosing scope) is captured from
// the caller of Func; WithSite, WithScope and WithName register it
// explicitly instead.
func (l *Logger) Func(fn any, opts ...FuncOption) (*TraceFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("bind target must be a function, got nil")
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("bind target must be a function, got %T", fn)
	}

	tf := &TraceFunc{
		logger: l,
		fn:     v,
		fnType: v.Type(),

		exceptionWarning:     l.cfg.ExceptionWarning,
		exceptionTraceFile:   l.cfg.ExceptionTraceFile,
		exceptionTraceStderr: l.cfg.ExceptionTraceStderr,
		exceptionExit:        l.cfg.ExceptionExit,
		traceArgs:            l.cfg.TraceArgs,
		traceRV:              l.cfg.TraceRV,
		traceRVType:          l.cfg.TraceRVType,
	}

	for _, opt := range opts {
		opt(tf)
	}

	site := callerSite(2 + tf.bindDepth)
	site.Function = baseFuncName(runtimeFuncName(v))
	if tf.overrideSite != nil {
		site.File = tf.overrideSite.File
		site.Line = tf.overrideSite.Line
	}
	if tf.overrideScope != nil {
		site.Scope = *tf.overrideScope
	}
	if tf.overrideName != "" {
		site.Function = tf.overrideName
	}
	tf.site = site

	if tf.params == nil {
		tf.params = make([]string, tf.fnType.NumIn())
		for i := range tf.params {
			tf.params[i] = fmt.Sprintf("arg%d", i)
		}
	}
	if len(tf.params) != tf.fnType.NumIn() {
		return nil, fmt.Errorf("%d parameter names declared for %s, which has %d parameters",
			len(tf.params), site.Function, tf.fnType.NumIn())
	}

	for name := range tf.defaults {
		if !contains(tf.params, name) {
			return nil, fmt.Errorf("default declared for unknown parameter %q of %s", name, site.Function)
		}
	}

	return tf, nil
}

// MustFunc is like Func but panics on a binding error, for bindings made
// in variable initializers.
func (l *Logger) MustFunc(fn any, opts ...FuncOption) *TraceFunc {
	tf, err := l.Func(fn, append(opts, WithCallDepth(1))...)
	if err != nil {
		panic(fmt.Sprintf("golg: %v", err))
	}
	return tf
}

// Site returns the captured declaration site.
func (tf *TraceFunc) Site() CallSite {
	return tf.site
}

// Invoke calls the bound function with args, emitting an ENTRY record
// before the call and an EXIT record after it. If the call panics, the
// EXIT record is tagged with the panic's type and message and the same
// panic value is re-raised, so the caller's error handling is unaffected
// by tracing — unless the force-exit policy is set, in which case the
// process terminates as soon as the record is written.
//
// Missing trailing arguments are filled from the declared defaults; an
// argument count that cannot be completed is a usage fault and panics.
// The returned error reports a sink write failure; when the ENTRY record
// cannot be written, the target is not called.
func (tf *TraceFunc) Invoke(args ...any) ([]any, error) {
	args = tf.completeArgs(args)

	if !tf.logger.cfg.Enable {
		return tf.call(args), nil
	}

	tf.logger.stack.Push(tf.site.Scope)

	if err := tf.traceEntry(args); err != nil {
		tf.logger.stack.Pop()
		return nil, fmt.Errorf("write entry record: %w", err)
	}

	results := tf.invokeTarget(args)

	err := tf.traceExit(results)
	tf.logger.stack.Pop()
	if err != nil {
		return results, fmt.Errorf("write exit record: %w", err)
	}

	return results, nil
}

// invokeTarget calls the target and handles the exception path: on
// panic, the EXIT record is written, the force-exit policy is applied,
// and otherwise the stack is popped and the same panic value re-raised.
// The force-exit path does not pop, because the process does not
// continue; the exit func is expected not to return.
func (tf *TraceFunc) invokeTarget(args []any) (results []any) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		golgdebug.Engine.Panics.Add(1)
		tf.traceException(r)

		if tf.exceptionExit {
			fmt.Fprintln(tf.logger.errw, "warning: exit forced by exception_exit")
			tf.logger.exit(1)
			return // reached only when a test exit func returns
		}

		tf.logger.stack.Pop()
		panic(r)
	}()

	return tf.call(args)
}

// call applies the completed arguments to the target via reflection.
func (tf *TraceFunc) call(args []any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = tf.argValue(i, arg)
	}

	out := tf.fn.Call(in)

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results
}

// completeArgs validates the argument count and fills missing trailing
// arguments from the declared defaults. A count that cannot be completed
// is a usage fault, reported immediately.
func (tf *TraceFunc) completeArgs(args []any) []any {
	n := tf.fnType.NumIn()

	if tf.fnType.IsVariadic() {
		if len(args) < n-1 {
			args = tf.fillDefaults(args, n-1)
		}
		return args
	}

	if len(args) > n {
		panic(fmt.Sprintf("golg: %s takes %d arguments, got %d", tf.site.Function, n, len(args)))
	}
	if len(args) < n {
		args = tf.fillDefaults(args, n)
	}
	return args
}

func (tf *TraceFunc) fillDefaults(args []any, want int) []any {
	out := append([]any{}, args...)
	for i := len(args); i < want; i++ {
		name := tf.params[i]
		d, ok := tf.defaults[name]
		if !ok {
			panic(fmt.Sprintf("golg: missing argument %q for %s, and no default declared", name, tf.site.Function))
		}
		out = append(out, d)
	}
	return out
}

func (tf *TraceFunc) argValue(i int, arg any) reflect.Value {
	t := tf.paramType(i)

	if arg == nil {
		return reflect.Zero(t)
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(t):
		return v
	case v.Type().ConvertibleTo(t):
		return v.Convert(t)
	default:
		panic(fmt.Sprintf("golg: argument %d of %s: cannot use %T as %s", i, tf.site.Function, arg, t))
	}
}

func (tf *TraceFunc) paramType(i int) reflect.Type {
	n := tf.fnType.NumIn()
	if tf.fnType.IsVariadic() && i >= n-1 {
		return tf.fnType.In(n - 1).Elem()
	}
	return tf.fnType.In(i)
}

// traceEntry emits the ENTRY record for one invocation. Arguments render
// as name = value pairs when argument tracing is enabled, and as a "---"
// placeholder when it is not. The variadic tail renders as one slice
// value under the variadic parameter's name.
func (tf *TraceFunc) traceEntry(args []any) error {
	msg := "-> ENTRY"

	if len(args) > 0 {
		if !tf.traceArgs {
			msg += ": ---"
		} else {
			fixed := len(args)
			if tf.fnType.IsVariadic() {
				fixed = tf.fnType.NumIn() - 1
			}

			var parts []string
			for i := 0; i < fixed && i < len(args); i++ {
				name := tf.params[i]
				if name == "self" && !tf.logger.cfg.TraceSelf {
					continue
				}
				parts = append(parts, name+" = "+renderValue(tf.logger.cfg, args[i]))
			}
			if tf.fnType.IsVariadic() {
				rest := args[fixed:]
				parts = append(parts, tf.params[len(tf.params)-1]+" = "+renderValue(tf.logger.cfg, rest))
			}

			if len(parts) > 0 {
				msg += ": " + strings.Join(parts, ", ")
			}
		}
	}

	return tf.logger.emit(tf.site, msg)
}

// traceExit emits the EXIT record for a normal return.
func (tf *TraceFunc) traceExit(results []any) error {
	msg := "<- EXIT "

	if len(results) > 0 {
		msg += ": "
		if tf.traceRV {
			msg += renderResults(tf.logger.cfg, results)
		} else {
			msg += "---"
		}

		if tf.traceRVType {
			names := make([]string, len(results))
			for i, r := range results {
				names[i] = typeName(r)
			}
			msg += fmt.Sprintf(" (type: %s)", strings.Join(names, ", "))
		}
	}

	return tf.logger.emit(tf.site, msg)
}

// traceException emits the EXIT record for a call terminated by a panic.
// The panic's type name and message appear verbatim; the goroutine stack
// is optionally appended to the record and mirrored to the error stream.
func (tf *TraceFunc) traceException(r any) {
	core := typeName(r) + " RAISED"

	msg := "<- EXIT : " + core
	if text := fmt.Sprint(r); text != "" {
		msg += " - " + text
	}

	if tf.exceptionWarning {
		fmt.Fprintf(tf.logger.errw, "warning: %s\n", core)
	}

	if tf.exceptionTraceFile {
		msg += "\n--- EXCEPTION ---\n" + string(debug.Stack()) + "-----------------"
	}

	if tf.exceptionTraceStderr {
		fmt.Fprintf(tf.logger.errw, "--- EXCEPTION ---\n%s-----------------\n", debug.Stack())
	}

	// The panic is already propagating; a sink fault here has nowhere
	// better to go.
	_ = tf.logger.emit(tf.site, msg)
}

func renderResults(cfg Config, results []any) string {
	if len(results) == 1 {
		return renderValue(cfg, results[0])
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = renderValue(cfg, r)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func runtimeFuncName(v reflect.Value) string {
	if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
		return fn.Name()
	}
	return "???"
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
