// Package golg generates runtime logs for instrumented function calls,
// an alternative to writing log statements by hand.
//
// The basic idea is to bind a [TraceFunc] to a function once, at or near
// its definition site, and then call the function through the binding.
// Every invocation produces an ENTRY record (with the call arguments), and
// either an EXIT record (with the return values) or an EXIT record tagged
// with the panic that terminated the call. Records are rendered into a
// column-aligned text stream: timestamp, file, line, function, message.
// Each column is individually configurable, and the message column can be
// wrapped or truncated to a fixed width.
//
// Free-form records can be emitted between instrumented calls with
// [Logger.Trace], which captures its own call site.
//
// A [Logger] assumes a single logical call stack: nested instrumented
// calls qualify their function names by the scope of the enclosing bound
// function. Programs tracing multiple concurrent call chains should use
// one Logger per chain, or provide external synchronization.
//
// Most programs should not import this package directly, and should
// instead use [github.com/wkozlowski/golg/ezgolg], which provides an
// easy-to-use API around a single process-wide Logger configured from a
// settings file.
package golg
