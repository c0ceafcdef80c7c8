package golg_test

import (
	"strings"
	"testing"
	"time"

	"github.com/wkozlowski/golg"
)

func TestLoggerTraceAt(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	cfg := golg.Config{
		Enable:    true,
		TraceTime: true, TimeFormat: "15:04:05",
		TraceFilename: true, FilenameColumnWidth: 12,
		TraceLineno: true, LinenoWidth: 4,
		TraceFunction: true, FunctionColumnWidth: 10,
		TraceMessage: true, MessageWidth: 0,
	}

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	l := golg.New(cfg, golg.NewWriterSink(&sb), golg.WithClock(func() time.Time { return now }))

	site := golg.CallSite{File: "engine.go", Line: 42, Function: "compute"}
	AssertNoError(t, l.TraceAt(site, "starting"))

	AssertEqual(t, "03:04:05  engine.go     0042: compute     starting\n", sb.String())
}

func TestLoggerTraceCapturesCaller(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	cfg := golg.Config{
		Enable:        true,
		TraceFunction: true, FunctionColumnWidth: 30,
		TraceMessage: true, MessageWidth: 0,
	}

	l := golg.New(cfg, golg.NewWriterSink(&sb))
	AssertNoError(t, l.Trace("hello"))

	AssertEqual(t, "TestLoggerTraceCapturesCaller   hello\n", sb.String())
}

func TestLoggerQualifiesFromStack(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	cfg := golg.Config{
		Enable:              true,
		ScopeNameResolution: true,
		TraceFunction:       true, FunctionColumnWidth: 12,
		TraceMessage: true, MessageWidth: 0,
	}

	l := golg.New(cfg, golg.NewWriterSink(&sb))

	l.Stack().Push("Calc")
	AssertNoError(t, l.TraceAt(golg.CallSite{Function: "get"}, "x"))
	l.Stack().Pop()

	AssertNoError(t, l.TraceAt(golg.CallSite{Function: "get"}, "y"))

	AssertEqual(t, "Calc.get      x\nget           y\n", sb.String())
}

func TestLoggerStackDisabledWithoutResolution(t *testing.T) {
	t.Parallel()

	cfg := golg.Config{Enable: true, TraceMessage: true}
	l := golg.New(cfg, golg.NewWriterSink(&strings.Builder{}))

	l.Stack().Push("Calc")
	AssertEqual(t, 0, l.Stack().Depth())
	AssertEqual(t, "", l.Stack().Peek())
}

func TestLoggerDisabled(t *testing.T) {
	t.Parallel()

	l := golg.New(golg.Config{}, nil)

	AssertEqual(t, false, l.Enabled())
	AssertNoError(t, l.Trace("never written"))
	AssertNoError(t, l.TraceAt(golg.CallSite{Function: "f"}, "never written"))
}
