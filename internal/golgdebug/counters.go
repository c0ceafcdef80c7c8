package golgdebug

import "sync/atomic"

// EngineCounters track the work done by the trace engine: records
// written, message lines wrapped or truncated, panics recovered from
// instrumented calls, and scope stack traffic. They exist for tests and
// debugging and have no behavioral effect.
type EngineCounters struct {
	Records        atomic.Uint64
	WrappedLines   atomic.Uint64
	TruncatedLines atomic.Uint64
	Panics         atomic.Uint64
	ScopePushes    atomic.Uint64
	ScopePops      atomic.Uint64
}

// Values returns the current values of the counters.
func (ec *EngineCounters) Values() (records, wrapped, truncated, panics, pushes, pops uint64) {
	return ec.Records.Load(),
		ec.WrappedLines.Load(),
		ec.TruncatedLines.Load(),
		ec.Panics.Load(),
		ec.ScopePushes.Load(),
		ec.ScopePops.Load()
}

// Engine is the process-wide counter set.
var Engine EngineCounters
