package golg

import (
	"sync"

	"github.com/wkozlowski/golg/internal/golgdebug"
)

// ScopeStack is a LIFO of scope names for the currently executing
// instrumented calls. The scope of the innermost active call is on top,
// and is removed when that call returns or panics. The top element
// qualifies the function name of the trace line currently being formed.
//
// A ScopeStack is safe for concurrent use, but qualification is only
// meaningful for a single logical call chain: pushes and pops must pair
// up within one chain. Programs tracing concurrent chains should give
// each chain its own [Logger], and therefore its own stack.
type ScopeStack struct {
	mtx      sync.Mutex
	scopes   []string
	disabled bool
}

// NewScopeStack returns an empty, enabled scope stack.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// Disable renders Push, Pop and Peek permanent no-ops, skipping the
// bookkeeping cost when scope name resolution is never consumed.
//
// This is an irreversible operation.
func (s *ScopeStack) Disable() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.disabled = true
	s.scopes = nil
}

// Push appends scope to the tail of the stack.
func (s *ScopeStack) Push(scope string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.disabled {
		return
	}

	s.scopes = append(s.scopes, scope)
	golgdebug.Engine.ScopePushes.Add(1)
}

// Pop removes and discards the tail element. Pop on an empty stack is a
// no-op, never a fault.
func (s *ScopeStack) Pop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.disabled || len(s.scopes) == 0 {
		return
	}

	s.scopes = s.scopes[:len(s.scopes)-1]
	golgdebug.Engine.ScopePops.Add(1)
}

// Peek returns the tail element without removing it, or the empty string
// if the stack is empty or disabled.
func (s *ScopeStack) Peek() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.disabled || len(s.scopes) == 0 {
		return ""
	}

	return s.scopes[len(s.scopes)-1]
}

// Depth returns the current number of elements.
func (s *ScopeStack) Depth() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.scopes)
}
