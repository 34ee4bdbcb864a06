package preflight

import (
	"context"
	"sync/atomic"

	"github.com/pressproof/preflight/report"
)

// State tracks a run through the two-phase pipeline.
type State int32

const (
	StateIdle State = iota
	StateAnalysingStructural
	StateAnalysingContent
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalysingStructural:
		return "analysing (structural)"
	case StateAnalysingContent:
		return "analysing (content)"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind names the progress events a run emits.
type EventKind int

const (
	EventPhaseStarted EventKind = iota
	EventPageDone
	EventCompleted
	EventFailed
)

// Event is one progress notification. Phase is set on EventPhaseStarted,
// Page on EventPageDone, Err on EventFailed.
type Event struct {
	Kind  EventKind
	Phase State
	Page  int
	Err   error
}

// Run is the handle of one analysis. It resolves exactly once, to either
// a report or a classified error.
type Run struct {
	ctx    context.Context
	cancel context.CancelFunc

	state  atomic.Int32
	events chan Event
	done   chan struct{}

	rep *report.Report
	err error
}

func newRun(parent context.Context) *Run {
	ctx, cancel := context.WithCancel(parent)
	r := &Run{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	r.state.Store(int32(StateIdle))
	return r
}

// State returns the run's current pipeline state.
func (r *Run) State() State { return State(r.state.Load()) }

// Events returns the progress stream. The channel is buffered and closed
// when the run resolves; consumers are free to ignore it, slow consumers
// lose events rather than stalling the analysis.
func (r *Run) Events() <-chan Event { return r.events }

// Done is closed once the run has resolved.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel abandons the run. A cancelled run resolves with an error and
// commits nothing.
func (r *Run) Cancel() { r.cancel() }

// Report blocks until the run resolves and returns its outcome.
func (r *Run) Report() (*report.Report, error) {
	<-r.done
	return r.rep, r.err
}

func (r *Run) setState(s State) {
	r.state.Store(int32(s))
}

// emit delivers an event without ever blocking the analysis.
func (r *Run) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}

func (r *Run) finish(rep *report.Report, err error) {
	r.rep, r.err = rep, err
	if err != nil {
		r.setState(StateFailed)
		r.emit(Event{Kind: EventFailed, Err: err})
	} else {
		r.setState(StateDone)
		r.emit(Event{Kind: EventCompleted})
	}
	close(r.events)
	close(r.done)
	r.cancel()
}
