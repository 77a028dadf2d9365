package style

import (
	"errors"

	"github.com/nongio/otto/internal/scene"
	"github.com/nongio/otto/internal/timing"
	"github.com/nongio/otto/protocol/wire"
)

// TransactionState is the otto_transaction_v1 lifecycle state (spec.md §4.5
// transition table).
type TransactionState uint8

const (
	TransactionOpen TransactionState = iota
	TransactionCommitted
	TransactionCancelled
)

// ErrProtocolViolation is returned for any request made against a
// transaction that is no longer Open (spec.md §4.5: "Committed/Cancelled:
// any further input → protocol error"; spec.md §7 "Protocol violation").
var ErrProtocolViolation = errors.New("style: protocol violation: transaction is not open")

// stagedChange is one setter buffered into a transaction: applying it
// schedules a transition on the named layer/property using the
// transaction's eventual timing, not the timing in effect when the setter
// was called (spec.md §9 design note: "avoid materializing the change at
// stage time").
type stagedChange func(e *scene.Engine, spec *scene.TransitionSpec)

// TransactionHandlers carries the otto_transaction_v1 `completed` event
// callback, delivered to the client when EnableCompletionEvent was
// requested and every animated change in the batch has finished.
type TransactionHandlers struct {
	OnCompleted func()
}

// Transaction is the otto_transaction_v1 protocol object: a pending batch
// of animated changes sharing one duration/delay/timing-function, committed
// or cancelled atomically (spec.md §3 ScTransaction, §4.5).
type Transaction struct {
	wire.Resource

	state             TransactionState
	duration          float64
	delay             float64
	timingFn          *TimingFunction
	handlers          *TransactionHandlers
	completionEnabled bool

	changes []stagedChange

	pendingCompletions int
	completionFired    bool
}

// NewTransaction constructs an Open transaction. handlers may be nil if the
// client never asks for the completion event.
func NewTransaction(handlers *TransactionHandlers) *Transaction {
	return &Transaction{handlers: handlers}
}

// SetDuration implements the `set_duration` request.
func (t *Transaction) SetDuration(seconds float64) error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.duration = seconds
	return nil
}

// SetDelay implements the `set_delay` request.
func (t *Transaction) SetDelay(seconds float64) error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.delay = seconds
	return nil
}

// SetTimingFunction implements the `set_timing_function` request.
func (t *Transaction) SetTimingFunction(tf *TimingFunction) error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.timingFn = tf
	return nil
}

// EnableCompletionEvent implements the `enable_completion_event` request.
func (t *Transaction) EnableCompletionEvent() error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.completionEnabled = true
	return nil
}

// stage buffers a setter into this transaction. Called by Style's setter
// methods when the caller passes a non-nil transaction.
func (t *Transaction) stage(change stagedChange) error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.changes = append(t.changes, change)
	return nil
}

// Commit implements the `commit` request: every staged change is scheduled
// on the engine as a single atomic burst sharing this transaction's timing
// (spec.md §4.5 "Commit semantics"; testable property "Transaction
// atomicity").
func (t *Transaction) Commit(e *scene.Engine) error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.state = TransactionCommitted

	n := len(t.changes)
	if n == 0 {
		if t.completionEnabled {
			t.fireCompleted()
		}
		return nil
	}

	t.pendingCompletions = n
	// A client may commit without ever calling set_timing_function; default
	// to a linear curve rather than leaving properties with no timing at all.
	fn, spring := timing.Function(timing.EaseLinear), (*timing.Spring)(nil)
	if t.timingFn != nil {
		fn, spring = t.timingFn.Resolve()
	}

	changes := t.changes
	e.Enqueue(func(e *scene.Engine) {
		for _, change := range changes {
			spec := &scene.TransitionSpec{
				Duration: t.duration,
				Delay:    t.delay,
				Timing:   fn,
				Spring:   spring,
				Replace:  scene.ReplaceCancel,
			}
			if t.completionEnabled {
				spec.OnComplete = func(cancelled bool) { t.onChangeComplete() }
			}
			change(e, spec)
		}
	})
	return nil
}

// onChangeComplete is invoked once per staged change when its transition
// finishes (or is cancelled); the `completed` event fires exactly once, when
// the last one finishes (spec.md §8 "Completion event exactly-once").
func (t *Transaction) onChangeComplete() {
	t.pendingCompletions--
	if t.pendingCompletions <= 0 {
		t.fireCompleted()
	}
}

func (t *Transaction) fireCompleted() {
	if t.completionFired {
		return
	}
	t.completionFired = true
	if t.handlers != nil && t.handlers.OnCompleted != nil {
		t.handlers.OnCompleted()
	}
}

// Cancel implements the `cancel` request: discards every staged change
// without touching the engine (spec.md §8 "Transaction atomicity": "if
// cancelled... none are [scheduled]").
func (t *Transaction) Cancel() error {
	if t.state != TransactionOpen {
		return ErrProtocolViolation
	}
	t.state = TransactionCancelled
	t.changes = nil
	return nil
}

// State returns the transaction's current lifecycle state.
func (t *Transaction) State() TransactionState { return t.state }
