package executors

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// Outcome classifies a step execution
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeRetryable Outcome = "retryable"
	OutcomePermanent Outcome = "permanent"
)

// Result is the classified outcome of one step execution. Raw collaborator
// errors never leave the executor; the coordinator sees only the class and
// the reason code.
type Result struct {
	Outcome    Outcome
	Reference  string
	ReasonCode string
	Message    string
}

// Executor runs one step kind against its collaborator
type Executor interface {
	Step() saga.StepKind
	Execute(ctx context.Context, job *queue.Job) (*Result, error)
}

// Registry resolves executors by step kind
type Registry struct {
	executors map[saga.StepKind]Executor
}

// NewRegistry creates a registry from the given executors
func NewRegistry(execs ...Executor) *Registry {
	registry := &Registry{executors: make(map[saga.StepKind]Executor, len(execs))}
	for _, exec := range execs {
		registry.executors[exec.Step()] = exec
	}
	return registry
}

// Resolve returns the executor for a step kind
func (r *Registry) Resolve(step saga.StepKind) (Executor, bool) {
	exec, ok := r.executors[step]
	return exec, ok
}

// IdempotencyRecord is the stored outcome of an applied side effect
type IdempotencyRecord struct {
	Key        string    `json:"key"`
	Applied    bool      `json:"applied"`
	Reference  string    `json:"reference,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// IdempotencyStore guards each (booking, step) side effect. Claim is a
// set-if-absent: the first caller wins the right to perform the external
// call; Record marks the effect applied with the collaborator's reference.
// A claim without a record means a crash mid-call, which the executor
// resolves against the collaborator before retrying.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Claim(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key, reference string) error
}

// TransientError indicates a collaborator failure worth retrying: timeouts,
// connection refusals and 5xx responses.
type TransientError struct {
	Cause string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient collaborator failure: %s", e.Cause)
}

// PermanentError indicates a business rejection that retrying cannot fix
type PermanentError struct {
	ReasonCode string
	Cause      string
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent collaborator failure (%s): %s", e.ReasonCode, e.Cause)
}

// classify maps a collaborator error to a step result
func classify(err error) *Result {
	var transient *TransientError
	if errors.As(err, &transient) {
		return &Result{Outcome: OutcomeRetryable, Message: transient.Cause}
	}

	var permanent *PermanentError
	if errors.As(err, &permanent) {
		return &Result{Outcome: OutcomePermanent, ReasonCode: permanent.ReasonCode, Message: permanent.Cause}
	}

	// Context deadlines and unknown failures are retried; the budget caps
	// how long.
	return &Result{Outcome: OutcomeRetryable, Message: err.Error()}
}
