package saga

import "github.com/pkg/errors"

// State represents the position of a booking in its lifecycle
type State string

const (
	StateCreated      State = "created"
	StateReserving    State = "reserving"
	StateReserved     State = "reserved"
	StateCharging     State = "charging"
	StateConfirmed    State = "confirmed"
	StateCompensating State = "compensating"
	StateCancelled    State = "cancelled"
	// StateManualReview is the operator escalation state reached when
	// compensation retries are exhausted. Reported, not terminal.
	StateManualReview State = "manual_review"
)

// EventKind represents a saga transition trigger
type EventKind string

const (
	EventReserveRequested EventKind = "reserve_requested"
	EventReserveSucceeded EventKind = "reserve_succeeded"
	EventReserveFailed    EventKind = "reserve_failed"
	EventChargeRequested  EventKind = "charge_requested"
	EventChargeSucceeded  EventKind = "charge_succeeded"
	EventChargeFailed     EventKind = "charge_failed"
	EventReleaseSucceeded EventKind = "release_succeeded"
	EventReleaseFailed    EventKind = "release_failed"
	EventReleaseExhausted EventKind = "release_exhausted"
	EventCancelRequested  EventKind = "cancel_requested"
)

// StepKind identifies a unit of side-effecting work dispatched to a worker
type StepKind string

const (
	StepReserve StepKind = "reserve"
	StepRelease StepKind = "release"
	StepCharge  StepKind = "charge"
	StepRefund  StepKind = "refund"
	StepNotify  StepKind = "notify"
)

// ErrUnexpectedTransition is returned when an event is not admissible in the
// current state. The state machine never regresses; callers decide whether
// the event is a duplicate delivery or a consistency problem.
var ErrUnexpectedTransition = errors.New("unexpected transition")

// transitions is the full transition table. Given (state, event) the next
// state is a pure function: no I/O, no clock reads, no randomness.
var transitions = map[State]map[EventKind]State{
	StateCreated: {
		EventReserveRequested: StateReserving,
		EventCancelRequested:  StateCancelled,
	},
	StateReserving: {
		EventReserveSucceeded: StateReserved,
		EventReserveFailed:    StateCancelled,
		EventCancelRequested:  StateCompensating,
	},
	StateReserved: {
		EventChargeRequested: StateCharging,
		EventCancelRequested: StateCompensating,
	},
	StateCharging: {
		EventChargeSucceeded: StateConfirmed,
		EventChargeFailed:    StateCompensating,
		EventCancelRequested: StateCompensating,
	},
	StateCompensating: {
		EventReleaseSucceeded: StateCancelled,
		EventReleaseFailed:    StateCompensating,
		EventReleaseExhausted: StateManualReview,
	},
	StateManualReview: {
		// An operator re-drives the release; the saga still converges.
		EventReleaseSucceeded: StateCancelled,
	},
}

// Transition computes the next state for an event. Returns
// ErrUnexpectedTransition when the event is not admissible.
func Transition(state State, event EventKind) (State, error) {
	admissible, ok := transitions[state]
	if !ok {
		return state, errors.Wrapf(ErrUnexpectedTransition, "state %s is terminal", state)
	}

	next, ok := admissible[event]
	if !ok {
		return state, errors.Wrapf(ErrUnexpectedTransition, "event %s in state %s", event, state)
	}

	return next, nil
}

// Admits reports whether the event is admissible in the given state
func Admits(state State, event EventKind) bool {
	_, err := Transition(state, event)
	return err == nil
}

// Terminal reports whether the state admits no further transitions
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateCancelled
}

// stepByState maps each step-driving state to the step in flight while the
// saga sits in that state.
var stepByState = map[State]StepKind{
	StateReserving:    StepReserve,
	StateCharging:     StepCharge,
	StateCompensating: StepRelease,
}

// StepFor returns the step in flight for a state, if any
func StepFor(state State) (StepKind, bool) {
	step, ok := stepByState[state]
	return step, ok
}

// FollowUp returns the event the coordinator feeds the machine on entering a
// state that immediately drives the next step, if any. Reserved bookings are
// charged without waiting for an external trigger.
func FollowUp(state State) (EventKind, bool) {
	if state == StateReserved {
		return EventChargeRequested, true
	}
	return "", false
}

// FailureEvent returns the event synthesized when a step exhausts its retry
// budget without a terminal outcome.
func FailureEvent(step StepKind) (EventKind, bool) {
	switch step {
	case StepReserve:
		return EventReserveFailed, true
	case StepCharge:
		return EventChargeFailed, true
	case StepRelease:
		return EventReleaseExhausted, true
	default:
		return "", false
	}
}

// ResultEvent maps a step outcome reported by a worker to the saga event
// that drives the transition.
func ResultEvent(step StepKind, succeeded bool) (EventKind, bool) {
	switch step {
	case StepReserve:
		if succeeded {
			return EventReserveSucceeded, true
		}
		return EventReserveFailed, true
	case StepCharge:
		if succeeded {
			return EventChargeSucceeded, true
		}
		return EventChargeFailed, true
	case StepRelease:
		if succeeded {
			return EventReleaseSucceeded, true
		}
		return EventReleaseFailed, true
	default:
		// Refund and notify results never drive saga transitions.
		return "", false
	}
}
