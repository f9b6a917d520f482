package domain

import (
	"context"
	"time"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// StepRecord is one entry in a saga's append-only history: the event that was
// applied and the step left in flight afterwards, if any. Attempt carries the
// dispatch attempt a worker report answered, zero for internal events.
type StepRecord struct {
	Event   saga.EventKind `json:"event"`
	Step    saga.StepKind  `json:"step,omitempty"`
	Detail  string         `json:"detail,omitempty"`
	Attempt int            `json:"attempt,omitempty"`
	At      time.Time      `json:"at"`
}

// SagaInstance tracks one booking's progress through the state machine.
// Exactly one active instance exists per booking.
type SagaInstance struct {
	BookingID     models.ID
	State         saga.State
	History       []StepRecord
	Attempts      map[saga.StepKind]int
	Compensating  bool
	StepStartedAt *time.Time
	Timestamps    models.Timestamps
	Version       models.Version
}

// NewSagaInstance creates a saga instance in the Created state
func NewSagaInstance(bookingID models.ID) *SagaInstance {
	return &SagaInstance{
		BookingID:  bookingID,
		State:      saga.StateCreated,
		History:    make([]StepRecord, 0),
		Attempts:   make(map[saga.StepKind]int),
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}
}

// Apply feeds an event through the state machine. A duplicate delivery of an
// event already in history is acknowledged without applying (applied=false,
// nil error); an event that is neither admissible nor recorded is an
// UnexpectedTransitionError. On success the history grows by exactly one
// record and the step clock restarts if the new state has a step in flight.
func (s *SagaInstance) Apply(event saga.EventKind, detail string, now time.Time) (bool, error) {
	return s.ApplyResult(event, detail, 0, now)
}

// ApplyResult applies a worker-reported outcome, deduplicating by dispatch
// attempt. Self-loop events like a failed release are admissible again after
// applying, so the inadmissible-event guard alone cannot absorb their
// redeliveries; a record with the same event and attempt already in history
// makes the delivery a duplicate regardless of admissibility.
func (s *SagaInstance) ApplyResult(event saga.EventKind, detail string, attempt int, now time.Time) (bool, error) {
	if attempt > 0 && s.SeenResult(event, attempt) {
		return false, nil
	}

	next, err := saga.Transition(s.State, event)
	if err != nil {
		if s.HasSeen(event) {
			return false, nil
		}
		return false, &UnexpectedTransitionError{
			BookingID: s.BookingID.String(),
			State:     string(s.State),
			Event:     string(event),
		}
	}

	s.State = next
	if next == saga.StateCompensating {
		s.Compensating = true
	}

	step, inFlight := saga.StepFor(next)
	if inFlight {
		startedAt := now
		s.StepStartedAt = &startedAt
	} else {
		s.StepStartedAt = nil
	}

	s.History = append(s.History, StepRecord{
		Event:   event,
		Step:    step,
		Detail:  detail,
		Attempt: attempt,
		At:      now,
	})

	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()
	return true, nil
}

// HasSeen reports whether the event was already applied to this saga
func (s *SagaInstance) HasSeen(event saga.EventKind) bool {
	for _, record := range s.History {
		if record.Event == event {
			return true
		}
	}
	return false
}

// SeenResult reports whether a report for this event and dispatch attempt was
// already applied
func (s *SagaInstance) SeenResult(event saga.EventKind, attempt int) bool {
	for _, record := range s.History {
		if record.Event == event && record.Attempt == attempt {
			return true
		}
	}
	return false
}

// DetailFor returns the detail recorded with the most recent application of
// the event, typically the collaborator reference reported with a success.
func (s *SagaInstance) DetailFor(event saga.EventKind) (string, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Event == event {
			return s.History[i].Detail, true
		}
	}
	return "", false
}

// CurrentStep returns the step in flight for the current state, if any
func (s *SagaInstance) CurrentStep() (saga.StepKind, bool) {
	return saga.StepFor(s.State)
}

// RecordAttempt counts one dispatch of a step and returns the new count
func (s *SagaInstance) RecordAttempt(step saga.StepKind) int {
	if s.Attempts == nil {
		s.Attempts = make(map[saga.StepKind]int)
	}
	s.Attempts[step]++
	return s.Attempts[step]
}

// AttemptCount returns how many times a step has been dispatched
func (s *SagaInstance) AttemptCount(step saga.StepKind) int {
	return s.Attempts[step]
}

// RestartStep resets the step clock after a re-dispatch
func (s *SagaInstance) RestartStep(now time.Time) {
	startedAt := now
	s.StepStartedAt = &startedAt
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()
}

// StepTimedOut reports whether the step in flight has exceeded its deadline
func (s *SagaInstance) StepTimedOut(now time.Time, timeout time.Duration) bool {
	if s.State.Terminal() || s.StepStartedAt == nil {
		return false
	}
	return now.Sub(*s.StepStartedAt) > timeout
}

// SagaRepository interface
type SagaRepository interface {
	Save(ctx context.Context, instance *SagaInstance) error
	FindByBookingID(ctx context.Context, bookingID models.ID) (*SagaInstance, error)
	// FindStalled returns non-terminal instances whose step clock started
	// before the given time.
	FindStalled(ctx context.Context, olderThan time.Time) ([]*SagaInstance, error)
}
