package saga

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name          string
		state         State
		event         EventKind
		expectedState State
		expectedError bool
	}{
		{
			name:          "created to reserving",
			state:         StateCreated,
			event:         EventReserveRequested,
			expectedState: StateReserving,
		},
		{
			name:          "reserving to reserved",
			state:         StateReserving,
			event:         EventReserveSucceeded,
			expectedState: StateReserved,
		},
		{
			name:          "reserve failure cancels directly",
			state:         StateReserving,
			event:         EventReserveFailed,
			expectedState: StateCancelled,
		},
		{
			name:          "reserved to charging",
			state:         StateReserved,
			event:         EventChargeRequested,
			expectedState: StateCharging,
		},
		{
			name:          "charge success confirms",
			state:         StateCharging,
			event:         EventChargeSucceeded,
			expectedState: StateConfirmed,
		},
		{
			name:          "charge failure compensates",
			state:         StateCharging,
			event:         EventChargeFailed,
			expectedState: StateCompensating,
		},
		{
			name:          "release success cancels",
			state:         StateCompensating,
			event:         EventReleaseSucceeded,
			expectedState: StateCancelled,
		},
		{
			name:          "release failure stays compensating",
			state:         StateCompensating,
			event:         EventReleaseFailed,
			expectedState: StateCompensating,
		},
		{
			name:          "release exhaustion escalates to manual review",
			state:         StateCompensating,
			event:         EventReleaseExhausted,
			expectedState: StateManualReview,
		},
		{
			name:          "manual review converges on operator release",
			state:         StateManualReview,
			event:         EventReleaseSucceeded,
			expectedState: StateCancelled,
		},
		{
			name:          "cancel request from charging compensates",
			state:         StateCharging,
			event:         EventCancelRequested,
			expectedState: StateCompensating,
		},
		{
			name:          "cancel request before reserve cancels directly",
			state:         StateCreated,
			event:         EventCancelRequested,
			expectedState: StateCancelled,
		},
		{
			name:          "confirmed is terminal",
			state:         StateConfirmed,
			event:         EventChargeSucceeded,
			expectedError: true,
		},
		{
			name:          "cancelled is terminal",
			state:         StateCancelled,
			event:         EventReserveRequested,
			expectedError: true,
		},
		{
			name:          "no regression from reserved",
			state:         StateReserved,
			event:         EventReserveSucceeded,
			expectedError: true,
		},
		{
			name:          "charge result is not admissible while reserving",
			state:         StateReserving,
			event:         EventChargeSucceeded,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.state, tt.event)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnexpectedTransition))
				assert.Equal(t, tt.state, next, "state must not change on rejected event")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedState, next)
			}
		})
	}
}

func TestTransitionIsPure(t *testing.T) {
	// Same input, same output, regardless of how often it is applied.
	for i := 0; i < 100; i++ {
		next, err := Transition(StateCharging, EventChargeFailed)
		assert.NoError(t, err)
		assert.Equal(t, StateCompensating, next)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StateConfirmed.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.False(t, StateManualReview.Terminal(), "manual review is reported, not terminal")
	assert.False(t, StateCompensating.Terminal())
	assert.False(t, StateCreated.Terminal())
}

func TestStepFor(t *testing.T) {
	tests := []struct {
		state    State
		step     StepKind
		inFlight bool
	}{
		{StateReserving, StepReserve, true},
		{StateCharging, StepCharge, true},
		{StateCompensating, StepRelease, true},
		{StateReserved, "", false},
		{StateConfirmed, "", false},
	}

	for _, tt := range tests {
		step, ok := StepFor(tt.state)
		assert.Equal(t, tt.inFlight, ok)
		if tt.inFlight {
			assert.Equal(t, tt.step, step)
		}
	}
}

func TestResultEvent(t *testing.T) {
	ev, ok := ResultEvent(StepReserve, true)
	assert.True(t, ok)
	assert.Equal(t, EventReserveSucceeded, ev)

	ev, ok = ResultEvent(StepCharge, false)
	assert.True(t, ok)
	assert.Equal(t, EventChargeFailed, ev)

	_, ok = ResultEvent(StepNotify, true)
	assert.False(t, ok, "notify results never drive transitions")

	_, ok = ResultEvent(StepRefund, false)
	assert.False(t, ok, "refund results never drive transitions")
}
