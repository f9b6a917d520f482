package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestSagaInstance_Apply(t *testing.T) {
	now := time.Now()

	t.Run("happy path walks the full transition chain", func(t *testing.T) {
		instance := NewSagaInstance(models.GenerateUUID())

		chain := []struct {
			event saga.EventKind
			state saga.State
		}{
			{saga.EventReserveRequested, saga.StateReserving},
			{saga.EventReserveSucceeded, saga.StateReserved},
			{saga.EventChargeRequested, saga.StateCharging},
			{saga.EventChargeSucceeded, saga.StateConfirmed},
		}

		for _, step := range chain {
			applied, err := instance.Apply(step.event, "", now)
			require.NoError(t, err)
			assert.True(t, applied)
			assert.Equal(t, step.state, instance.State)
		}

		assert.Len(t, instance.History, 4)
		assert.Nil(t, instance.StepStartedAt)
		assert.True(t, instance.State.Terminal())
	})

	t.Run("duplicate delivery is a no-op, not an error", func(t *testing.T) {
		instance := NewSagaInstance(models.GenerateUUID())

		_, err := instance.Apply(saga.EventReserveRequested, "", now)
		require.NoError(t, err)
		_, err = instance.Apply(saga.EventReserveSucceeded, "res-1", now)
		require.NoError(t, err)

		version := instance.Version

		applied, err := instance.Apply(saga.EventReserveSucceeded, "res-1", now)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Len(t, instance.History, 2)
		assert.Equal(t, version, instance.Version)
	})

	t.Run("unseen inadmissible event is an unexpected transition", func(t *testing.T) {
		instance := NewSagaInstance(models.GenerateUUID())

		applied, err := instance.Apply(saga.EventChargeSucceeded, "", now)
		assert.False(t, applied)
		assert.True(t, IsUnexpectedTransitionError(err))
	})

	t.Run("entering compensating sets the flag for good", func(t *testing.T) {
		instance := NewSagaInstance(models.GenerateUUID())

		for _, event := range []saga.EventKind{
			saga.EventReserveRequested,
			saga.EventReserveSucceeded,
			saga.EventChargeRequested,
			saga.EventChargeFailed,
		} {
			_, err := instance.Apply(event, "", now)
			require.NoError(t, err)
		}
		assert.True(t, instance.Compensating)

		_, err := instance.Apply(saga.EventReleaseSucceeded, "", now)
		require.NoError(t, err)
		assert.Equal(t, saga.StateCancelled, instance.State)
		assert.True(t, instance.Compensating)
	})

	t.Run("step clock follows the step in flight", func(t *testing.T) {
		instance := NewSagaInstance(models.GenerateUUID())

		_, err := instance.Apply(saga.EventReserveRequested, "", now)
		require.NoError(t, err)
		require.NotNil(t, instance.StepStartedAt)
		assert.Equal(t, now, *instance.StepStartedAt)

		_, err = instance.Apply(saga.EventReserveSucceeded, "", now)
		require.NoError(t, err)
		assert.Nil(t, instance.StepStartedAt)
	})
}

func TestSagaInstance_ApplyResult(t *testing.T) {
	now := time.Now()

	// compensating walks a saga to the state where release failures loop
	compensating := func(t *testing.T) *SagaInstance {
		t.Helper()
		instance := NewSagaInstance(models.GenerateUUID())
		for _, event := range []saga.EventKind{
			saga.EventReserveRequested,
			saga.EventReserveSucceeded,
			saga.EventChargeRequested,
			saga.EventChargeFailed,
		} {
			_, err := instance.Apply(event, "", now)
			require.NoError(t, err)
		}
		return instance
	}

	t.Run("records the dispatch attempt on the history entry", func(t *testing.T) {
		instance := compensating(t)

		applied, err := instance.ApplyResult(saga.EventReleaseFailed, "step_timeout", 1, now)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, saga.StateCompensating, instance.State)
		assert.Equal(t, 1, instance.History[len(instance.History)-1].Attempt)
		assert.True(t, instance.SeenResult(saga.EventReleaseFailed, 1))
		assert.False(t, instance.SeenResult(saga.EventReleaseFailed, 2))
	})

	t.Run("redelivered self-loop event is a no-op, not another loop", func(t *testing.T) {
		instance := compensating(t)

		_, err := instance.ApplyResult(saga.EventReleaseFailed, "step_timeout", 1, now)
		require.NoError(t, err)

		historyLen := len(instance.History)
		version := instance.Version

		applied, err := instance.ApplyResult(saga.EventReleaseFailed, "step_timeout", 1, now)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Len(t, instance.History, historyLen)
		assert.Equal(t, version, instance.Version)
	})

	t.Run("a later attempt of the same event still applies", func(t *testing.T) {
		instance := compensating(t)

		_, err := instance.ApplyResult(saga.EventReleaseFailed, "step_timeout", 1, now)
		require.NoError(t, err)

		applied, err := instance.ApplyResult(saga.EventReleaseFailed, "step_timeout", 2, now)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, instance.SeenResult(saga.EventReleaseFailed, 2))
	})
}

func TestSagaInstance_DetailFor(t *testing.T) {
	now := time.Now()
	instance := NewSagaInstance(models.GenerateUUID())

	_, err := instance.Apply(saga.EventReserveRequested, "", now)
	require.NoError(t, err)
	_, err = instance.Apply(saga.EventReserveSucceeded, "res-1", now)
	require.NoError(t, err)

	detail, ok := instance.DetailFor(saga.EventReserveSucceeded)
	assert.True(t, ok)
	assert.Equal(t, "res-1", detail)

	_, ok = instance.DetailFor(saga.EventChargeSucceeded)
	assert.False(t, ok)
}

func TestSagaInstance_StepTimedOut(t *testing.T) {
	now := time.Now()
	timeout := 30 * time.Second

	instance := NewSagaInstance(models.GenerateUUID())
	assert.False(t, instance.StepTimedOut(now, timeout))

	_, err := instance.Apply(saga.EventReserveRequested, "", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, instance.StepTimedOut(now, timeout))

	instance.RestartStep(now)
	assert.False(t, instance.StepTimedOut(now, timeout))
}

func TestSagaInstance_RecordAttempt(t *testing.T) {
	instance := NewSagaInstance(models.GenerateUUID())

	assert.Equal(t, 0, instance.AttemptCount(saga.StepReserve))
	assert.Equal(t, 1, instance.RecordAttempt(saga.StepReserve))
	assert.Equal(t, 2, instance.RecordAttempt(saga.StepReserve))
	assert.Equal(t, 1, instance.RecordAttempt(saga.StepRelease))
	assert.Equal(t, 2, instance.AttemptCount(saga.StepReserve))
}
