package executors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
	"github.com/ticketflow/booking-system/worker-service/executors"
	"github.com/ticketflow/booking-system/worker-service/mocks"
)

const testEventID = "550e8400-e29b-41d4-a716-446655440020"

func releaseJob(t *testing.T, reservationRef string) (*queue.Job, string) {
	t.Helper()

	bookingID := models.ID(testBookingID)
	job, err := queue.NewJob(bookingID, saga.StepRelease, queue.ReleasePayload{
		EventID:        testEventID,
		ReservationRef: reservationRef,
	})
	require.NoError(t, err)
	return job, queue.IdempotencyKey(bookingID, saga.StepRelease)
}

func TestReleaseExecutor_Execute(t *testing.T) {
	bookingID := models.ID(testBookingID)
	eventID := models.ID(testEventID)

	tests := []struct {
		name           string
		reservationRef string
		setupMocks     func(*mocks.MockReservationClient, *mocks.MockIdempotencyStore, string)
		expectedResult *executors.Result
	}{
		{
			name:           "reservation released by reference",
			reservationRef: "res-1",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Release(mock.Anything, "res-1", eventID, bookingID).Return(nil).Once()
				store.EXPECT().Record(mock.Anything, key, "res-1").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "res-1"},
		},
		{
			name:           "release without a reference falls back to the booking",
			reservationRef: "",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Release(mock.Anything, "", eventID, bookingID).Return(nil).Once()
				store.EXPECT().Record(mock.Anything, key, "").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess},
		},
		{
			name:           "unknown reservation counts as released",
			reservationRef: "res-1",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Release(mock.Anything, "res-1", eventID, bookingID).
					Return(&executors.PermanentError{ReasonCode: "not_found", Cause: "reservation not found"}).Once()
				store.EXPECT().Record(mock.Anything, key, "res-1").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "res-1"},
		},
		{
			name:           "redelivered release reuses the record",
			reservationRef: "res-1",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).
					Return(&executors.IdempotencyRecord{Key: key, Applied: true, Reference: "res-1"}, nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "res-1"},
		},
		{
			name:           "collaborator outage is retryable",
			reservationRef: "res-1",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Release(mock.Anything, "res-1", eventID, bookingID).
					Return(&executors.TransientError{Cause: "gateway timeout"}).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeRetryable, Message: "gateway timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReservations := mocks.NewMockReservationClient(t)
			mockStore := mocks.NewMockIdempotencyStore(t)

			job, key := releaseJob(t, tt.reservationRef)
			tt.setupMocks(mockReservations, mockStore, key)

			executor := executors.NewReleaseExecutor(mockReservations, mockStore)

			result, err := executor.Execute(context.Background(), job)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}
