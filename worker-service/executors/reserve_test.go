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

func reserveJob(t *testing.T) (*queue.Job, string) {
	t.Helper()

	bookingID := models.ID(testBookingID)
	job, err := queue.NewJob(bookingID, saga.StepReserve, queue.ReservePayload{
		EventID:     "550e8400-e29b-41d4-a716-446655440020",
		UserID:      "550e8400-e29b-41d4-a716-446655440010",
		Seats:       2,
		SeatNumbers: []string{"A1", "A2"},
	})
	require.NoError(t, err)
	return job, queue.IdempotencyKey(bookingID, saga.StepReserve)
}

func TestReserveExecutor_Execute(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockReservationClient, *mocks.MockIdempotencyStore, string)
		expectedResult *executors.Result
	}{
		{
			name: "seats held and reference recorded",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Reserve(mock.Anything, mock.MatchedBy(func(req executors.ReserveRequest) bool {
					return req.Seats == 2 && len(req.SeatNumbers) == 2
				})).Return("res-1", nil).Once()
				store.EXPECT().Record(mock.Anything, key, "res-1").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "res-1"},
		},
		{
			name: "redelivered job reuses the recorded reservation",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).
					Return(&executors.IdempotencyRecord{Key: key, Applied: true, Reference: "res-1"}, nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "res-1"},
		},
		{
			name: "seats unavailable is permanent",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Reserve(mock.Anything, mock.AnythingOfType("executors.ReserveRequest")).
					Return("", &executors.PermanentError{ReasonCode: "seats_unavailable", Cause: "sold out"}).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomePermanent, ReasonCode: "seats_unavailable", Message: "sold out"},
		},
		{
			name: "collaborator outage is retryable",
			setupMocks: func(reservations *mocks.MockReservationClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				reservations.EXPECT().Reserve(mock.Anything, mock.AnythingOfType("executors.ReserveRequest")).
					Return("", &executors.TransientError{Cause: "connection refused"}).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeRetryable, Message: "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReservations := mocks.NewMockReservationClient(t)
			mockStore := mocks.NewMockIdempotencyStore(t)

			job, key := reserveJob(t)
			tt.setupMocks(mockReservations, mockStore, key)

			executor := executors.NewReserveExecutor(mockReservations, mockStore)

			result, err := executor.Execute(context.Background(), job)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}
