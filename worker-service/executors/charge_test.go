package executors_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
	"github.com/ticketflow/booking-system/worker-service/executors"
	"github.com/ticketflow/booking-system/worker-service/mocks"
)

const testBookingID = "550e8400-e29b-41d4-a716-446655440001"

func chargeJob(t *testing.T) (*queue.Job, string) {
	t.Helper()

	bookingID := models.ID(testBookingID)
	key := queue.IdempotencyKey(bookingID, saga.StepCharge)
	job, err := queue.NewJob(bookingID, saga.StepCharge, queue.ChargePayload{
		UserID:         "550e8400-e29b-41d4-a716-446655440010",
		Amount:         models.NewMoney(5000, "USD"),
		IdempotencyKey: key,
	})
	require.NoError(t, err)
	return job, key
}

func TestChargeExecutor_Execute(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*testing.T, *mocks.MockPaymentClient, *mocks.MockIdempotencyStore, string)
		expectedResult *executors.Result
		expectedError  string
	}{
		{
			name: "charge applied and recorded",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				payments.EXPECT().Charge(mock.Anything, mock.MatchedBy(func(req executors.ChargeRequest) bool {
					return req.IdempotencyKey == key && req.Amount.Amount == 5000
				})).Return("chg-1", nil).Once()
				store.EXPECT().Record(mock.Anything, key, "chg-1").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "chg-1"},
		},
		{
			name: "redelivered job returns the recorded reference without charging again",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).
					Return(&executors.IdempotencyRecord{Key: key, Applied: true, Reference: "chg-1"}, nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "chg-1"},
		},
		{
			name: "unresolved claim recovered from the collaborator",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(false, nil).Once()
				payments.EXPECT().Lookup(mock.Anything, key).Return("chg-1", true, nil).Once()
				store.EXPECT().Record(mock.Anything, key, "chg-1").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "chg-1"},
		},
		{
			name: "unresolved claim with no money moved proceeds to charge",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(false, nil).Once()
				payments.EXPECT().Lookup(mock.Anything, key).Return("", false, nil).Once()
				payments.EXPECT().Charge(mock.Anything, mock.AnythingOfType("executors.ChargeRequest")).
					Return("chg-2", nil).Once()
				store.EXPECT().Record(mock.Anything, key, "chg-2").Return(nil).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeSuccess, Reference: "chg-2"},
		},
		{
			name: "declined charge is permanent",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				payments.EXPECT().Charge(mock.Anything, mock.AnythingOfType("executors.ChargeRequest")).
					Return("", &executors.PermanentError{ReasonCode: "payment_declined", Cause: "insufficient funds"}).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomePermanent, ReasonCode: "payment_declined", Message: "insufficient funds"},
		},
		{
			name: "collaborator timeout is retryable",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, nil).Once()
				store.EXPECT().Claim(mock.Anything, key).Return(true, nil).Once()
				payments.EXPECT().Charge(mock.Anything, mock.AnythingOfType("executors.ChargeRequest")).
					Return("", &executors.TransientError{Cause: "request timed out"}).Once()
			},
			expectedResult: &executors.Result{Outcome: executors.OutcomeRetryable, Message: "request timed out"},
		},
		{
			name: "idempotency store unavailable",
			setupMocks: func(t *testing.T, payments *mocks.MockPaymentClient, store *mocks.MockIdempotencyStore, key string) {
				store.EXPECT().Get(mock.Anything, key).Return(nil, errors.New("redis down")).Once()
			},
			expectedError: "failed to read idempotency record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := mocks.NewMockPaymentClient(t)
			mockStore := mocks.NewMockIdempotencyStore(t)

			job, key := chargeJob(t)
			tt.setupMocks(t, mockPayments, mockStore, key)

			executor := executors.NewChargeExecutor(mockPayments, mockStore)

			result, err := executor.Execute(context.Background(), job)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}
		})
	}
}

func TestChargeExecutor_BadPayload(t *testing.T) {
	mockPayments := mocks.NewMockPaymentClient(t)
	mockStore := mocks.NewMockIdempotencyStore(t)

	bookingID := models.ID(testBookingID)
	job, err := queue.NewJob(bookingID, saga.StepCharge, []string{"not", "a", "charge"})
	require.NoError(t, err)

	mockStore.EXPECT().Get(mock.Anything, queue.IdempotencyKey(bookingID, saga.StepCharge)).
		Return(nil, nil).Once()

	executor := executors.NewChargeExecutor(mockPayments, mockStore)

	result, err := executor.Execute(context.Background(), job)

	assert.NoError(t, err)
	assert.Equal(t, executors.OutcomePermanent, result.Outcome)
	assert.Equal(t, "bad_payload", result.ReasonCode)
}
