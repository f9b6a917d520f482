package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/coordinator-service/mocks"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestCreateBooking_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *CreateBookingCommand
		setupMocks    func(*mocks.MockBookingRepository, *mocks.MockSagaRepository, *mocks.MockQueue, *mocks.MockTransitionLog, *mocks.MockPublisher)
		expectedError string
		expectedState string
	}{
		{
			name: "successful booking creation dispatches reserve",
			command: &CreateBookingCommand{
				UserID:   "550e8400-e29b-41d4-a716-446655440010",
				EventID:  "550e8400-e29b-41d4-a716-446655440020",
				Seats:    2,
				Amount:   5000,
				Currency: "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				bookingRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
					return b.State == saga.StateReserving
				})).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s *domain.SagaInstance) bool {
					return s.State == saga.StateReserving && s.AttemptCount(saga.StepReserve) == 1
				})).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything,
					mock.MatchedBy(func(evt *events.Event) bool {
						return evt.EventType == events.BookingCreatedEvent
					}),
					mock.MatchedBy(func(evt *events.Event) bool {
						return evt.EventType == events.BookingStateChangedEvent
					}),
				).Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(job *queue.Job) bool {
					return job.Step == saga.StepReserve && job.Attempt == 1
				})).Return(nil).Once()
			},
			expectedState: string(saga.StateReserving),
		},
		{
			name: "seat numbers are carried on the reserve job",
			command: &CreateBookingCommand{
				UserID:      "550e8400-e29b-41d4-a716-446655440010",
				EventID:     "550e8400-e29b-41d4-a716-446655440020",
				Seats:       2,
				SeatNumbers: []string{"A1", "A2"},
				Amount:      5000,
				Currency:    "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				bookingRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.SagaInstance")).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(job *queue.Job) bool {
					var payload queue.ReservePayload
					if err := job.UnmarshalPayload(&payload); err != nil {
						return false
					}
					return len(payload.SeatNumbers) == 2 && payload.Seats == 2
				})).Return(nil).Once()
			},
			expectedState: string(saga.StateReserving),
		},
		{
			name: "invalid user ID",
			command: &CreateBookingCommand{
				UserID:   "not-a-uuid",
				EventID:  "550e8400-e29b-41d4-a716-446655440020",
				Seats:    1,
				Amount:   5000,
				Currency: "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				// No expectations - should fail before calling mocks
			},
			expectedError: "is not a valid ID",
		},
		{
			name: "zero seats",
			command: &CreateBookingCommand{
				UserID:   "550e8400-e29b-41d4-a716-446655440010",
				EventID:  "550e8400-e29b-41d4-a716-446655440020",
				Seats:    0,
				Amount:   5000,
				Currency: "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "must be positive",
		},
		{
			name: "seat numbers not matching seat count",
			command: &CreateBookingCommand{
				UserID:      "550e8400-e29b-41d4-a716-446655440010",
				EventID:     "550e8400-e29b-41d4-a716-446655440020",
				Seats:       3,
				SeatNumbers: []string{"A1"},
				Amount:      5000,
				Currency:    "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "must match seat count",
		},
		{
			name: "empty currency",
			command: &CreateBookingCommand{
				UserID:  "550e8400-e29b-41d4-a716-446655440010",
				EventID: "550e8400-e29b-41d4-a716-446655440020",
				Seats:   1,
				Amount:  5000,
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "is required",
		},
		{
			name: "booking save error",
			command: &CreateBookingCommand{
				UserID:   "550e8400-e29b-41d4-a716-446655440010",
				EventID:  "550e8400-e29b-41d4-a716-446655440020",
				Seats:    1,
				Amount:   5000,
				Currency: "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				bookingRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Booking")).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save booking",
		},
		{
			name: "enqueue error after persisting",
			command: &CreateBookingCommand{
				UserID:   "550e8400-e29b-41d4-a716-446655440010",
				EventID:  "550e8400-e29b-41d4-a716-446655440020",
				Seats:    1,
				Amount:   5000,
				Currency: "USD",
			},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				bookingRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.SagaInstance")).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.AnythingOfType("*queue.Job")).
					Return(errors.New("broker unavailable")).Once()
			},
			expectedError: "failed to enqueue reserve job",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookingRepo := mocks.NewMockBookingRepository(t)
			mockSagaRepo := mocks.NewMockSagaRepository(t)
			mockQueue := mocks.NewMockQueue(t)
			mockTransitionLog := mocks.NewMockTransitionLog(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockBookingRepo, mockSagaRepo, mockQueue, mockTransitionLog, mockPublisher)

			useCase := NewCreateBooking(mockBookingRepo, mockSagaRepo, mockQueue, mockTransitionLog, mockPublisher)

			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, tt.expectedState, result.State)

				_, err := models.NewID(result.BookingID)
				assert.NoError(t, err)
			}
		})
	}
}
