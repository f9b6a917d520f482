package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/coordinator-service/mocks"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestReconcileTimeouts_Execute(t *testing.T) {
	bookingID := models.ID(testBookingID)

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockBookingRepository, *mocks.MockSagaRepository, *mocks.MockQueue, *mocks.MockTransitionLog, *mocks.MockPublisher)
		expectedReport ReconcileReport
	}{
		{
			name: "nothing stalled",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return(nil, nil).Once()
			},
			expectedReport: ReconcileReport{},
		},
		{
			name: "stalled reserve under budget is re-dispatched with backoff",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				instance := sagaAt(t, bookingID, appliedEvent{event: saga.EventReserveRequested})
				instance.RecordAttempt(saga.StepReserve)

				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*domain.SagaInstance{instance}, nil).Once()
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateReserving), nil).Once()

				sagaRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s *domain.SagaInstance) bool {
					return s.State == saga.StateReserving && s.AttemptCount(saga.StepReserve) == 2
				})).Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(job *queue.Job) bool {
					return job.Step == saga.StepReserve &&
						job.Attempt == 2 &&
						job.NotBefore.After(time.Now())
				})).Return(nil).Once()
			},
			expectedReport: ReconcileReport{Requeued: 1},
		},
		{
			name: "reserve over budget cancels the booking",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				instance := sagaAt(t, bookingID, appliedEvent{event: saga.EventReserveRequested})
				for i := 0; i < 3; i++ {
					instance.RecordAttempt(saga.StepReserve)
				}

				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*domain.SagaInstance{instance}, nil).Once()
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateReserving), nil).Once()

				bookingRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
					return b.State == saga.StateCancelled && b.ReasonCode == domain.ReasonStepTimeout
				})).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s *domain.SagaInstance) bool {
					return s.State == saga.StateCancelled
				})).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, bookingID, mock.MatchedBy(func(logged []*events.Event) bool {
					return len(logged) == 3 && logged[2].EventType == events.BookingDeadLetterEvent
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(job *queue.Job) bool {
					return job.Step == saga.StepNotify
				})).Return(nil).Once()
			},
			expectedReport: ReconcileReport{Failed: 1},
		},
		{
			name: "charge over budget starts compensation",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				instance := sagaAt(t, bookingID,
					appliedEvent{event: saga.EventReserveRequested},
					appliedEvent{event: saga.EventReserveSucceeded, detail: "res-123"},
					appliedEvent{event: saga.EventChargeRequested},
				)
				for i := 0; i < 3; i++ {
					instance.RecordAttempt(saga.StepCharge)
				}

				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*domain.SagaInstance{instance}, nil).Once()
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateCharging), nil).Once()

				bookingRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
					return b.State == saga.StateCompensating && b.ReasonCode == domain.ReasonStepTimeout
				})).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s *domain.SagaInstance) bool {
					return s.State == saga.StateCompensating && s.AttemptCount(saga.StepRelease) == 1
				})).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, bookingID, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				jobQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(job *queue.Job) bool {
					var payload queue.ReleasePayload
					if job.Step != saga.StepRelease || job.UnmarshalPayload(&payload) != nil {
						return false
					}
					return payload.ReservationRef == "res-123"
				})).Return(nil).Once()
			},
			expectedReport: ReconcileReport{Failed: 1},
		},
		{
			name: "release over budget escalates to manual review",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				instance := sagaAt(t, bookingID,
					appliedEvent{event: saga.EventReserveRequested},
					appliedEvent{event: saga.EventReserveSucceeded, detail: "res-123"},
					appliedEvent{event: saga.EventChargeRequested},
					appliedEvent{event: saga.EventChargeFailed, detail: "payment_declined"},
				)
				for i := 0; i < 3; i++ {
					instance.RecordAttempt(saga.StepRelease)
				}

				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*domain.SagaInstance{instance}, nil).Once()
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateCompensating), nil).Once()

				bookingRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
					return b.State == saga.StateManualReview && b.ReasonCode == domain.ReasonDeadLetter
				})).Return(nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(s *domain.SagaInstance) bool {
					// The step clock stops; operators own the next move.
					return s.State == saga.StateManualReview && s.StepStartedAt == nil
				})).Return(nil).Once()
				transitionLog.EXPECT().Append(mock.Anything, bookingID, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil).Once()
				// No jobs: manual review is not terminal and drives no step.
			},
			expectedReport: ReconcileReport{Failed: 1},
		},
		{
			name: "version conflict skips the saga for this sweep",
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository, jobQueue *mocks.MockQueue, transitionLog *mocks.MockTransitionLog, publisher *mocks.MockPublisher) {
				instance := sagaAt(t, bookingID, appliedEvent{event: saga.EventReserveRequested})
				instance.RecordAttempt(saga.StepReserve)

				sagaRepo.EXPECT().FindStalled(mock.Anything, mock.AnythingOfType("time.Time")).
					Return([]*domain.SagaInstance{instance}, nil).Once()
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateReserving), nil).Once()
				sagaRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.SagaInstance")).
					Return(domain.ErrVersionConflict).Once()
			},
			expectedReport: ReconcileReport{Skipped: 1},
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

			useCase := NewReconcileTimeouts(mockBookingRepo, mockSagaRepo, mockQueue, mockTransitionLog, mockPublisher, DefaultSagaPolicy())

			report, err := useCase.Execute(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedReport, *report)
		})
	}
}
