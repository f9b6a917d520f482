package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/coordinator-service/mocks"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestGetBookingHistory_Execute(t *testing.T) {
	bookingID := models.ID(testBookingID)

	tests := []struct {
		name          string
		query         *GetBookingHistoryQuery
		setupMocks    func(*mocks.MockBookingRepository, *mocks.MockTransitionLog)
		expectedError string
		verify        func(*testing.T, *BookingHistoryResponse)
	}{
		{
			name:  "history returns the logged transitions in order",
			query: &GetBookingHistoryQuery{BookingID: testBookingID},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, transitionLog *mocks.MockTransitionLog) {
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateCancelled), nil).Once()

				logged := []*events.Event{
					events.NewEvent(bookingID, events.BookingCreatedEvent, nil),
					events.NewEvent(bookingID, events.BookingStateChangedEvent, nil),
					events.NewEvent(bookingID, events.BookingCancelledEvent, nil),
				}
				transitionLog.EXPECT().History(mock.Anything, bookingID).Return(logged, nil).Once()
			},
			verify: func(t *testing.T, resp *BookingHistoryResponse) {
				assert.Equal(t, testBookingID, resp.BookingID)
				assert.Len(t, resp.Transitions, 3)
				assert.Equal(t, events.BookingCreatedEvent, resp.Transitions[0].EventType)
				assert.Equal(t, events.BookingCancelledEvent, resp.Transitions[2].EventType)
			},
		},
		{
			name:  "booking with nothing logged yet gets an empty trail",
			query: &GetBookingHistoryQuery{BookingID: testBookingID},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, transitionLog *mocks.MockTransitionLog) {
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateCreated), nil).Once()
				transitionLog.EXPECT().History(mock.Anything, bookingID).
					Return([]*events.Event{}, nil).Once()
			},
			verify: func(t *testing.T, resp *BookingHistoryResponse) {
				assert.Empty(t, resp.Transitions)
			},
		},
		{
			name:  "unknown booking",
			query: &GetBookingHistoryQuery{BookingID: testBookingID},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, transitionLog *mocks.MockTransitionLog) {
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(nil, domain.ErrBookingNotFound).Once()
			},
			expectedError: "failed to load booking",
		},
		{
			name:          "invalid booking ID",
			query:         &GetBookingHistoryQuery{BookingID: "not-a-uuid"},
			setupMocks:    func(bookingRepo *mocks.MockBookingRepository, transitionLog *mocks.MockTransitionLog) {},
			expectedError: "is not a valid ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookingRepo := mocks.NewMockBookingRepository(t)
			mockTransitionLog := mocks.NewMockTransitionLog(t)

			tt.setupMocks(mockBookingRepo, mockTransitionLog)

			useCase := NewGetBookingHistory(mockBookingRepo, mockTransitionLog)

			result, err := useCase.Execute(context.Background(), tt.query)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				tt.verify(t, result)
			}
		})
	}
}
