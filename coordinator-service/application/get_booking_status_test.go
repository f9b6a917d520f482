package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/coordinator-service/mocks"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestGetBookingStatus_Execute(t *testing.T) {
	bookingID := models.ID(testBookingID)

	tests := []struct {
		name          string
		query         *GetBookingStatusQuery
		setupMocks    func(*mocks.MockBookingRepository, *mocks.MockSagaRepository)
		expectedError string
		verify        func(*testing.T, *BookingStatusResponse)
	}{
		{
			name:  "status includes the full saga history",
			query: &GetBookingStatusQuery{BookingID: testBookingID},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository) {
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(bookingAt(t, bookingID, saga.StateCharging), nil).Once()
				sagaRepo.EXPECT().FindByBookingID(mock.Anything, bookingID).
					Return(sagaAt(t, bookingID,
						appliedEvent{event: saga.EventReserveRequested},
						appliedEvent{event: saga.EventReserveSucceeded, detail: "res-123"},
						appliedEvent{event: saga.EventChargeRequested},
					), nil).Once()
			},
			verify: func(t *testing.T, resp *BookingStatusResponse) {
				assert.Equal(t, string(saga.StateCharging), resp.State)
				assert.Len(t, resp.History, 3)
				assert.Equal(t, string(saga.EventReserveSucceeded), resp.History[1].Event)
				assert.Equal(t, "res-123", resp.History[1].Detail)
			},
		},
		{
			name:  "unknown booking",
			query: &GetBookingStatusQuery{BookingID: testBookingID},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository) {
				bookingRepo.EXPECT().FindByID(mock.Anything, bookingID).
					Return(nil, domain.ErrBookingNotFound).Once()
			},
			expectedError: "failed to load booking",
		},
		{
			name:          "invalid booking ID",
			query:         &GetBookingStatusQuery{BookingID: "not-a-uuid"},
			setupMocks:    func(bookingRepo *mocks.MockBookingRepository, sagaRepo *mocks.MockSagaRepository) {},
			expectedError: "is not a valid ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookingRepo := mocks.NewMockBookingRepository(t)
			mockSagaRepo := mocks.NewMockSagaRepository(t)

			tt.setupMocks(mockBookingRepo, mockSagaRepo)

			useCase := NewGetBookingStatus(mockBookingRepo, mockSagaRepo)

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
