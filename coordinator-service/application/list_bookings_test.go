package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/coordinator-service/mocks"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestListBookings_Execute(t *testing.T) {
	userID := models.ID("550e8400-e29b-41d4-a716-446655440010")

	tests := []struct {
		name          string
		query         *ListBookingsQuery
		setupMocks    func(*mocks.MockBookingRepository)
		expectedError string
		verify        func(*testing.T, *ListBookingsResponse)
	}{
		{
			name:  "lists all bookings of the user",
			query: &ListBookingsQuery{UserID: userID.String()},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository) {
				confirmed := bookingAt(t, models.ID(testBookingID), saga.StateConfirmed)
				cancelled := bookingAt(t, models.ID("550e8400-e29b-41d4-a716-446655440002"), saga.StateCancelled)
				cancelled.ReasonCode = domain.ReasonSeatsUnavailable

				bookingRepo.EXPECT().FindByUserID(mock.Anything, userID).
					Return([]*domain.Booking{confirmed, cancelled}, nil).Once()
			},
			verify: func(t *testing.T, resp *ListBookingsResponse) {
				assert.Equal(t, userID.String(), resp.UserID)
				assert.Len(t, resp.Bookings, 2)
				assert.Equal(t, testBookingID, resp.Bookings[0].BookingID)
				assert.Equal(t, string(saga.StateConfirmed), resp.Bookings[0].State)
				assert.Equal(t, domain.ReasonSeatsUnavailable, resp.Bookings[1].ReasonCode)
			},
		},
		{
			name:  "user with no bookings gets an empty list",
			query: &ListBookingsQuery{UserID: userID.String()},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository) {
				bookingRepo.EXPECT().FindByUserID(mock.Anything, userID).
					Return([]*domain.Booking{}, nil).Once()
			},
			verify: func(t *testing.T, resp *ListBookingsResponse) {
				assert.Empty(t, resp.Bookings)
			},
		},
		{
			name:  "repository error",
			query: &ListBookingsQuery{UserID: userID.String()},
			setupMocks: func(bookingRepo *mocks.MockBookingRepository) {
				bookingRepo.EXPECT().FindByUserID(mock.Anything, userID).
					Return(nil, errors.New("database error")).Once()
			},
			expectedError: "failed to load bookings",
		},
		{
			name:          "invalid user ID",
			query:         &ListBookingsQuery{UserID: "not-a-uuid"},
			setupMocks:    func(bookingRepo *mocks.MockBookingRepository) {},
			expectedError: "is not a valid ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBookingRepo := mocks.NewMockBookingRepository(t)

			tt.setupMocks(mockBookingRepo)

			useCase := NewListBookings(mockBookingRepo)

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
