package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/worker-service/executors"
)

// HTTPReservationClient implements executors.ReservationClient against the
// reservation service's REST API.
type HTTPReservationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPReservationClient creates a new HTTPReservationClient
func NewHTTPReservationClient(baseURL string) *HTTPReservationClient {
	return &HTTPReservationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
}

type reserveRequest struct {
	BookingID   string   `json:"booking_id"`
	UserID      string   `json:"user_id"`
	Seats       int      `json:"seats"`
	SeatNumbers []string `json:"seat_numbers,omitempty"`
}

type reserveResponse struct {
	ReservationRef string `json:"reservation_ref"`
}

type releaseRequest struct {
	BookingID string `json:"booking_id"`
}

// Reserve holds seats for a booking. The reservation service dedupes by
// booking ID, so retrying a timed-out reserve holds the seats once.
func (c *HTTPReservationClient) Reserve(ctx context.Context, req executors.ReserveRequest) (string, error) {
	url := fmt.Sprintf("%s/api/events/%s/reserve", c.baseURL, req.EventID)

	var resp reserveResponse
	err := doJSON(ctx, c.httpClient, http.MethodPost, url, nil, reserveRequest{
		BookingID:   req.BookingID.String(),
		UserID:      req.UserID.String(),
		Seats:       req.Seats,
		SeatNumbers: req.SeatNumbers,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.ReservationRef, nil
}

// Release frees a held reservation by reference, or by booking when the
// reference never made it back to the coordinator.
func (c *HTTPReservationClient) Release(ctx context.Context, ref string, eventID, bookingID models.ID) error {
	if ref != "" {
		url := fmt.Sprintf("%s/api/reservations/%s/release", c.baseURL, ref)
		return doJSON(ctx, c.httpClient, http.MethodPost, url, nil, nil, nil)
	}

	url := fmt.Sprintf("%s/api/events/%s/release", c.baseURL, eventID)
	return doJSON(ctx, c.httpClient, http.MethodPost, url, nil, releaseRequest{
		BookingID: bookingID.String(),
	}, nil)
}
