package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ticketflow/booking-system/worker-service/executors"
)

// HTTPNotificationClient implements executors.NotificationClient against the
// notification service's REST API.
type HTTPNotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPNotificationClient creates a new HTTPNotificationClient
func NewHTTPNotificationClient(baseURL string) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
}

type notificationRequest struct {
	BookingID  string `json:"booking_id"`
	UserID     string `json:"user_id"`
	EventID    string `json:"event_id"`
	State      string `json:"state"`
	ReasonCode string `json:"reason_code,omitempty"`
	Seats      int    `json:"seats"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

// Send delivers the booking outcome for user-facing fan-out
func (c *HTTPNotificationClient) Send(ctx context.Context, note executors.Notification) error {
	url := fmt.Sprintf("%s/api/notifications", c.baseURL)

	return doJSON(ctx, c.httpClient, http.MethodPost, url, nil, notificationRequest{
		BookingID:  note.BookingID.String(),
		UserID:     note.UserID.String(),
		EventID:    note.EventID.String(),
		State:      note.State,
		ReasonCode: note.ReasonCode,
		Seats:      note.Seats,
		Amount:     note.Amount.Amount,
		Currency:   note.Amount.Currency,
	}, nil)
}
