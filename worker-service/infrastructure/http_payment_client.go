package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/worker-service/executors"
)

// HTTPPaymentClient implements executors.PaymentClient against the payment
// service's REST API. Charges carry the idempotency key in a header; the
// payment service applies each key at most once and answers lookups by key.
type HTTPPaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPPaymentClient creates a new HTTPPaymentClient
func NewHTTPPaymentClient(baseURL string) *HTTPPaymentClient {
	return &HTTPPaymentClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
}

type chargeRequest struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type chargeResponse struct {
	ChargeRef string `json:"charge_ref"`
	Status    string `json:"status"`
}

type refundRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type refundResponse struct {
	RefundRef string `json:"refund_ref"`
}

// Charge moves money for a booking
func (c *HTTPPaymentClient) Charge(ctx context.Context, req executors.ChargeRequest) (string, error) {
	url := fmt.Sprintf("%s/api/payments/charge", c.baseURL)
	headers := map[string]string{"Idempotency-Key": req.IdempotencyKey}

	var resp chargeResponse
	err := doJSON(ctx, c.httpClient, http.MethodPost, url, headers, chargeRequest{
		BookingID: req.BookingID.String(),
		UserID:    req.UserID.String(),
		Amount:    req.Amount.Amount,
		Currency:  req.Amount.Currency,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.ChargeRef, nil
}

// Lookup reports whether a charge with the idempotency key was applied
func (c *HTTPPaymentClient) Lookup(ctx context.Context, idempotencyKey string) (string, bool, error) {
	url := fmt.Sprintf("%s/api/payments/%s", c.baseURL, idempotencyKey)

	var resp chargeResponse
	err := doJSON(ctx, c.httpClient, http.MethodGet, url, nil, nil, &resp)
	if err != nil {
		var permanent *executors.PermanentError
		if errors.As(err, &permanent) && permanent.ReasonCode == "not_found" {
			return "", false, nil
		}
		return "", false, err
	}

	return resp.ChargeRef, resp.Status == "applied", nil
}

// Refund returns money for a charge
func (c *HTTPPaymentClient) Refund(ctx context.Context, chargeRef string, amount models.Money) (string, error) {
	url := fmt.Sprintf("%s/api/payments/%s/refund", c.baseURL, chargeRef)

	var resp refundResponse
	err := doJSON(ctx, c.httpClient, http.MethodPost, url, nil, refundRequest{
		Amount:   amount.Amount,
		Currency: amount.Currency,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.RefundRef, nil
}
