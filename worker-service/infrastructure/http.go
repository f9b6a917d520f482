package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/worker-service/executors"
)

const defaultClientTimeout = 10 * time.Second

// errorBody is the error shape the collaborator services respond with
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doJSON performs a JSON request and decodes the response into out (when out
// is non-nil and the response succeeded). Network failures and 5xx map to
// TransientError, 4xx to PermanentError carrying the collaborator's code.
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &executors.TransientError{Cause: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &executors.TransientError{Cause: resp.Status}
	}

	if resp.StatusCode >= 400 {
		var parsed errorBody
		code := "rejected"
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Error.Code != "" {
			code = parsed.Error.Code
			message = parsed.Error.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			code = "not_found"
		}
		return &executors.PermanentError{ReasonCode: code, Cause: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &executors.TransientError{Cause: "undecodable response: " + err.Error()}
		}
	}

	return nil
}
