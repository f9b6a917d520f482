package handlers

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/application"
	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/events"
)

// StepResultEventHandlers consumes worker step results from the queue and
// feeds them into the saga.
type StepResultEventHandlers struct {
	handleStepResult *application.HandleStepResult
}

// NewStepResultEventHandlers creates new step result event handlers
func NewStepResultEventHandlers(handleStepResult *application.HandleStepResult) *StepResultEventHandlers {
	return &StepResultEventHandlers{
		handleStepResult: handleStepResult,
	}
}

// Handle implements the events.EventHandler interface. Domain-level
// rejections are logged and acknowledged: redelivering an unknown job or an
// inadmissible transition can never make it valid. Infrastructure errors
// propagate so the message is redelivered.
func (h *StepResultEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.StepCompletedEvent, events.StepFailedEvent:
	default:
		return nil
	}

	if !event.Topic.Matches(events.StepResultTopicPattern) {
		return nil
	}

	var data events.StepResultData
	if err := event.UnmarshalPayload(&data); err != nil {
		log.Printf("step result handler: undecodable payload for event %s: %v", event.ID, err)
		return nil
	}

	cmd := &application.StepResultCommand{
		BookingID:  data.BookingID,
		Step:       data.Step,
		Succeeded:  data.Succeeded,
		Reference:  data.Reference,
		ReasonCode: data.ReasonCode,
		Message:    data.Message,
		Attempt:    data.Attempt,
	}

	if err := h.handleStepResult.Execute(ctx, cmd); err != nil {
		if domain.IsUnknownJobError(err) || domain.IsUnexpectedTransitionError(err) {
			log.Printf("step result handler: dropping result for booking %s: %v", data.BookingID, err)
			return nil
		}
		return errors.Wrap(err, "failed to handle step result")
	}

	return nil
}

// HandlerID returns the unique identifier for this event handler
func (h *StepResultEventHandlers) HandlerID() string {
	return "booking-coordinator-step-results"
}
