package application

import (
	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// buildStepJob constructs the job for a step from the booking aggregate and
// the saga's recorded collaborator references.
func buildStepJob(booking *domain.Booking, instance *domain.SagaInstance, step saga.StepKind) (*queue.Job, error) {
	var payload interface{}

	switch step {
	case saga.StepReserve:
		payload = queue.ReservePayload{
			EventID:     booking.EventID,
			UserID:      booking.UserID,
			Seats:       booking.Seats,
			SeatNumbers: booking.SeatNumbers,
		}

	case saga.StepCharge:
		payload = queue.ChargePayload{
			UserID:         booking.UserID,
			Amount:         booking.Amount,
			IdempotencyKey: queue.IdempotencyKey(booking.ID, saga.StepCharge),
		}

	case saga.StepRelease:
		ref, _ := instance.DetailFor(saga.EventReserveSucceeded)
		payload = queue.ReleasePayload{
			EventID:        booking.EventID,
			ReservationRef: ref,
		}

	case saga.StepRefund:
		ref, ok := instance.DetailFor(saga.EventChargeSucceeded)
		if !ok {
			return nil, errors.Errorf("no charge reference recorded for booking %s", booking.ID)
		}
		payload = queue.RefundPayload{
			ChargeRef: ref,
			Amount:    booking.Amount,
		}

	case saga.StepNotify:
		payload = queue.NotifyPayload{
			UserID:     booking.UserID,
			EventID:    booking.EventID,
			State:      booking.State,
			ReasonCode: booking.ReasonCode,
			Seats:      booking.Seats,
			Amount:     booking.Amount,
		}

	default:
		return nil, errors.Errorf("unknown step kind %s", step)
	}

	job, err := queue.NewJob(booking.ID, step, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s job", step)
	}
	return job, nil
}
