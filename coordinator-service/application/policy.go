package application

import (
	"time"

	"github.com/ticketflow/booking-system/shared/saga"
)

// SagaPolicy holds the retry budgets and step deadline the coordinator
// enforces. Values come from config; the defaults match production.
type SagaPolicy struct {
	StepTimeout       time.Duration
	ReconcileInterval time.Duration
	ReserveBudget     int
	ChargeBudget      int
	ReleaseBudget     int
}

// DefaultSagaPolicy returns the production defaults
func DefaultSagaPolicy() SagaPolicy {
	return SagaPolicy{
		StepTimeout:       30 * time.Second,
		ReconcileInterval: 10 * time.Second,
		ReserveBudget:     3,
		ChargeBudget:      3,
		ReleaseBudget:     3,
	}
}

// BudgetFor returns the attempt budget for a step
func (p SagaPolicy) BudgetFor(step saga.StepKind) int {
	switch step {
	case saga.StepReserve:
		return p.ReserveBudget
	case saga.StepCharge:
		return p.ChargeBudget
	case saga.StepRelease:
		return p.ReleaseBudget
	default:
		return p.ReserveBudget
	}
}
