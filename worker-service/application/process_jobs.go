package application

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
	"github.com/ticketflow/booking-system/shared/telemetry"
	"github.com/ticketflow/booking-system/worker-service/executors"
)

// WorkerPolicy bounds job processing: batch width, per-step execution
// deadline, and how many attempts each step gets before the worker reports
// a permanent failure.
type WorkerPolicy struct {
	BatchSize     int
	StepTimeout   time.Duration
	ReserveBudget int
	ChargeBudget  int
	ReleaseBudget int
	RefundBudget  int
	NotifyBudget  int
}

// DefaultWorkerPolicy returns the production defaults
func DefaultWorkerPolicy() WorkerPolicy {
	return WorkerPolicy{
		BatchSize:     10,
		StepTimeout:   15 * time.Second,
		ReserveBudget: 3,
		ChargeBudget:  3,
		ReleaseBudget: 3,
		RefundBudget:  5,
		NotifyBudget:  5,
	}
}

// BudgetFor returns the attempt budget for a step
func (p WorkerPolicy) BudgetFor(step saga.StepKind) int {
	switch step {
	case saga.StepReserve:
		return p.ReserveBudget
	case saga.StepCharge:
		return p.ChargeBudget
	case saga.StepRelease:
		return p.ReleaseBudget
	case saga.StepRefund:
		return p.RefundBudget
	case saga.StepNotify:
		return p.NotifyBudget
	default:
		return p.ReserveBudget
	}
}

// ProcessJobs use case: pull jobs in bounded batches, run the matching
// executor, classify, and report. Retryable failures are re-enqueued with
// backoff until the budget runs out, then reported as permanent. The raw
// collaborator error never reaches the coordinator.
type ProcessJobs struct {
	jobQueue       queue.Queue
	registry       *executors.Registry
	eventPublisher events.Publisher
	policy         WorkerPolicy
}

// NewProcessJobs creates a new ProcessJobs use case
func NewProcessJobs(
	jobQueue queue.Queue,
	registry *executors.Registry,
	eventPublisher events.Publisher,
	policy WorkerPolicy,
) *ProcessJobs {
	return &ProcessJobs{
		jobQueue:       jobQueue,
		registry:       registry,
		eventPublisher: eventPublisher,
		policy:         policy,
	}
}

// Run pulls and processes jobs until the context is cancelled
func (uc *ProcessJobs) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		jobs, err := uc.jobQueue.Dequeue(ctx, uc.policy.BatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("worker: dequeue failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		if len(jobs) == 0 {
			continue
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for _, job := range jobs {
			job := job
			group.Go(func() error {
				uc.process(groupCtx, job)
				return nil
			})
		}
		group.Wait()
	}
}

// process handles one job end to end. Queue errors are logged, not
// propagated: an unacked job reappears after the visibility window.
func (uc *ProcessJobs) process(ctx context.Context, job *queue.Job) {
	now := time.Now()

	if !job.Due(now) {
		// Delivered early by a backend without native delay. Put it back.
		if err := uc.jobQueue.Nack(ctx, job); err != nil {
			log.Printf("worker: nack of early job %s failed: %v", job.ID, err)
		}
		return
	}

	exec, ok := uc.registry.Resolve(job.Step)
	if !ok {
		log.Printf("worker: no executor for step %s, dropping job %s", job.Step, job.ID)
		uc.ack(ctx, job)
		return
	}

	stepCtx, cancel := context.WithTimeout(ctx, uc.policy.StepTimeout)
	result, err := exec.Execute(stepCtx, job)
	cancel()

	elapsed := time.Since(now)
	telemetry.RecordHistogram(ctx, "step_execution_seconds", "Step execution duration", elapsed.Seconds(),
		attribute.String("step", string(job.Step)),
	)

	if err != nil {
		// Infrastructure trouble around the executor itself. Treat like a
		// transient collaborator failure.
		log.Printf("worker: executor error for job %s: %v", job.ID, err)
		result = &executors.Result{Outcome: executors.OutcomeRetryable, Message: err.Error()}
	}

	switch result.Outcome {
	case executors.OutcomeSuccess:
		if uc.report(ctx, job, true, result) {
			uc.ack(ctx, job)
		}

	case executors.OutcomeRetryable:
		if job.Attempt < uc.policy.BudgetFor(job.Step) {
			retry := job.Retry(now)
			if err := uc.jobQueue.Enqueue(ctx, retry); err != nil {
				log.Printf("worker: re-enqueue of job %s failed: %v", job.ID, err)
				// Leave the original unacked so the broker redelivers it.
				return
			}
			telemetry.RecordCounter(ctx, "step_retries_total", "Step retries dispatched", 1,
				attribute.String("step", string(job.Step)),
				attribute.Int("attempt", retry.Attempt),
			)
			uc.ack(ctx, job)
			return
		}

		exhausted := *result
		if exhausted.ReasonCode == "" {
			exhausted.ReasonCode = "step_timeout"
		}
		if uc.report(ctx, job, false, &exhausted) {
			uc.ack(ctx, job)
		}

	case executors.OutcomePermanent:
		if uc.report(ctx, job, false, result) {
			uc.ack(ctx, job)
		}

	default:
		log.Printf("worker: unknown outcome %q for job %s", result.Outcome, job.ID)
		uc.ack(ctx, job)
	}
}

// report publishes the step result for the coordinator. A failed publish
// leaves the job unacked so the broker redelivers it; the executor's
// idempotency record makes the replay cheap.
func (uc *ProcessJobs) report(ctx context.Context, job *queue.Job, succeeded bool, result *executors.Result) bool {
	eventType := events.StepCompletedEvent
	if !succeeded {
		eventType = events.StepFailedEvent
	}

	event := events.NewEvent(job.BookingID, eventType, events.StepResultData{
		BookingID:  job.BookingID.String(),
		Step:       string(job.Step),
		Succeeded:  succeeded,
		Reference:  result.Reference,
		ReasonCode: result.ReasonCode,
		Message:    result.Message,
		Attempt:    job.Attempt,
	})

	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		log.Printf("worker: publish of %s for job %s failed: %v", eventType, job.ID, err)
		return false
	}

	telemetry.RecordCounter(ctx, "step_results_reported_total", "Step results reported", 1,
		attribute.String("step", string(job.Step)),
		attribute.Bool("succeeded", succeeded),
	)
	return true
}

func (uc *ProcessJobs) ack(ctx context.Context, job *queue.Job) {
	if err := uc.jobQueue.Ack(ctx, job); err != nil {
		log.Printf("worker: ack of job %s failed: %v", job.ID, errors.Cause(err))
	}
}
