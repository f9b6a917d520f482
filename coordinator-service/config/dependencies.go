package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ticketflow/booking-system/coordinator-service/application"
	"github.com/ticketflow/booking-system/coordinator-service/handlers"
	"github.com/ticketflow/booking-system/coordinator-service/infrastructure"
	"github.com/ticketflow/booking-system/shared/events"
	sharedinfra "github.com/ticketflow/booking-system/shared/infrastructure"
	"github.com/ticketflow/booking-system/shared/queue"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	BookingRepository *infrastructure.PostgresBookingRepository
	SagaRepository    *infrastructure.PostgresSagaRepository
	TransitionLog     *sharedinfra.PostgresTransitionLog

	// Job queue
	JobQueue queue.Queue

	// Use Cases
	CreateBooking     *application.CreateBooking
	HandleStepResult  *application.HandleStepResult
	ReconcileTimeouts *application.ReconcileTimeouts
	GetBookingStatus  *application.GetBookingStatus
	GetBookingHistory *application.GetBookingHistory
	ListBookings      *application.ListBookings
	CancelBooking     *application.CancelBooking

	// HTTP Handlers
	BookingHandlers *handlers.BookingHandlers

	// Event Handlers
	StepResultHandlers *StepResultSubscription

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
}

// StepResultSubscription pairs the handler with the queue it consumes
type StepResultSubscription struct {
	Handler    events.EventHandler
	Subscriber events.Subscriber
}

func BuildDependencies(config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.StepResultQueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	jobQueue, err := buildJobQueue(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create job queue: %w", err)
	}
	deps.JobQueue = jobQueue

	// Initialize repositories
	deps.BookingRepository = infrastructure.NewPostgresBookingRepository(db)
	deps.SagaRepository = infrastructure.NewPostgresSagaRepository(db)
	deps.TransitionLog = sharedinfra.NewPostgresTransitionLog(db)

	policy := application.SagaPolicy{
		StepTimeout:       config.StepTimeout(),
		ReconcileInterval: config.ReconcileInterval(),
		ReserveBudget:     config.Saga.ReserveBudget,
		ChargeBudget:      config.Saga.ChargeBudget,
		ReleaseBudget:     config.Saga.ReleaseBudget,
	}

	// Initialize use cases
	deps.CreateBooking = application.NewCreateBooking(
		deps.BookingRepository, deps.SagaRepository, deps.JobQueue, deps.TransitionLog, eventPublisher)
	deps.HandleStepResult = application.NewHandleStepResult(
		deps.BookingRepository, deps.SagaRepository, deps.JobQueue, deps.TransitionLog, eventPublisher, policy)
	deps.ReconcileTimeouts = application.NewReconcileTimeouts(
		deps.BookingRepository, deps.SagaRepository, deps.JobQueue, deps.TransitionLog, eventPublisher, policy)
	deps.GetBookingStatus = application.NewGetBookingStatus(deps.BookingRepository, deps.SagaRepository)
	deps.GetBookingHistory = application.NewGetBookingHistory(deps.BookingRepository, deps.TransitionLog)
	deps.ListBookings = application.NewListBookings(deps.BookingRepository)
	deps.CancelBooking = application.NewCancelBooking(
		deps.BookingRepository, deps.SagaRepository, deps.JobQueue, deps.TransitionLog, eventPublisher)

	// Initialize handlers
	deps.BookingHandlers = handlers.NewBookingHandlers(
		deps.CreateBooking, deps.GetBookingStatus, deps.GetBookingHistory, deps.ListBookings, deps.CancelBooking)
	deps.StepResultHandlers = &StepResultSubscription{
		Handler:    handlers.NewStepResultEventHandlers(deps.HandleStepResult),
		Subscriber: eventSubscriber,
	}

	return deps, nil
}

// buildJobQueue selects the job queue backend from config
func buildJobQueue(config *Config) (queue.Queue, error) {
	switch config.Queue.Backend {
	case "amqp":
		return sharedinfra.NewAMQPJobQueue(config.Queue.AMQPURL, config.Queue.AMQPQueue)
	case "sqs", "":
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return sharedinfra.NewSQSJobQueue(sqs.NewFromConfig(cfg), config.AWS.JobQueueURL), nil
	default:
		return nil, fmt.Errorf("unknown queue backend %q", config.Queue.Backend)
	}
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if closer, ok := d.JobQueue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close job queue: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
