package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	sharedinfra "github.com/ticketflow/booking-system/shared/infrastructure"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/worker-service/application"
	"github.com/ticketflow/booking-system/worker-service/executors"
	"github.com/ticketflow/booking-system/worker-service/infrastructure"
)

type Dependencies struct {
	// Database, only opened for the postgres idempotency backend
	DB *sqlx.DB

	// Redis, only opened for the redis idempotency backend
	Redis *redis.Client

	// Job queue
	JobQueue queue.Queue

	// Idempotency
	IdempotencyStore executors.IdempotencyStore

	// Collaborator clients
	ReservationClient  *infrastructure.HTTPReservationClient
	PaymentClient      *infrastructure.HTTPPaymentClient
	NotificationClient *infrastructure.HTTPNotificationClient

	// Executors
	Registry *executors.Registry

	// Use Cases
	ProcessJobs *application.ProcessJobs

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter
}

func BuildDependencies(config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	jobQueue, err := buildJobQueue(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create job queue: %w", err)
	}
	deps.JobQueue = jobQueue

	// Initialize idempotency store
	store, err := buildIdempotencyStore(config, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create idempotency store: %w", err)
	}
	deps.IdempotencyStore = store

	// Initialize collaborator clients
	deps.ReservationClient = infrastructure.NewHTTPReservationClient(config.Collaborators.ReservationURL)
	deps.PaymentClient = infrastructure.NewHTTPPaymentClient(config.Collaborators.PaymentURL)
	deps.NotificationClient = infrastructure.NewHTTPNotificationClient(config.Collaborators.NotificationURL)

	// Initialize executors
	deps.Registry = executors.NewRegistry(
		executors.NewReserveExecutor(deps.ReservationClient, store),
		executors.NewReleaseExecutor(deps.ReservationClient, store),
		executors.NewChargeExecutor(deps.PaymentClient, store),
		executors.NewRefundExecutor(deps.PaymentClient, store),
		executors.NewNotifyExecutor(deps.NotificationClient, store),
	)

	policy := application.WorkerPolicy{
		BatchSize:     config.Worker.BatchSize,
		StepTimeout:   config.StepTimeout(),
		ReserveBudget: config.Worker.ReserveBudget,
		ChargeBudget:  config.Worker.ChargeBudget,
		ReleaseBudget: config.Worker.ReleaseBudget,
		RefundBudget:  config.Worker.RefundBudget,
		NotifyBudget:  config.Worker.NotifyBudget,
	}

	// Initialize use cases
	deps.ProcessJobs = application.NewProcessJobs(deps.JobQueue, deps.Registry, eventPublisher, policy)

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

// buildIdempotencyStore selects the idempotency backend from config
func buildIdempotencyStore(config *Config, deps *Dependencies) (executors.IdempotencyStore, error) {
	switch config.Idempotency.Backend {
	case "redis", "":
		client := redis.NewClient(&redis.Options{
			Addr:     config.Idempotency.RedisAddr,
			Password: config.Idempotency.RedisPassword,
			DB:       config.Idempotency.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		deps.Redis = client
		return infrastructure.NewRedisIdempotencyStore(client, config.IdempotencyTTL()), nil

	case "postgres":
		db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.DB = db
		return infrastructure.NewPostgresIdempotencyStore(db), nil

	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", config.Idempotency.Backend)
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

	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
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

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
