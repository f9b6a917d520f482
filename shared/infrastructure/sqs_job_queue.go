package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"github.com/ticketflow/booking-system/shared/queue"
)

var _ queue.Queue = (*SQSJobQueue)(nil)

// maxSQSDelay is the SQS per-message delay ceiling (15 minutes)
const maxSQSDelay = 900 * time.Second

// SQSJobQueue implements the job queue contract on AWS SQS
type SQSJobQueue struct {
	client   *sqs.Client
	queueURL string
	options  *sqsJobQueueOptions
}

type sqsJobQueueOptions struct {
	waitTimeSeconds   int32
	visibilityTimeout int32
}

type SQSJobQueueOption func(*sqsJobQueueOptions)

func WithJobVisibilityTimeout(seconds int32) SQSJobQueueOption {
	return func(o *sqsJobQueueOptions) {
		o.visibilityTimeout = seconds
	}
}

func WithJobWaitTime(seconds int32) SQSJobQueueOption {
	return func(o *sqsJobQueueOptions) {
		o.waitTimeSeconds = seconds
	}
}

// NewSQSJobQueue creates a new SQS-backed job queue
func NewSQSJobQueue(client *sqs.Client, queueURL string, opts ...SQSJobQueueOption) *SQSJobQueue {
	options := &sqsJobQueueOptions{
		waitTimeSeconds:   15,
		visibilityTimeout: 60,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSJobQueue{
		client:   client,
		queueURL: queueURL,
		options:  options,
	}
}

// Enqueue publishes a job. A future NotBefore is mapped onto the SQS message
// delay; delays beyond the SQS ceiling are topped up by the consumer-side
// due check on dequeue.
func (q *SQSJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job")
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"step": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(job.Step)),
			},
			"booking_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(job.BookingID.String()),
			},
		},
	}

	if delay := time.Until(job.NotBefore); delay > 0 {
		if delay > maxSQSDelay {
			delay = maxSQSDelay
		}
		input.DelaySeconds = int32(delay / time.Second)
	}

	if _, err := q.client.SendMessage(ctx, input); err != nil {
		return errors.Wrap(err, "failed to send job to SQS")
	}

	return nil
}

// Dequeue leases up to max jobs using long polling
func (q *SQSJobQueue) Dequeue(ctx context.Context, max int) ([]*queue.Job, error) {
	if max < 1 {
		max = 1
	}
	if max > 10 {
		max = 10 // SQS receive batch ceiling
	}

	output, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: int32(max),
		WaitTimeSeconds:     q.options.waitTimeSeconds,
		VisibilityTimeout:   q.options.visibilityTimeout,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to receive jobs from SQS")
	}

	jobs := make([]*queue.Job, 0, len(output.Messages))
	for _, message := range output.Messages {
		var job queue.Job
		if err := json.Unmarshal([]byte(*message.Body), &job); err != nil {
			// Malformed payloads are acked away so they cannot wedge the queue.
			_, _ = q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(q.queueURL),
				ReceiptHandle: message.ReceiptHandle,
			})
			continue
		}

		if message.ReceiptHandle != nil {
			job.WithReceipt(*message.ReceiptHandle)
		}

		jobs = append(jobs, &job)
	}

	return jobs, nil
}

// Ack deletes a processed job
func (q *SQSJobQueue) Ack(ctx context.Context, job *queue.Job) error {
	if job.Receipt() == "" {
		return errors.New("job has no receipt handle")
	}

	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(job.Receipt()),
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete job from SQS")
	}

	return nil
}

// Nack returns a leased job to the queue immediately
func (q *SQSJobQueue) Nack(ctx context.Context, job *queue.Job) error {
	if job.Receipt() == "" {
		return errors.New("job has no receipt handle")
	}

	_, err := q.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(q.queueURL),
		ReceiptHandle:     aws.String(job.Receipt()),
		VisibilityTimeout: 0,
	})
	if err != nil {
		return errors.Wrap(err, "failed to return job to SQS")
	}

	return nil
}
