package sqs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/source"
)

const (
	maxMessagesPerReceive = 10
	maxWaitTime           = 20 * time.Second
	defaultReceives       = 1
)

type Config struct {
	Queue       string        `yaml:"queue"`
	MaxMessages int32         `yaml:"max_messages"`
	WaitTime    time.Duration `yaml:"wait_time"`
	Receives    int           `yaml:"receives"`
	Delete      bool          `yaml:"delete"`
}

//go:generate mockgen -destination=mock/sqs_client_mock.go -package sqsMock github.com/AirHelp/samplestats/source/sqs SqsClient
type SqsClient interface {
	GetQueueUrl(context.Context, *sqs.GetQueueUrlInput, ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(context.Context, *sqs.ReceiveMessageInput, ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(context.Context, *sqs.DeleteMessageInput, ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type Source struct {
	queueURL    string
	maxMessages int32
	waitSeconds int32
	receives    int
	delete      bool

	client SqsClient
	logger *zap.SugaredLogger
}

var ErrNoQueueSpecified = errors.New("no queue provided")

func New(ctx context.Context, config *Config, logger *zap.SugaredLogger) (*Source, error) {
	if config.Queue == "" {
		return &Source{}, ErrNoQueueSpecified
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return &Source{}, err
	}

	return NewWithClient(ctx, config, sqs.NewFromConfig(cfg), logger)
}

func NewWithClient(ctx context.Context, config *Config, client SqsClient, logger *zap.SugaredLogger) (*Source, error) {
	if config.Queue == "" {
		return &Source{}, ErrNoQueueSpecified
	}

	res, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(config.Queue),
	})
	if err != nil {
		return &Source{}, err
	}

	maxMessages := config.MaxMessages
	if maxMessages <= 0 || maxMessages > maxMessagesPerReceive {
		maxMessages = maxMessagesPerReceive
	}

	waitTime := min(max(config.WaitTime, 0), maxWaitTime)

	receives := config.Receives
	if receives <= 0 {
		receives = defaultReceives
	}

	logger.Debugf("resolved queue %v to %v", config.Queue, aws.ToString(res.QueueUrl))

	return &Source{
		queueURL:    aws.ToString(res.QueueUrl),
		maxMessages: maxMessages,
		waitSeconds: int32(waitTime / time.Second),
		receives:    receives,
		delete:      config.Delete,
		client:      client,
		logger:      logger,
	}, nil
}

func (s *Source) Kind() string {
	return "sqs"
}

// Load reads message bodies from the queue. It stops after the configured
// number of receive calls or at the first empty batch. Messages are deleted
// only once every received body has been parsed.
func (s *Source) Load(ctx context.Context) ([]uint8, error) {
	var (
		values   []uint8
		receipts []*string
	)

	for range s.receives {
		output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: s.maxMessages,
			WaitTimeSeconds:     s.waitSeconds,
		})
		if err != nil {
			return nil, err
		}

		if len(output.Messages) == 0 {
			break
		}

		for _, msg := range output.Messages {
			parsed, err := source.ParseValues(aws.ToString(msg.Body))
			if err != nil {
				return nil, fmt.Errorf("message %v: %w", aws.ToString(msg.MessageId), err)
			}

			values = append(values, parsed...)
			receipts = append(receipts, msg.ReceiptHandle)
		}
	}

	if s.delete {
		for _, receipt := range receipts {
			_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.queueURL),
				ReceiptHandle: receipt,
			})
			// values are already loaded; an undeleted message is redelivered later
			if err != nil {
				s.logger.With("error", err).Warnf("failed to delete message from %v", s.queueURL)
			}
		}
	}

	s.logger.Debugf("loaded %d values from %v", len(values), s.queueURL)

	return values, nil
}
