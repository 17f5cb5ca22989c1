package httpsource

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 3 * time.Second

type Config struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Source struct {
	url     string
	timeout time.Duration
	client  *Client
}

var ErrNoURLSpecified = errors.New("no url provided")

func New(config *Config, logger *zap.SugaredLogger) (*Source, error) {
	if config.URL == "" {
		return &Source{}, ErrNoURLSpecified
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Source{
		url:     config.URL,
		timeout: timeout,
		client:  NewClient(logger),
	}, nil
}

func (s *Source) Kind() string {
	return "http"
}

func (s *Source) Load(ctx context.Context) ([]uint8, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.GetValues(ctx, s.url)
}
