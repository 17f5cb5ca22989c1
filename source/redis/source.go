package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/source"
)

type Config struct {
	Hosts []string `yaml:"hosts"`
	Key   string   `yaml:"key"`
}

type Source struct {
	client *redis.Ring
	key    string
	logger *zap.SugaredLogger
}

func New(config *Config, logger *zap.SugaredLogger) (*Source, error) {
	if len(config.Hosts) == 0 {
		return &Source{}, fmt.Errorf("hosts list cannot be empty")
	}

	if config.Key == "" {
		return &Source{}, fmt.Errorf("list key cannot be empty")
	}

	ringOpts := make(map[string]string)

	for i, addr := range config.Hosts {
		key := fmt.Sprintf("host%d", i+1)
		ringOpts[key] = addr
	}

	c := redis.NewRing(&redis.RingOptions{
		Addrs: ringOpts,
	})

	err := c.ForEachShard(context.Background(), func(ctx context.Context, shard *redis.Client) error {
		res := shard.Ping(ctx)
		err := res.Err()

		if err != nil {
			logger.Errorf("failed to connect to Redis instance: %v", shard.Options().Addr)
			return err
		}

		logger.Debugf("successfully connected to Redis instance: %v, result: %v", shard.Options().Addr, res.Val())
		return nil
	})

	if err != nil {
		_ = c.Close()
		return &Source{}, err
	}

	return &Source{
		client: c,
		key:    config.Key,
		logger: logger,
	}, nil
}

func (s *Source) Kind() string {
	return "redis"
}

func (s *Source) Load(ctx context.Context) ([]uint8, error) {
	items, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	values := make([]uint8, 0, len(items))

	for _, item := range items {
		parsed, err := source.ParseValues(item)
		if err != nil {
			return nil, fmt.Errorf("list %v: %w", s.key, err)
		}

		values = append(values, parsed...)
	}

	s.logger.Debugf("loaded %d values from list %v", len(values), s.key)

	return values, nil
}

func (s *Source) Close() error {
	return s.client.Close()
}
