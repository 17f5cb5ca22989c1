package analyzer

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/AirHelp/samplestats/source/httpsource"
	"github.com/AirHelp/samplestats/source/pods"
	"github.com/AirHelp/samplestats/source/postgres"
	"github.com/AirHelp/samplestats/source/redis"
	"github.com/AirHelp/samplestats/source/sqs"
)

type Config struct {
	Values []int `yaml:"values"`

	Redis    *redis.Config      `yaml:"redis"`
	Sqs      *sqs.Config        `yaml:"sqs"`
	Http     *httpsource.Config `yaml:"http"`
	Postgres *postgres.Config   `yaml:"postgres"`
	Pods     *pods.Config       `yaml:"pods"`
}

var (
	ErrSourceNotSpecified = errors.New("no source specified for dataset")
	ErrMultipleSources    = errors.New("only one source can be specified per dataset")
)

func ParseConfig(raw string) (Config, error) {
	var c Config

	if err := yaml.UnmarshalStrict([]byte(raw), &c); err != nil {
		return Config{}, err
	}

	switch c.sourceCount() {
	case 0:
		return Config{}, ErrSourceNotSpecified
	case 1:
		return c, nil
	default:
		return Config{}, ErrMultipleSources
	}
}

func (c Config) sourceCount() int {
	n := 0

	if len(c.Values) > 0 {
		n++
	}

	for _, set := range []bool{c.Redis != nil, c.Sqs != nil, c.Http != nil, c.Postgres != nil, c.Pods != nil} {
		if set {
			n++
		}
	}

	return n
}

// LoadFile reads a YAML file mapping dataset names to dataset documents and
// returns every document re-encoded as raw YAML, the same shape ConfigMap
// data has.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs map[string]interface{}

	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}

	datasets := make(map[string]string, len(docs))

	for name, doc := range docs {
		raw, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode dataset %v: %w", name, err)
		}

		datasets[name] = string(raw)
	}

	return datasets, nil
}
