package inline

import (
	"context"
	"slices"

	"github.com/AirHelp/samplestats/source"
)

type Config struct {
	Values []int `yaml:"values"`
}

type Source struct {
	values []uint8
}

func New(config *Config) (*Source, error) {
	if len(config.Values) == 0 {
		return &Source{}, source.ErrNoValues
	}

	values, err := source.FromInts(config.Values)
	if err != nil {
		return &Source{}, err
	}

	return &Source{values: values}, nil
}

func (s *Source) Kind() string {
	return "inline"
}

// Load returns a copy so that sorting the result leaves the source intact.
func (s *Source) Load(_ context.Context) ([]uint8, error) {
	return slices.Clone(s.values), nil
}
