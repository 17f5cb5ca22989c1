package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

//go:generate mockgen -destination=mock/source_mock.go -package sourceMock github.com/AirHelp/samplestats/source Source
type Source interface {
	Kind() string
	Load(context.Context) ([]uint8, error)
}

var (
	ErrInvalidValue = errors.New("value must be an integer in range [0, 255]")
	ErrNoValues     = errors.New("no values provided")
)

// ParseValues reads decimal values separated by commas and/or whitespace.
func ParseValues(text string) ([]uint8, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	values := make([]uint8, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, f)
		}

		values = append(values, uint8(v))
	}

	return values, nil
}

func FromInts(input []int) ([]uint8, error) {
	values := make([]uint8, 0, len(input))

	for _, n := range input {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidValue, n)
		}

		values = append(values, uint8(n))
	}

	return values, nil
}
