package stat

import "fmt"

type Summary struct {
	Count   int
	Minimum uint8
	Maximum uint8
	Mean    uint8
	Median  uint8
}

func Summarize(values []uint8) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptySequence
	}

	// none of the finders can fail past the emptiness check above
	min, _ := Minimum(values)
	max, _ := Maximum(values)
	mean, _ := Mean(values)
	median, _ := Median(values)

	return Summary{
		Count:   len(values),
		Minimum: min,
		Maximum: max,
		Mean:    mean,
		Median:  median,
	}, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("count=%d max=%d min=%d mean=%d median=%d", s.Count, s.Maximum, s.Minimum, s.Mean, s.Median)
}
