package stat

import (
	"errors"
	"slices"
)

var ErrEmptySequence = errors.New("sequence cannot be empty")

// Minimum returns the smallest value. The sequence is not assumed to be sorted.
func Minimum(values []uint8) (uint8, error) {
	if len(values) == 0 {
		return 0, ErrEmptySequence
	}

	min := values[0]

	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}

	return min, nil
}

// Maximum returns the largest value. The sequence is not assumed to be sorted.
func Maximum(values []uint8) (uint8, error) {
	if len(values) == 0 {
		return 0, ErrEmptySequence
	}

	max := values[0]

	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}

	return max, nil
}

// Mean returns the truncated integer mean. The sum is accumulated as uint64,
// so it cannot wrap for any slice that fits in memory.
func Mean(values []uint8) (uint8, error) {
	if len(values) == 0 {
		return 0, ErrEmptySequence
	}

	var sum uint64

	for _, v := range values {
		sum += uint64(v)
	}

	return uint8(sum / uint64(len(values))), nil
}

// Median sorts a private copy of values and returns its middle element, or the
// truncated mean of the two middle elements when the count is even.
// values is left untouched.
func Median(values []uint8) (uint8, error) {
	if len(values) == 0 {
		return 0, ErrEmptySequence
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	l := len(sorted)

	if l%2 == 0 {
		return uint8((uint16(sorted[l/2-1]) + uint16(sorted[l/2])) / 2), nil
	}

	return sorted[(l-1)/2], nil
}

// CompareDescending is a three-way comparator ordering larger values first.
func CompareDescending(left, right uint8) int {
	switch {
	case left > right:
		return -1
	case left < right:
		return 1
	default:
		return 0
	}
}

// SortDescending sorts values in place, largest first.
func SortDescending(values []uint8) {
	slices.SortFunc(values, CompareDescending)
}
