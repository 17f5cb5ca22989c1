package helper

import (
	"strconv"
	"strings"
)

func JoinValues(input []uint8, sep string) string {
	b := strings.Builder{}

	for i, v := range input {
		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(strconv.Itoa(int(v)))
	}

	return b.String()
}

// Rows splits input into consecutive chunks of at most width elements.
// Chunks share the backing array of input.
func Rows(input []uint8, width int) [][]uint8 {
	if width <= 0 {
		width = len(input)
	}

	var rows [][]uint8

	for len(input) > 0 {
		n := min(width, len(input))
		rows = append(rows, input[:n])
		input = input[n:]
	}

	return rows
}
