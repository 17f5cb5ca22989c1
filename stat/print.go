package stat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AirHelp/samplestats/helper"
)

const valuesPerRow = 8

// FprintArray writes prefix, the values as comma separated decimals wrapped
// every eight values, and postfix.
func FprintArray(w io.Writer, values []uint8, prefix, postfix string) error {
	rows := helper.Rows(values, valuesPerRow)
	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		lines = append(lines, helper.JoinValues(row, ", "))
	}

	_, err := fmt.Fprint(w, prefix, strings.Join(lines, ",\n"), postfix)

	return err
}

func PrintArray(values []uint8, prefix, postfix string) error {
	return FprintArray(os.Stdout, values, prefix, postfix)
}

// FprintStatistics computes the summary of values and writes the report.
func FprintStatistics(w io.Writer, values []uint8) error {
	s, err := Summarize(values)
	if err != nil {
		return err
	}

	return FprintSummary(w, s)
}

func PrintStatistics(values []uint8) error {
	return FprintStatistics(os.Stdout, values)
}

func FprintSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "Statistics:\n  Maximum: %d\n  Minimum: %d\n  Mean:    %d\n  Median:  %d\n",
		s.Maximum, s.Minimum, s.Mean, s.Median)

	return err
}
