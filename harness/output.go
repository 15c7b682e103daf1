package harness

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteTable writes the metrics as an aligned table, one row per policy,
// in the given order.
func WriteTable(w io.Writer, metrics []Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPOLICY\tTOTAL\tAVERAGE\tMAKESPAN\tSEED")
	for i, m := range metrics {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%d\n",
			i+1, m.Policy, m.TotalCompletionTime, m.AverageCompletionTime, m.Makespan, m.Seed)
	}
	return tw.Flush()
}

// WriteCSV writes the metrics as CSV with a header row.
func WriteCSV(w io.Writer, metrics []Metrics) error {
	cw := csv.NewWriter(w)
	header := []string{"policy", "total_completion_time", "average_completion_time", "makespan", "seed"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range metrics {
		row := []string{
			m.Policy,
			formatFloat(m.TotalCompletionTime),
			formatFloat(m.AverageCompletionTime),
			formatFloat(m.Makespan),
			strconv.FormatInt(m.Seed, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
