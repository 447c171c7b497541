package workflow

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderHead renders the first n consolidated rows as a terminal table, the
// quick sanity check printed after a consolidation run.
func RenderHead(records []Metadata, n int) string {
	if n > len(records) {
		n = len(records)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	// Keep the column names as-is; the default style upper-cases headers.
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{
		"source_name", "cens_sample_rate", "matrix_profile_window", "sample_rate",
		"duration_cens", "duration_samples", "duration_seconds", "motif_0", "motif_1",
	})

	for _, md := range records[:n] {
		tw.AppendRow(table.Row{
			md.SourceName,
			md.CensSampleRate,
			md.MatrixProfileWindow,
			md.SampleRate,
			md.DurationCens,
			md.DurationSamples,
			fmt.Sprintf("%.2f", md.DurationSeconds),
			formatMotif(md.Motif0),
			formatMotif(md.Motif1),
		})
	}

	configs := make([]table.ColumnConfig, 0, 9)
	for i := 2; i <= 9; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func formatMotif(v *int64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *v)
}
