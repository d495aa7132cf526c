package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes a bar chart of the per-class annotation counts.
// Classes absent from the name table are labelled by their numeric ID.
func RenderHTML(w io.Writer, s *Stats, names map[int]string) error {
	ids := make([]int, 0, len(s.ClassCounts))
	for id := range s.ClassCounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	labels := make([]string, 0, len(ids))
	data := make([]opts.BarData, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("class %d", id)
		}
		labels = append(labels, name)
		data = append(data, opts.BarData{Value: s.ClassCounts[id]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Dataset class distribution", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Annotations per class",
			Subtitle: fmt.Sprintf("files=%d annotations=%d mean/image=%.1f median/image=%.1f bad_lines=%d",
				s.Files, s.TotalAnnotations(), s.MeanPerImage(), s.MedianPerImage(), s.BadLines),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45}}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("annotations", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
