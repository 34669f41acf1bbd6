package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/sim"
)

const plotWidth = 70

// Series extracts one value per frame.
func Series(frames []engine.Frame, fn func(engine.Frame) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = fn(f)
	}
	return out
}

func FormatVec(v geom.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

// Report renders the summary panel and plots for one simulated reach.
func Report(title string, r sim.Reach, result *sim.Result) string {
	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	b.WriteString(Subtle.Render(r.Selection.String()+"  "+r.Trial.String()) + "\n\n")

	if result == nil || len(result.Frames) == 0 {
		b.WriteString(Subtle.Render("no frames"))
		return b.String()
	}

	last := result.Frames[len(result.Frames)-1]
	var rows []string
	rows = append(rows,
		Row("phase", PhaseBadge(last.Phase)),
		Row("frames", fmt.Sprintf("%d", result.StepsTaken)),
		Row("hand anchor", FormatVec(last.HandAnchor)),
		Row("elbow anchor", FormatVec(last.ElbowAnchor)),
		Row("final virtual hand", FormatVec(last.VirtualHand)),
		Row("final virtual elbow", FormatVec(last.VirtualElbow)),
	)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, Row(name, fmt.Sprintf("%.4f", result.Metrics[name])))
	}
	b.WriteString(Panel.Render(strings.Join(rows, "\n")) + "\n\n")

	b.WriteString(ProgressPlot(result.Frames) + "\n\n")
	b.WriteString(OffsetPlot(result.Frames) + "\n")
	return b.String()
}

// ProgressPlot draws hand and elbow progress over the reach.
func ProgressPlot(frames []engine.Frame) string {
	hand := Series(frames, func(f engine.Frame) float64 { return f.HandProgress })
	elbow := Series(frames, func(f engine.Frame) float64 { return f.ElbowProgress })
	return asciigraph.PlotMany([][]float64{hand, elbow},
		asciigraph.Height(8),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.Caption("progress (green: hand, yellow: elbow)"),
	)
}

// OffsetPlot draws the virtual-to-real hand displacement over the reach.
func OffsetPlot(frames []engine.Frame) string {
	offset := Series(frames, func(f engine.Frame) float64 { return geom.Distance(f.VirtualHand, f.RealHand) })
	return asciigraph.Plot(offset,
		asciigraph.Height(8),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.Precision(3),
		asciigraph.Caption("hand offset (virtual - real)"),
	)
}
