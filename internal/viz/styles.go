package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/limbshift/internal/blend"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(22)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	PhaseTracking = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	PhaseDisabled = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	PhaseIdle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888899"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func PhaseBadge(p blend.Phase) string {
	label := strings.ToUpper(p.String())
	switch p {
	case blend.Tracking:
		return PhaseTracking.Render(label)
	case blend.Disabled:
		return PhaseDisabled.Render(label)
	default:
		return PhaseIdle.Render(label)
	}
}

// ProgressBar renders a [0,1] fraction as a filled bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

func Row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}
