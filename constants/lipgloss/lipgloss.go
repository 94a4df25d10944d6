package lipgloss

import lipgloss_color "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss_color.NewStyle().Foreground(lipgloss_color.Color("#FF5F87"))
	Green   = lipgloss_color.NewStyle().Foreground(lipgloss_color.Color("#5FD787"))
	Yellow  = lipgloss_color.NewStyle().Foreground(lipgloss_color.Color("#FFD75F"))
	BlueSky = lipgloss_color.NewStyle().Foreground(lipgloss_color.Color("#5FD7FF"))
	Info    = lipgloss_color.NewStyle().Foreground(lipgloss_color.Color("#87AFFF")).Bold(true)

	// BoxStyle frames summaries and banners.
	BoxStyle = lipgloss_color.NewStyle().
			Border(lipgloss_color.RoundedBorder()).
			BorderForeground(lipgloss_color.Color("#5FD7FF")).
			Padding(0, 1)
)
