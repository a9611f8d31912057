package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorAccent  = lipgloss.Color("69")
	colorSubtle  = lipgloss.Color("241")
	colorBorder  = lipgloss.Color("240")
	colorError   = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
	colorStar    = lipgloss.Color("220")
	colorSelFg   = lipgloss.Color("229")
	colorSelBg   = lipgloss.Color("57")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	LabelStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	ValueStyle = lipgloss.NewStyle()

	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)

	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)

	StarStyle = lipgloss.NewStyle().Foreground(colorStar)

	TableSelectedStyle = lipgloss.NewStyle().Foreground(colorSelFg).Background(colorSelBg)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(colorBorder).
			PaddingRight(1)

	HelpStyle = lipgloss.NewStyle().Foreground(colorSubtle)
)
