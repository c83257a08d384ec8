// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	MutedTextStyle     lipgloss.Style

	// TUI shared styles.
	TitleStyle         lipgloss.Style
	LabelStyle         lipgloss.Style
	InputFocusedStyle  lipgloss.Style
	InputBlurredStyle  lipgloss.Style
	ResultFocusedStyle lipgloss.Style
	ResultBlurredStyle lipgloss.Style
	ErrorBannerStyle   lipgloss.Style
	SpinnerStyle       lipgloss.Style
	StatusStyle        lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	DebugPanelStyle    lipgloss.Style
	DebugTitleStyle    lipgloss.Style
	HelpStyle          lipgloss.Style

	JSONKeyStyle     lipgloss.Style
	JSONStringStyle  lipgloss.Style
	JSONNumberStyle  lipgloss.Style
	JSONLiteralStyle lipgloss.Style
	JSONNullStyle    lipgloss.Style
	JSONPunctStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	MutedTextStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	LabelStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)

	InputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary)
	InputBlurredStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	ResultFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	ResultBlurredStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Foreground(p.Error).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	DebugPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(p.Muted).
		Foreground(p.Muted)
	DebugTitleStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(p.Success)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(p.Warning)
	JSONLiteralStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(p.Error)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
