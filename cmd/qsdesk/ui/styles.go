// Package ui provides the visual styling and layout math for the QS Desk
// interactive terminal interface.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Slate workspace chrome, blue selection, red for disputed
// items and arbitration mode.
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f1f5f9") // slate-100
	LightForeground = lipgloss.Color("#1e293b") // slate-800
	LightPrimary    = lipgloss.Color("#1d4ed8") // blue-700
	LightAccent     = lipgloss.Color("#2563eb") // blue-600
	LightSecondary  = lipgloss.Color("#e2e8f0") // slate-200
	LightMuted      = lipgloss.Color("#94a3b8") // slate-400
	LightBorder     = lipgloss.Color("#cbd5e1") // slate-300
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f172a") // slate-900
	DarkForeground = lipgloss.Color("#e2e8f0") // slate-200
	DarkPrimary    = lipgloss.Color("#60a5fa") // blue-400
	DarkAccent     = lipgloss.Color("#3b82f6") // blue-500
	DarkSecondary  = lipgloss.Color("#1e293b") // slate-800
	DarkMuted      = lipgloss.Color("#64748b") // slate-500
	DarkBorder     = lipgloss.Color("#334155") // slate-700
	DarkCard       = lipgloss.Color("#1e293b") // slate-800

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626") // red-600: disputes, arbitration mode
	Success     = lipgloss.Color("#10b981") // emerald-500
	Warning     = lipgloss.Color("#f59e0b") // amber-500
	Info        = lipgloss.Color("#6366f1") // indigo-500: AI search
	Pin         = lipgloss.Color("#eab308") // yellow-500: pinned logic
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name; unknown names fall back to
// terminal detection.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}
	return DetectTheme()
}

// DetectTheme auto-detects based on the terminal, defaulting to dark.
func DetectTheme() Theme {
	// COLORFGBG format is usually "foreground;background"; low background
	// indexes indicate a dark terminal.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx >= 7 && bgIdx != 8 {
					return LightTheme()
				}
				return DarkTheme()
			}
		}
	}

	if os.Getenv("QSDESK_LIGHT_MODE") == "1" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Panel   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Dimmed   lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Badge      lipgloss.Style
	AlertBadge lipgloss.Style
	PinBadge   lipgloss.Style
	Selected   lipgloss.Style
	ActiveCell lipgloss.Style
	Spinner    lipgloss.Style
	Divider    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Dimmed: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		AlertBadge: lipgloss.NewStyle().
			Background(Destructive).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		PinBadge: lipgloss.NewStyle().
			Background(Pin).
			Foreground(lipgloss.Color("#1e293b")).
			Padding(0, 1).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Foreground).
			Bold(true),

		ActiveCell: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Logo returns the QS Desk ASCII wordmark.
func Logo(s Styles) string {
	logo := `
   ___  ____    ___          _
  / _ \/ ___|  |   \ ___ ___| |__
 | | | \___ \  | |) / -_|_-<| / /
 | |_| |___) | |___/\___/__/|_\_\
  \__\_\____/
`
	return s.Title.Render(logo)
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
