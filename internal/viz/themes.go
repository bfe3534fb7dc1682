package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas layers and the side panel.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color

	Rest      lipgloss.Color
	Velocity  lipgloss.Color
	Gravity   lipgloss.Color
	Tension   lipgloss.Color
	Resultant lipgloss.Color
}

// The gizmo colours follow the usual editor convention: blue velocity,
// yellow gravity, orange tension, red resultant, purple rest circle.
var (
	ThemeEditor = Theme{
		Name:      "editor",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#00ccff"),
		Accent:    lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#e0e0e0"),
		Muted:     lipgloss.Color("#666688"),
		Warning:   lipgloss.Color("#ffaa00"),
		Rest:      lipgloss.Color("#800080"),
		Velocity:  lipgloss.Color("#4d4dff"),
		Gravity:   lipgloss.Color("#ffff33"),
		Tension:   lipgloss.Color("#ff8033"),
		Resultant: lipgloss.Color("#ff4d4d"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
		Rest:      lipgloss.Color("#005500"),
		Velocity:  lipgloss.Color("#88ff88"),
		Gravity:   lipgloss.Color("#00cc00"),
		Tension:   lipgloss.Color("#ccff66"),
		Resultant: lipgloss.Color("#ffffff"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Warning:   lipgloss.Color("#ffaa00"),
		Rest:      lipgloss.Color("#444444"),
		Velocity:  lipgloss.Color("#aaaaaa"),
		Gravity:   lipgloss.Color("#aaaaaa"),
		Tension:   lipgloss.Color("#aaaaaa"),
		Resultant: lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{ThemeEditor, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the editor theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEditor
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme cycles through Themes in order.
func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeEditor
}

func (t Theme) palette() [numInks]lipgloss.Style {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	var p [numInks]lipgloss.Style
	p[InkPlain] = fg(t.Text)
	p[InkPivot] = fg(t.Primary)
	p[InkRest] = fg(t.Rest)
	p[InkRod] = fg(t.Muted)
	p[InkBob] = fg(t.Accent).Bold(true)
	p[InkTrail] = fg(t.Secondary)
	p[InkVelocity] = fg(t.Velocity)
	p[InkGravity] = fg(t.Gravity)
	p[InkTension] = fg(t.Tension)
	p[InkResultant] = fg(t.Resultant)
	return p
}

type panelStyles struct {
	canvas, stats, header, label, value, active, graph, help, warn lipgloss.Style
}

func (t Theme) panel(width int) panelStyles {
	return panelStyles{
		canvas: lipgloss.NewStyle().Padding(canvasPadY, canvasPadX),
		stats: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).Padding(1, 2).Width(width),
		header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		warn:   lipgloss.NewStyle().Foreground(t.Warning),
	}
}
