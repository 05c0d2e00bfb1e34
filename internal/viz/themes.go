package viz

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the live view draws with.
type Palette struct {
	Name    string
	Title   lipgloss.Color
	Graph   lipgloss.Color
	Phase   lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Border  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var (
	PalettePlasma = Palette{
		Name:    "plasma",
		Title:   lipgloss.Color("#ff00ff"),
		Graph:   lipgloss.Color("#00ffff"),
		Phase:   lipgloss.Color("#ffff00"),
		Label:   lipgloss.Color("#888899"),
		Value:   lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#444466"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	PalettePhosphor = Palette{
		Name:    "phosphor",
		Title:   lipgloss.Color("#88ff88"),
		Graph:   lipgloss.Color("#00ff00"),
		Phase:   lipgloss.Color("#00cc00"),
		Label:   lipgloss.Color("#005500"),
		Value:   lipgloss.Color("#00ff00"),
		Border:  lipgloss.Color("#003300"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
	}

	PaletteMono = Palette{
		Name:    "mono",
		Title:   lipgloss.Color("#ffffff"),
		Graph:   lipgloss.Color("#cccccc"),
		Phase:   lipgloss.Color("#0088ff"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#444444"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	Palettes = []Palette{PalettePlasma, PalettePhosphor, PaletteMono}
)

// GetPalette returns the named palette, falling back to plasma.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PalettePlasma
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

func nextPalette(current Palette) Palette {
	for i, p := range Palettes {
		if p.Name == current.Name {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return Palettes[0]
}

type styles struct {
	title, graph, phase, label, value, panel, running, paused, help lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(p.Title).Bold(true).MarginBottom(1),
		graph:   lipgloss.NewStyle().Foreground(p.Graph).Padding(1, 0),
		phase:   lipgloss.NewStyle().Foreground(p.Phase),
		label:   lipgloss.NewStyle().Foreground(p.Label).Width(14),
		value:   lipgloss.NewStyle().Foreground(p.Value),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		running: lipgloss.NewStyle().Foreground(p.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(p.Paused).Bold(true),
		help:    lipgloss.NewStyle().Foreground(p.Label).MarginTop(1),
	}
}
