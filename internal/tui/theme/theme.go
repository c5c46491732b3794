// Package theme defines color themes for the horizon TUI dashboard.
//
// Each theme is built from a palette: a ramp of neutral tones running from
// the app background up to primary text, an accent, and a set of hues. The
// finance roles (gains, losses and the colors of each element group) are
// picked from the hues, so a theme only has to name raw colors.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color
	BorderBright  lipgloss.Color
	BorderAccent  lipgloss.Color
	TextDim       lipgloss.Color // Hints, disabled
	TextMuted     lipgloss.Color // Labels, metadata
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	AccentDim     lipgloss.Color
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color

	// Gain and Loss color signed money figures.
	Gain lipgloss.Color
	Loss lipgloss.Color

	groups map[string]lipgloss.Color
}

// palette is the raw material of a theme.
type palette struct {
	// ramp runs background, surface, hover, bright surface, border,
	// bright border, dim text, muted text, primary text.
	ramp [9]string
	// accent is normal, bright, dim.
	accent [3]string
	hues   hues
}

type hues struct {
	green, greenBright, orange, red, blue, blueBright, yellow, magenta, cyan string
}

func build(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	h := p.hues
	t := Theme{
		Name:          name,
		Background:    c(p.ramp[0]),
		Surface:       c(p.ramp[1]),
		SurfaceHover:  c(p.ramp[2]),
		SurfaceBright: c(p.ramp[3]),
		Border:        c(p.ramp[4]),
		BorderBright:  c(p.ramp[5]),
		TextDim:       c(p.ramp[6]),
		TextMuted:     c(p.ramp[7]),
		TextPrimary:   c(p.ramp[8]),
		BorderAccent:  c(p.accent[0]),
		Accent:        c(p.accent[0]),
		AccentBright:  c(p.accent[1]),
		AccentDim:     c(p.accent[2]),
		Green:         c(h.green),
		GreenBright:   c(h.greenBright),
		Orange:        c(h.orange),
		Red:           c(h.red),
		Blue:          c(h.blue),
		BlueBright:    c(h.blueBright),
		Yellow:        c(h.yellow),
		Magenta:       c(h.magenta),
		Cyan:          c(h.cyan),
	}
	t.Gain, t.Loss = t.Green, t.Red
	t.groups = map[string]lipgloss.Color{
		"incomeStreams":     t.Green,
		"oneTimeIncomes":    t.GreenBright,
		"recurringExpenses": t.Orange,
		"oneTimeExpenses":   t.Yellow,
		"debts":             t.Red,
		"investments":       t.Blue,
		"assets":            t.Magenta,
	}
	return t
}

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = build("flexoki-dark", palette{
	ramp:   [9]string{"#100F0F", "#1C1B1A", "#282726", "#343331", "#403E3C", "#575653", "#575653", "#878580", "#FFFCF0"},
	accent: [3]string{"#3AA99F", "#5BC8BE", "#1A3533"},
	hues: hues{
		green: "#879A39", greenBright: "#A3B859", orange: "#DA702C", red: "#D14D41",
		blue: "#4385BE", blueBright: "#6BA3D6", yellow: "#D0A215", magenta: "#CE5D97", cyan: "#24837B",
	},
})

// FlexokiLight is the paper-colored counterpart of FlexokiDark.
var FlexokiLight = build("flexoki-light", palette{
	ramp:   [9]string{"#FFFCF0", "#F2F0E5", "#E6E4D9", "#DAD8CE", "#CECDC3", "#B7B5AC", "#B7B5AC", "#6F6E69", "#100F0F"},
	accent: [3]string{"#24837B", "#1C6C66", "#DDF1E4"},
	hues: hues{
		green: "#66800B", greenBright: "#536907", orange: "#BC5215", red: "#AF3029",
		blue: "#205EA6", blueBright: "#1A4F8C", yellow: "#AD8301", magenta: "#A02F6F", cyan: "#24837B",
	},
})

// CatppuccinMocha is a warm pastel theme.
var CatppuccinMocha = build("catppuccin-mocha", palette{
	ramp:   [9]string{"#1E1E2E", "#313244", "#45475A", "#585B70", "#585B70", "#7F849C", "#6C7086", "#A6ADC8", "#CDD6F4"},
	accent: [3]string{"#89B4FA", "#B4D0FB", "#293147"},
	hues: hues{
		green: "#A6E3A1", greenBright: "#C6F6C1", orange: "#FAB387", red: "#F38BA8",
		blue: "#89B4FA", blueBright: "#B4D0FB", yellow: "#F9E2AF", magenta: "#F5C2E7", cyan: "#94E2D5",
	},
})

// TokyoNight is a cool blue/purple theme.
var TokyoNight = build("tokyo-night", palette{
	ramp:   [9]string{"#1A1B26", "#24283B", "#343A52", "#414868", "#565F89", "#7982A9", "#565F89", "#A9B1D6", "#C0CAF5"},
	accent: [3]string{"#7AA2F7", "#A9C1FF", "#252B3F"},
	hues: hues{
		green: "#9ECE6A", greenBright: "#B9E87A", orange: "#FF9E64", red: "#F7768E",
		blue: "#7AA2F7", blueBright: "#A9C1FF", yellow: "#E0AF68", magenta: "#BB9AF7", cyan: "#7DCFFF",
	},
})

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = build("terminal", palette{
	ramp:   [9]string{"0", "0", "8", "8", "8", "7", "8", "7", "15"},
	accent: [3]string{"6", "14", "0"},
	hues: hues{
		green: "2", greenBright: "10", orange: "3", red: "1",
		blue: "4", blueBright: "12", yellow: "11", magenta: "5", cyan: "6",
	},
})

// Active is the currently selected theme.
var Active = FlexokiDark

// All available themes.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after name in All, wrapping around.
func Next(name string) Theme {
	for i, t := range All {
		if t.Name == name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}

// Signed picks the color for a money figure.
func (t Theme) Signed(v float64) lipgloss.Color {
	switch {
	case v > 0:
		return t.Gain
	case v < 0:
		return t.Loss
	}
	return t.TextPrimary
}

// Group returns the color for an element group key such as "debts".
// Unknown keys get the accent.
func (t Theme) Group(key string) lipgloss.Color {
	if c, ok := t.groups[key]; ok {
		return c
	}
	return t.Accent
}
