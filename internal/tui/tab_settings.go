package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/tui/components"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldPlan = iota
	settingsFieldHorizon
	settingsFieldInflation
	settingsFieldCurrency
	settingsFieldCents
	settingsFieldTheme
	settingsFieldServeAddr
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.settings.cursor = max(0, a.settings.cursor-1)
		return a, nil, true
	case key.Matches(msg, a.keys.Down):
		a.settings.cursor = min(settingsFieldCount-1, a.settings.cursor+1)
		return a, nil, true
	case key.Matches(msg, a.keys.Edit):
		// Toggles and the theme cycle in place; everything else opens an input.
		switch a.settings.cursor {
		case settingsFieldCents:
			cfg := a.cfg
			cfg.Display.ShowCents = !cfg.Display.ShowCents
			a.saveSettings(cfg)
			return a, nil, true
		case settingsFieldTheme:
			cfg := a.cfg
			cfg.Appearance.Theme = theme.Next(cfg.Appearance.Theme).Name
			a.saveSettings(cfg)
			return a, nil, true
		}
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (App, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldPlan:
		ti.Placeholder = "default"
		ti.SetValue(cfg.General.DefaultPlan)
	case settingsFieldHorizon:
		ti.Placeholder = "36 (years)"
		ti.SetValue(strconv.Itoa(cfg.General.HorizonYears))
	case settingsFieldInflation:
		ti.Placeholder = "3 (percent per year)"
		ti.SetValue(strconv.FormatFloat(cfg.Projection.InflationRate*100, 'f', -1, 64))
	case settingsFieldCurrency:
		ti.Placeholder = "USD, EUR, GBP..."
		ti.SetValue(cfg.Display.Currency)
	case settingsFieldServeAddr:
		ti.Placeholder = "127.0.0.1:8787"
		ti.SetValue(cfg.Serve.Addr)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave parses the edited value into a copy of the config and saves
// it. Invalid input is reported and leaves the config untouched.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldPlan:
		if val == "" {
			a.settingsFail(fmt.Errorf("plan name cannot be empty"))
			return
		}
		cfg.General.DefaultPlan = val
	case settingsFieldHorizon:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 150 {
			a.settingsFail(fmt.Errorf("horizon must be between 1 and 150 years"))
			return
		}
		cfg.General.HorizonYears = n
	case settingsFieldInflation:
		pct, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			a.settingsFail(fmt.Errorf("inflation must be a percentage"))
			return
		}
		cfg.Projection.InflationRate = pct / 100
	case settingsFieldCurrency:
		if err := cli.SetCurrency(strings.ToUpper(val), cfg.Display.ShowCents); err != nil {
			a.settingsFail(err)
			return
		}
		cfg.Display.Currency = strings.ToUpper(val)
	case settingsFieldServeAddr:
		cfg.Serve.Addr = val
	}

	a.saveSettings(cfg)
}

func (a *App) settingsFail(err error) {
	a.settings.saved = false
	a.settings.saveErr = err
}

func (a *App) saveSettings(cfg config.Config) {
	a.applyConfig(cfg)
	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	cents := "no"
	if cfg.Display.ShowCents {
		cents = "yes"
	}

	fields := []field{
		{"Default Plan", cfg.General.DefaultPlan},
		{"Horizon", fmt.Sprintf("%d years", cfg.General.HorizonYears)},
		{"Inflation", cli.FormatPercent(cfg.Projection.InflationRate)},
		{"Currency", cfg.Display.Currency + "  (" + cli.FormatMoney(1234567.891) + ")"},
		{"Show Cents", cents},
		{"Theme", cfg.Appearance.Theme},
		{"Serve Address", cfg.Serve.Addr},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit/toggle  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Plan:            ") + valueStyle.Render(a.plan.Name) + "\n")
	infoBody.WriteString(labelStyle.Render("Source:          ") + valueStyle.Render(a.opts.Source) + "\n")
	infoBody.WriteString(labelStyle.Render("Elements:        ") + valueStyle.Render(cli.FormatNumber(int64(a.plan.Elements.Len()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:       ") + valueStyle.Render(fmt.Sprintf("%.1fms", float64(a.loadTime.Microseconds())/1000)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
