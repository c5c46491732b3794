package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/currency"

	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Theme         string
	Currency      string
	ShowCents     bool
	DefaultPlan   string
	HorizonYears  string
	InflationRate string
}

// SetupValuesFrom seeds the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Theme:         cfg.Appearance.Theme,
		Currency:      cfg.Display.Currency,
		ShowCents:     cfg.Display.ShowCents,
		DefaultPlan:   cfg.General.DefaultPlan,
		HorizonYears:  strconv.Itoa(cfg.General.HorizonYears),
		InflationRate: strconv.FormatFloat(cfg.Projection.InflationRate*100, 'f', -1, 64),
	}
}

// ApplyTo copies the answers onto cfg. Values were already validated by the form.
func (v SetupValues) ApplyTo(cfg *config.Config) error {
	years, err := strconv.Atoi(strings.TrimSpace(v.HorizonYears))
	if err != nil {
		return fmt.Errorf("horizon years: %w", err)
	}
	pct, err := strconv.ParseFloat(strings.TrimSpace(v.InflationRate), 64)
	if err != nil {
		return fmt.Errorf("inflation rate: %w", err)
	}

	cfg.Appearance.Theme = v.Theme
	cfg.Display.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
	cfg.Display.ShowCents = v.ShowCents
	cfg.General.DefaultPlan = strings.TrimSpace(v.DefaultPlan)
	cfg.General.HorizonYears = years
	cfg.Projection.InflationRate = pct / 100
	return nil
}

// NewSetupForm builds the first-run wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to horizon").
				Description("Project your income, expenses, debt, investments and assets\nyear by year. A few questions and you're set."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default plan name").
				Description("Used when --plan is not given.").
				Value(&vals.DefaultPlan).
				Validate(notBlank("plan name")),
			huh.NewInput().
				Title("Projection horizon (years)").
				Value(&vals.HorizonYears).
				Validate(validYears),
			huh.NewInput().
				Title("Default inflation rate (%)").
				Value(&vals.InflationRate).
				Validate(validPercent),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Display currency").
				Description("ISO 4217 code, e.g. USD, EUR, GBP.").
				Value(&vals.Currency).
				Validate(validCurrency),
			huh.NewConfirm().
				Title("Show cents?").
				Value(&vals.ShowCents),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

func notBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validYears(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 150 {
		return fmt.Errorf("enter a number of years between 1 and 150")
	}
	return nil
}

func validPercent(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a percentage such as 3 or 2.5")
	}
	return nil
}

func validCurrency(s string) error {
	if _, err := currency.ParseISO(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown currency %q", s)
	}
	return nil
}
