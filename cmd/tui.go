package cmd

import (
	"fmt"

	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/tui"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagTUIReadOnly bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: "Browse the projection and edit plan elements interactively.\n" +
		"Edits are written back to the plan file or store as they are made.",
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagTUIReadOnly, "read-only", false, "Do not write edits back to the plan")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors).
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Progress lines on stderr would tear the alt screen.
	flagQuiet = true

	opts := tui.Options{
		Load:     loadPlan,
		Source:   "store:" + planName(),
		Config:   appConfig,
		FirstRun: !config.Exists(),
	}
	if flagFile != "" {
		opts.Source = flagFile
	}
	if !flagTUIReadOnly {
		opts.Save = savePlan
	}

	app := tui.NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// savePlan writes an edited plan back to wherever loadPlan read it from.
func savePlan(plan model.Plan) error {
	if flagFile != "" {
		return planfile.WriteFile(flagFile, plan)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SavePlan(plan)
}
