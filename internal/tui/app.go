// Package tui provides the interactive Bubble Tea dashboard for horizon.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/projection"
	"github.com/theirongolddev/horizon/internal/tui/components"
	"github.com/theirongolddev/horizon/internal/tui/forms"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabTable
	tabElements
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// Options wires the dashboard to a plan source.
type Options struct {
	// Load reads the plan; it is called at startup and on reload.
	Load func() (model.Plan, error)
	// Save persists an edited plan. A nil Save makes the dashboard read-only.
	Save func(model.Plan) error
	// Source describes where the plan lives, for the status bar.
	Source string
	Config config.Config
	// FirstRun shows the setup form once the plan is loaded.
	FirstRun bool
}

// PlanLoadedMsg is sent when the plan has been read and projected.
type PlanLoadedMsg struct {
	Plan     model.Plan
	LoadTime time.Duration
	Err      error
}

// PlanSavedMsg reports the outcome of persisting an edit.
type PlanSavedMsg struct {
	What string
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	cfg  config.Config

	// Data
	plan     model.Plan
	years    []model.YearlySnapshot
	summary  model.Summary
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	keys      keyMap
	help      help.Model
	spinner   spinner.Model

	// Per-tab state
	yearTable table.Model
	elems     elementsState
	settings  settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *forms.SetupValues
	needSetup bool

	status    string
	statusErr bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:      opts,
		cfg:       opts.Config,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		yearTable: newYearTable(),
		needSetup: opts.FirstRun,
		setupVals: setupValues(opts.Config),
	}
}

// setupValues lives on the heap so the form's bindings survive App copies.
func setupValues(cfg config.Config) *forms.SetupValues {
	v := forms.SetupValuesFrom(cfg)
	return &v
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadPlanCmd(a.opts.Load),
		a.spinner.Tick,
	)
}

func loadPlanCmd(load func() (model.Plan, error)) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		plan, err := load()
		return PlanLoadedMsg{Plan: plan, LoadTime: time.Since(start), Err: err}
	}
}

func saveCmd(save func(model.Plan) error, plan model.Plan, what string) tea.Cmd {
	return func() tea.Msg {
		return PlanSavedMsg{What: what, Err: save(plan)}
	}
}

// recompute re-runs the projection after the plan changed.
func (a *App) recompute() {
	a.years = projection.Project(a.plan)
	a.summary = projection.Summarize(a.years)
	a.yearTable.SetRows(yearRows(a.years))
	if a.yearTable.Cursor() >= len(a.years) {
		a.yearTable.SetCursor(max(0, len(a.years)-1))
	}

	if n := a.plan.Elements.Len(); a.elems.cursor >= n {
		a.elems.cursor = max(0, n-1)
	}
}

// commit applies an edited plan, re-projects it and persists it.
func (a App) commit(plan model.Plan, what string) (App, tea.Cmd) {
	a.plan = plan
	a.recompute()
	if a.opts.Save == nil {
		a.setStatus(what+" (read-only, not saved)", false)
		return a, nil
	}
	return a, saveCmd(a.opts.Save, plan.Clone(), what)
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.yearTable.SetHeight(a.tableHeight())
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case PlanLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.plan = msg.Plan
			a.recompute()
			a.setStatus(fmt.Sprintf("Loaded %d elements in %s", a.plan.Elements.Len(), msg.LoadTime.Round(time.Millisecond)), false)
		} else {
			a.setStatus(msg.Err.Error(), true)
		}

		if a.needSetup && a.setupForm == nil {
			a.setupForm = forms.NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case PlanSavedMsg:
		if msg.Err != nil {
			a.setStatus("Save failed: "+msg.Err.Error(), true)
		} else {
			a.setStatus(msg.What, false)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.elems.active() {
			return a.updateElementForms(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.updateKeys(msg)
	}

	// Forward unhandled messages (cursor blinks etc.) to any open form.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.elems.active() {
		return a.updateElementForms(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Reload):
		a.setStatus("Reloading...", false)
		return a, loadPlanCmd(a.opts.Load)
	case key.Matches(msg, a.keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case key.Matches(msg, a.keys.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	switch a.activeTab {
	case tabTable:
		if key.Matches(msg, a.keys.Up, a.keys.Down) || msg.String() == "g" || msg.String() == "G" ||
			msg.String() == "pgup" || msg.String() == "pgdown" {
			var cmd tea.Cmd
			a.yearTable, cmd = a.yearTable.Update(msg)
			return a, cmd
		}
	case tabElements:
		if m, cmd, ok := a.updateElementsKeys(msg); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKeys(msg); ok {
			return m, cmd
		}
	}

	if runes := msg.Runes; len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || a.setupForm != nil || a.elems.active() {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabTable:
			a.yearTable.MoveUp(1)
		case tabElements:
			a.elems.cursor = max(0, a.elems.cursor-1)
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabTable:
			a.yearTable.MoveDown(1)
		case tabElements:
			a.elems.cursor = max(0, min(a.plan.Elements.Len()-1, a.elems.cursor+1))
		}
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := a.cfg
		if err := a.setupVals.ApplyTo(&cfg); err != nil {
			a.setStatus(err.Error(), true)
		} else {
			a.applyConfig(cfg)
			if err := config.Save(cfg); err != nil {
				a.setStatus("Could not save config: "+err.Error(), true)
			} else {
				a.setStatus("Saved "+config.ConfigPath(), false)
			}
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// applyConfig makes display settings take effect immediately.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	if err := cli.SetCurrency(cfg.Display.Currency, cfg.Display.ShowCents); err != nil {
		a.setStatus(err.Error(), true)
	}
	a.yearTable.SetStyles(tableStyles())
	a.yearTable.SetRows(yearRows(a.years))
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  horizon needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ horizon"))
	b.WriteString(subtitleStyle.Render(" · Financial Projections"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + a.opts.Source))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	h := a.help
	h.ShowAll = true

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(h.View(a.keys))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("o t e s jump to a tab · press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	info := a.opts.Source
	if a.loadErr == nil {
		info = fmt.Sprintf("%s · %s · %s", a.opts.Source, a.plan.Name, cli.FormatYearSpan(a.plan.StartYear, a.plan.EndYear))
	}
	statusBar := components.RenderStatusBar(w, a.status, info, a.statusErr)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderLoadError(cw)
	case a.elems.active():
		content = a.renderElementForm(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabTable:
			content = a.renderTableTab(cw)
		case tabElements:
			content = a.renderElementsTab(cw, contentH)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	body := errStyle.Render(a.loadErr.Error()) + "\n\n" +
		hintStyle.Render("Fix the plan and press r to reload, or q to quit.")
	return components.ContentCard("Could not load the plan", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
