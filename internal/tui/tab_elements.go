package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/tui/components"
	"github.com/theirongolddev/horizon/internal/tui/forms"
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type elementsMode int

const (
	elementsBrowse elementsMode = iota
	elementsPickKind
	elementsEdit
	elementsConfirmDelete
)

// elementsState tracks the elements tab: the list cursor and whichever
// form is open over it.
type elementsState struct {
	cursor int
	mode   elementsMode

	form    *huh.Form
	fields  []*forms.Field
	target  model.Element
	isNew   bool
	kind    *string
	confirm *bool
}

func (s elementsState) active() bool {
	return s.mode != elementsBrowse && s.form != nil
}

func (s *elementsState) close() {
	s.mode = elementsBrowse
	s.form = nil
	s.fields = nil
	s.target = nil
	s.isNew = false
	s.kind = nil
	s.confirm = nil
}

func (a App) selectedElement() (model.Element, bool) {
	all := a.plan.Elements.All()
	if a.elems.cursor < 0 || a.elems.cursor >= len(all) {
		return nil, false
	}
	return all[a.elems.cursor], true
}

func (a App) updateElementsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	n := a.plan.Elements.Len()

	switch {
	case key.Matches(msg, a.keys.Up):
		a.elems.cursor = max(0, a.elems.cursor-1)
		return a, nil, true
	case key.Matches(msg, a.keys.Down):
		a.elems.cursor = max(0, min(n-1, a.elems.cursor+1))
		return a, nil, true
	case key.Matches(msg, a.keys.Add):
		m, cmd := a.openKindPicker()
		return m, cmd, true
	}

	e, ok := a.selectedElement()
	if !ok {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, a.keys.Edit):
		m, cmd := a.openElementForm(e, false)
		return m, cmd, true
	case key.Matches(msg, a.keys.Delete):
		m, cmd := a.openDeleteConfirm(e)
		return m, cmd, true
	case key.Matches(msg, a.keys.Earlier):
		m, cmd := a.moveElement(e, model.HandleStart, model.StartYear(e)-1)
		return m, cmd, true
	case key.Matches(msg, a.keys.Later):
		m, cmd := a.moveElement(e, model.HandleStart, model.StartYear(e)+1)
		return m, cmd, true
	case key.Matches(msg, a.keys.Shorter):
		m, cmd := a.moveElement(e, model.HandleEnd, model.EndYear(e)-1)
		return m, cmd, true
	case key.Matches(msg, a.keys.Longer):
		m, cmd := a.moveElement(e, model.HandleEnd, model.EndYear(e)+1)
		return m, cmd, true
	}
	return a, nil, false
}

// moveElement shifts one end of an element's span by a year. Elements do not
// move before the plan's first year unless they already start earlier. An
// asset that is held to the end has no sell year to nudge.
func (a App) moveElement(e model.Element, h model.Handle, year int) (App, tea.Cmd) {
	if h == model.HandleEnd {
		switch v := e.(type) {
		case model.Debt:
			a.setStatus("Debts run until repaid and have no end year", true)
			return a, nil
		case model.Asset:
			if v.SellYear == nil {
				a.setStatus(v.Label()+" is held to the end; edit it to set a sell year", true)
				return a, nil
			}
		}
		if model.IsOneTime(e) {
			h = model.HandleStart
		}
	}

	lo := min(a.plan.StartYear, model.StartYear(e))
	hi := max(a.plan.EndYear, model.OpenEndedYear)
	moved := model.MoveHandle(e, h, year, lo, hi)

	plan := a.plan.Clone()
	if err := plan.Elements.Replace(moved); err != nil {
		a.setStatus(err.Error(), true)
		return a, nil
	}
	return a.commit(plan, fmt.Sprintf("Moved %s to %s", moved.Label(), spanOf(moved)))
}

func (a App) openKindPicker() (App, tea.Cmd) {
	options := make([]huh.Option[string], 0, len(model.Kinds))
	for _, k := range model.Kinds {
		options = append(options, huh.NewOption(model.GroupFor(k).Label, string(k)))
	}

	kind := string(model.Kinds[0])
	a.elems.kind = &kind
	a.elems.mode = elementsPickKind
	a.elems.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Add element").
			Description("What kind of element?").
			Options(options...).
			Value(a.elems.kind),
	)).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	return a, a.elems.form.Init()
}

func (a App) openElementForm(e model.Element, isNew bool) (App, tea.Cmd) {
	a.elems.mode = elementsEdit
	a.elems.target = e
	a.elems.isNew = isNew
	a.elems.fields = forms.FieldsFor(e)
	a.elems.form = forms.NewElementForm(e, a.elems.fields).WithShowHelp(false)
	if a.width > 0 {
		a.elems.form = a.elems.form.WithWidth(min(a.contentWidth()-4, 80))
	}
	return a, a.elems.form.Init()
}

func (a App) openDeleteConfirm(e model.Element) (App, tea.Cmd) {
	a.elems.mode = elementsConfirmDelete
	a.elems.target = e
	a.elems.confirm = new(bool)
	a.elems.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s %q?", e.Kind(), e.Label())).
			Affirmative("Delete").
			Negative("Keep").
			Value(a.elems.confirm),
	)).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	return a, a.elems.form.Init()
}

// updateElementForms forwards input to the open form and acts on it once
// the form completes.
func (a App) updateElementForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.keys.Back) {
		a.elems.close()
		return a, nil
	}

	form, cmd := a.elems.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.elems.form = f
	}

	switch a.elems.form.State {
	case huh.StateAborted:
		a.elems.close()
		return a, nil
	case huh.StateCompleted:
		return a.completeElementForm()
	}
	return a, cmd
}

func (a App) completeElementForm() (tea.Model, tea.Cmd) {
	st := a.elems
	a.elems.close()

	switch st.mode {
	case elementsPickKind:
		kind, err := model.ParseKind(*st.kind)
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		e, err := model.NewElement(kind, a.plan.StartYear)
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		return a.openElementForm(e, true)

	case elementsEdit:
		edited, err := forms.Apply(st.target, st.fields)
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		plan := a.plan.Clone()
		what := "Updated " + edited.Label()
		if st.isNew {
			err = plan.Elements.Add(edited)
			what = "Added " + edited.Label()
		} else {
			err = plan.Elements.Replace(edited)
		}
		if err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		if st.isNew {
			a.elems.cursor = indexOfElement(plan.Elements, edited.ElementID())
		}
		return a.commit(plan, what)

	case elementsConfirmDelete:
		if !*st.confirm {
			return a, nil
		}
		plan := a.plan.Clone()
		if !plan.Elements.Delete(st.target.ElementID()) {
			a.setStatus(fmt.Sprintf("%s is already gone", st.target.Label()), true)
			return a, nil
		}
		return a.commit(plan, "Deleted "+st.target.Label())
	}
	return a, nil
}

func indexOfElement(c model.Collections, id string) int {
	for i, e := range c.All() {
		if e.ElementID() == id {
			return i
		}
	}
	return 0
}

func (a App) renderElementForm(cw int) string {
	title := "Element"
	switch a.elems.mode {
	case elementsPickKind:
		title = "Add Element"
	case elementsEdit:
		title = "Edit Element"
		if a.elems.isNew {
			title = "New Element"
		}
	case elementsConfirmDelete:
		title = "Delete Element"
	}

	t := theme.Active
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("[Enter] next  [Esc] cancel")
	return components.ContentCard(title, a.elems.form.View()+"\n"+hint, cw)
}

func (a App) renderElementsTab(cw, h int) string {
	t := theme.Active
	all := a.plan.Elements.All()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if len(all) == 0 {
		return components.ContentCard("Elements",
			mutedStyle.Render("This plan has no elements yet. Press a to add one."), cw)
	}

	inner := components.CardInnerWidth(cw)
	kindW, spanW, amountW := 20, 11, 22
	labelW := max(inner-2-kindW-spanW-amountW-3, 10)

	// Keep the cursor visible within the available rows.
	visible := max(h-6, 3)
	offset := 0
	if a.elems.cursor >= visible {
		offset = a.elems.cursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(spaceStyle.Render("  "))
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %*s", labelW, "Element", kindW, "Kind", spanW, "Years", amountW, "Amount")))
	b.WriteString("\n")

	end := min(len(all), offset+visible)
	for i := offset; i < end; i++ {
		e := all[i]
		g := model.GroupFor(e.Kind())
		kindStyle := lipgloss.NewStyle().Foreground(t.Group(g.Key)).Background(t.Surface)

		label := fmt.Sprintf("%-*s", labelW, truncStr(e.Label(), labelW))
		kind := fmt.Sprintf("%-*s", kindW, truncStr(g.Label, kindW))
		rest := fmt.Sprintf("%-*s %*s", spanW, spanOf(e), amountW, amountOf(e))

		if i == a.elems.cursor {
			line := markerStyle.Render("▸ ") + selectedStyle.Render(label+" "+kind+" "+rest)
			b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Left, line,
				lipgloss.WithWhitespaceBackground(t.SurfaceBright)))
		} else {
			b.WriteString(spaceStyle.Render("  "))
			b.WriteString(rowStyle.Render(label))
			b.WriteString(spaceStyle.Render(" "))
			b.WriteString(kindStyle.Render(kind))
			b.WriteString(spaceStyle.Render(" "))
			b.WriteString(mutedStyle.Render(rest))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("[Enter] edit  [a] add  [d] delete  [ ] start  { } end"))

	title := fmt.Sprintf("Elements (%d)", len(all))
	if a.opts.Save == nil {
		title += " · read-only"
	}
	return components.ContentCard(title, b.String(), cw)
}

// spanOf renders an element's timeline span; open-ended spans end in "-".
func spanOf(e model.Element) string {
	start, end := model.StartYear(e), model.EndYear(e)
	switch {
	case model.IsOneTime(e):
		return strconv.Itoa(start)
	case end == model.OpenEndedYear:
		if a, ok := e.(model.Asset); ok && a.SellYear != nil {
			return cli.FormatYearSpan(start, end)
		}
		return strconv.Itoa(start) + "-"
	}
	return cli.FormatYearSpan(start, end)
}

func amountOf(e model.Element) string {
	switch v := e.(type) {
	case model.IncomeStream:
		return cli.FormatMoneyCompact(v.GrossAmount) + "/yr"
	case model.RecurringExpense:
		return cli.FormatMoneyCompact(v.AnnualAmount) + "/yr"
	case model.OneTimeExpense:
		return cli.FormatMoneyCompact(v.Amount)
	case model.OneTimeIncome:
		return cli.FormatMoneyCompact(v.Amount)
	case model.Debt:
		return cli.FormatMoneyCompact(v.Principal) + " @ " + cli.FormatPercent(v.InterestRate)
	case model.Investment:
		return cli.FormatPercent(v.PercentageOfAvailableIncome) + " of income"
	case model.Asset:
		return cli.FormatMoneyCompact(v.InitialValue)
	}
	return ""
}
