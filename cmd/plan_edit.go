package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/store"
	"github.com/theirongolddev/horizon/internal/tui/forms"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagEditSet         []string
	flagEditInteractive bool
	flagEditYear        int
	flagMoveStart       int
	flagMoveEnd         int
)

var planAddCmd = &cobra.Command{
	Use:   "add <kind>",
	Short: "Add an element (income-stream, recurring-expense, one-time-expense, one-time-income, debt, investment, asset)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanAdd,
}

var planSetCmd = &cobra.Command{
	Use:   "set <id> [key=value ...]",
	Short: "Change fields of an element",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanSet,
}

var planRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanRm,
}

var planMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move the start or end year of an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanMove,
}

func init() {
	planAddCmd.Flags().StringArrayVar(&flagEditSet, "set", nil, "Field assignment key=value (repeatable)")
	planAddCmd.Flags().BoolVarP(&flagEditInteractive, "interactive", "i", false, "Fill in the fields with a form")
	planAddCmd.Flags().IntVar(&flagEditYear, "year", 0, "First year of the element (default: plan start)")
	planSetCmd.Flags().BoolVarP(&flagEditInteractive, "interactive", "i", false, "Edit the fields with a form")
	planMoveCmd.Flags().IntVar(&flagMoveStart, "start", 0, "New start year")
	planMoveCmd.Flags().IntVar(&flagMoveEnd, "end", 0, "New end year")
	planMoveCmd.MarkFlagsOneRequired("start", "end")
	planMoveCmd.MarkFlagsMutuallyExclusive("start", "end")

	planCmd.AddCommand(planAddCmd, planSetCmd, planRmCmd, planMoveCmd)
}

// editTarget is the plan being edited and where edits are written back:
// the plan file given with --file, or the selected plan in the store.
type editTarget struct {
	plan model.Plan
	path string
	st   *store.Store
}

func openEditTarget() (*editTarget, error) {
	if flagFile != "" {
		plan, err := planfile.ReadFile(flagFile)
		if err != nil {
			return nil, err
		}
		return &editTarget{plan: plan, path: flagFile}, nil
	}

	st, err := openStore()
	if err != nil {
		return nil, err
	}
	plan, err := st.LoadPlan(planName())
	if err != nil {
		_ = st.Close()
		if errors.Is(err, store.ErrPlanNotFound) {
			return nil, fmt.Errorf("no plan named %q; create one with `horizon plan init`", planName())
		}
		return nil, err
	}
	return &editTarget{plan: plan, st: st}, nil
}

func (t *editTarget) Close() {
	if t.st != nil {
		_ = t.st.Close()
	}
}

// put writes e, which must already be in t.plan.
func (t *editTarget) put(e model.Element) error {
	if t.st != nil {
		return t.st.PutElement(t.plan.Name, e)
	}
	return planfile.WriteFile(t.path, t.plan)
}

func (t *editTarget) remove(id string) error {
	if t.st != nil {
		_, err := t.st.DeleteElement(t.plan.Name, id)
		return err
	}
	return planfile.WriteFile(t.path, t.plan)
}

func (t *editTarget) find(id string) (model.Element, error) {
	e, ok := t.plan.Elements.Find(id)
	if !ok {
		return nil, fmt.Errorf("plan %q has no element %q", t.plan.Name, id)
	}
	return e, nil
}

// editFields applies --set style assignments and, when requested, a form.
func editFields(e model.Element, assignments []string, interactive bool) (model.Element, error) {
	var err error
	if len(assignments) > 0 {
		if e, err = planfile.SetFields(e, assignments); err != nil {
			return nil, err
		}
	}
	if !interactive {
		return e, nil
	}

	fields := forms.FieldsFor(e)
	if err := forms.NewElementForm(e, fields).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, errors.New("canceled")
		}
		return nil, err
	}
	return forms.Apply(e, fields)
}

func runPlanAdd(_ *cobra.Command, args []string) error {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}

	t, err := openEditTarget()
	if err != nil {
		return err
	}
	defer t.Close()

	year := t.plan.StartYear
	if flagEditYear != 0 {
		year = flagEditYear
	}
	e, err := model.NewElement(kind, year)
	if err != nil {
		return err
	}
	if e, err = editFields(e, flagEditSet, flagEditInteractive); err != nil {
		return err
	}

	if err := t.plan.Elements.Add(e); err != nil {
		return err
	}
	if err := t.put(e); err != nil {
		return err
	}
	fmt.Printf("  Added %s %s\n", kind, e.ElementID())
	return nil
}

func runPlanSet(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !flagEditInteractive {
		return errors.New("nothing to change: give key=value pairs or -i")
	}

	t, err := openEditTarget()
	if err != nil {
		return err
	}
	defer t.Close()

	e, err := t.find(args[0])
	if err != nil {
		return err
	}
	if e, err = editFields(e, args[1:], flagEditInteractive); err != nil {
		return err
	}

	if err := t.plan.Elements.Replace(e); err != nil {
		return err
	}
	if err := t.put(e); err != nil {
		return err
	}
	fmt.Printf("  Updated %s %s\n", e.Kind(), e.ElementID())
	return nil
}

func runPlanRm(_ *cobra.Command, args []string) error {
	t, err := openEditTarget()
	if err != nil {
		return err
	}
	defer t.Close()

	e, err := t.find(args[0])
	if err != nil {
		return err
	}
	t.plan.Elements.Delete(e.ElementID())
	if err := t.remove(e.ElementID()); err != nil {
		return err
	}
	fmt.Printf("  Removed %s %s\n", e.Kind(), e.ElementID())
	return nil
}

func runPlanMove(cmd *cobra.Command, args []string) error {
	t, err := openEditTarget()
	if err != nil {
		return err
	}
	defer t.Close()

	e, err := t.find(args[0])
	if err != nil {
		return err
	}

	handle, year := model.HandleStart, flagMoveStart
	if cmd.Flags().Changed("end") {
		handle, year = model.HandleEnd, flagMoveEnd
	}
	if _, ok := e.(model.Debt); ok && handle == model.HandleEnd {
		return fmt.Errorf("debt %q has no end year to move", e.ElementID())
	}

	lo := min(t.plan.StartYear, year)
	hi := max(t.plan.EndYear, model.OpenEndedYear)
	moved := model.MoveHandle(e, handle, year, lo, hi)

	if err := t.plan.Elements.Replace(moved); err != nil {
		return err
	}
	if err := t.put(moved); err != nil {
		return err
	}
	fmt.Printf("  Moved %s %s to %s\n", moved.Kind(), moved.ElementID(), elementSpan(moved))
	return nil
}
