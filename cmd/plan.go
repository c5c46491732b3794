package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/theirongolddev/horizon/internal/cli"
	"github.com/theirongolddev/horizon/internal/config"
	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPlanSample bool
	flagPlanForce  bool
	flagPlanTOML   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create, inspect and edit plans",
}

var planInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new plan in the store",
	Args:  cobra.NoArgs,
	RunE:  runPlanInit,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored plans and plan files",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the elements of a plan",
	Args:  cobra.NoArgs,
	RunE:  runPlanShow,
}

var planImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Copy a TOML plan file into the store (all files in the plan dir if none given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlanImport,
}

var planExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a stored plan to a TOML file (- for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanExport,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a plan from the store",
	Args:  cobra.NoArgs,
	RunE:  runPlanDelete,
}

func init() {
	planInitCmd.Flags().BoolVar(&flagPlanSample, "sample", false, "Seed the plan with the built-in example elements")
	planInitCmd.Flags().BoolVar(&flagPlanForce, "force", false, "Replace an existing plan of the same name")
	planImportCmd.Flags().BoolVar(&flagPlanForce, "force", false, "Replace existing plans of the same name")
	planShowCmd.Flags().BoolVar(&flagPlanTOML, "toml", false, "Print the plan as a TOML document")

	planCmd.AddCommand(planInitCmd, planListCmd, planShowCmd, planImportCmd, planExportCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanInit(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	name := planName()
	if _, err := st.Revision(name); err == nil && !flagPlanForce {
		return fmt.Errorf("plan %q already exists; pass --force to replace it", name)
	}

	var plan model.Plan
	if flagPlanSample {
		plan = model.SamplePlan()
	} else {
		start, end := config.Horizon(appConfig, time.Now().Year())
		plan = model.Plan{StartYear: start, EndYear: end, InflationRate: appConfig.Projection.InflationRate}
	}
	plan.Name = name
	plan = applyOverrides(rootCmd.PersistentFlags(), plan)

	if err := st.SavePlan(plan); err != nil {
		return err
	}
	fmt.Printf("  Created plan %q (%s, %d elements) in %s\n",
		name, cli.FormatYearSpan(plan.StartYear, plan.EndYear), plan.Elements.Len(), storePath())
	return nil
}

func runPlanList(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	plans, err := st.ListPlans()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLANS"))
	fmt.Println()

	if len(plans) == 0 {
		fmt.Println("  No stored plans. Create one with `horizon plan init`.")
	} else {
		rows := make([][]string, 0, len(plans))
		for _, p := range plans {
			marker := ""
			if p.Name == planName() {
				marker = "*"
			}
			rows = append(rows, []string{
				marker + p.Name,
				cli.FormatYearSpan(p.StartYear, p.EndYear),
				strconv.Itoa(p.Elements),
				cli.FormatPercent(p.InflationRate),
				strconv.FormatInt(p.Revision, 10),
				p.UpdatedAt.Local().Format("2006-01-02 15:04"),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Store " + storePath(),
			Headers: []string{"Plan", "Horizon", "Elements", "Inflation", "Rev", "Updated"},
			Rows:    rows,
		}))
	}

	dir := config.PlanDir(appConfig)
	files, err := planfile.ScanDir(dir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{
				f.Name,
				f.Path,
				cli.FormatNumber(f.Size) + " B",
				f.ModTime.Local().Format("2006-01-02 15:04"),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Files " + dir,
			Headers: []string{"Plan", "Path", "Size", "Modified"},
			Rows:    rows,
		}))
	}
	return nil
}

func runPlanShow(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	if flagPlanTOML {
		return planfile.Encode(os.Stdout, plan)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", planTitle(plan), cli.FormatYearSpan(plan.StartYear, plan.EndYear))))
	fmt.Println()

	if plan.Elements.Len() == 0 {
		fmt.Println("  The plan has no elements. Add one with `horizon plan add <kind>`.")
		return nil
	}

	var rows [][]string
	for i, g := range model.Groups {
		elems := plan.Elements.OfKind(g.Kind)
		if len(elems) == 0 {
			continue
		}
		if i > 0 && len(rows) > 0 {
			rows = append(rows, []string{"---"})
		}
		for _, e := range elems {
			rows = append(rows, []string{g.Label, e.ElementID(), e.Label(), elementSpan(e), elementAmount(e)})
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Kind", "ID", "Description", "Years", "Amount"},
		Rows:    rows,
	}))
	return nil
}

func elementSpan(e model.Element) string {
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

func elementAmount(e model.Element) string {
	switch v := e.(type) {
	case model.IncomeStream:
		return cli.FormatMoney(v.GrossAmount) + "/yr"
	case model.RecurringExpense:
		return cli.FormatMoney(v.AnnualAmount) + "/yr"
	case model.OneTimeExpense:
		return cli.FormatMoney(v.Amount)
	case model.OneTimeIncome:
		return cli.FormatMoney(v.Amount)
	case model.Debt:
		return cli.FormatMoney(v.Principal) + " @ " + cli.FormatPercent(v.InterestRate)
	case model.Investment:
		return cli.FormatPercent(v.PercentageOfAvailableIncome) + " of income"
	case model.Asset:
		return cli.FormatMoney(v.InitialValue)
	}
	return ""
}

func runPlanImport(_ *cobra.Command, args []string) error {
	var results []planfile.LoadResult
	if len(args) == 1 {
		plan, err := planfile.ReadFile(args[0])
		if err != nil {
			return err
		}
		if flagPlan != "" {
			plan.Name = flagPlan
		}
		results = []planfile.LoadResult{{File: planfile.DiscoveredFile{Path: args[0]}, Plan: plan}}
	} else {
		dir := config.PlanDir(appConfig)
		var err error
		results, err = planfile.LoadDir(dir, func(current, total int) {
			warnf("\r  Parsing plan files... %d/%d", current, total)
		})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no plan files found in %s", dir)
		}
		warnf("\n")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, r := range results {
		if r.Err != nil {
			warnf("  Skipping %s: %v\n", r.File.Path, r.Err)
			continue
		}
		if _, err := st.Revision(r.Plan.Name); err == nil && !flagPlanForce {
			warnf("  Skipping %s: plan %q already exists (use --force)\n", r.File.Path, r.Plan.Name)
			continue
		}
		if err := st.SavePlan(r.Plan); err != nil {
			return err
		}
		fmt.Printf("  Imported %s as %q (%d elements)\n", r.File.Path, r.Plan.Name, r.Plan.Elements.Len())
	}
	return nil
}

func runPlanExport(_ *cobra.Command, args []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	if args[0] == "-" {
		return planfile.Encode(os.Stdout, plan)
	}
	if err := planfile.WriteFile(args[0], plan); err != nil {
		return err
	}
	fmt.Printf("  Wrote %q to %s\n", plan.Name, args[0])
	return nil
}

func runPlanDelete(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	name := planName()
	if err := st.DeletePlan(name); err != nil {
		if errors.Is(err, store.ErrPlanNotFound) {
			return fmt.Errorf("no plan named %q", name)
		}
		return err
	}
	fmt.Printf("  Deleted plan %q\n", name)
	return nil
}
