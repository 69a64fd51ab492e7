package metafit

import (
	"fmt"
	"io"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/datekey"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/plan"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/service"
	"github.com/spf13/cobra"
)

var planDate string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the daily meal and exercise plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the plan for the selected date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, func(eng *plan.Engine) error {
			if strings.TrimSpace(planDate) == "" {
				return nil
			}
			return eng.SelectDate(planDate)
		})
	},
}

var planNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Select the next day and show its plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, func(eng *plan.Engine) error {
			_, err := eng.Advance()
			return err
		})
	},
}

var planPrevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Select the previous day and show its plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, func(eng *plan.Engine) error {
			_, err := eng.Retreat()
			return err
		})
	},
}

func runPlan(cmd *cobra.Command, move func(*plan.Engine) error) error {
	return withEnv(cmd, func(e *env) error {
		eng, saved, err := openEngine(cmd, e)
		if err != nil {
			return err
		}
		if err := move(eng); err != nil {
			return err
		}
		if err := service.SetConfig(e.db, service.ConfigSelectedDate, eng.Selected()); err != nil {
			return err
		}
		snap, err := refreshEngine(cmd, e, eng, saved)
		if err != nil {
			return err
		}
		if snap.Status == plan.StatusLoading {
			return noticeErr(snap, plan.SourcePlans)
		}
		return printPlan(cmd.OutOrStdout(), snap.Resolution, e.locale)
	})
}

// cachedWindow is the date range the restored plan collection was fetched for.
type cachedWindow struct {
	from, to string
}

func (w cachedWindow) covers(key string) bool {
	return w.from != "" && w.from <= key && key <= w.to
}

// openEngine creates an engine on the stored selected date, or today, seeded
// with the last cached collections. An unreadable cache is reported and skipped.
func openEngine(cmd *cobra.Command, e *env) (*plan.Engine, cachedWindow, error) {
	selected, ok, err := service.GetConfig(e.db, service.ConfigSelectedDate)
	if err != nil {
		return nil, cachedWindow{}, err
	}
	if !ok {
		selected = datekey.Today()
	}
	eng, err := plan.New(e.client, selected)
	if err != nil {
		return nil, cachedWindow{}, err
	}
	cached, err := service.LoadCollections(e.db)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring saved data: %v\n", err)
		return eng, cachedWindow{}, nil
	}
	window := cachedWindow{from: cached.PlansFrom, to: cached.PlansTo}
	if err := eng.Restore(cached.Plans, cached.Meals, cached.Exercises); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring saved plans: %v\n", err)
		window = cachedWindow{}
		_ = eng.Restore(nil, cached.Meals, cached.Exercises)
	}
	return eng, window, nil
}

// refreshEngine fetches the window around the selected date and caches every
// collection that arrived. Failed fetches are reported as warnings.
func refreshEngine(cmd *cobra.Command, e *env, eng *plan.Engine, saved cachedWindow) (plan.Snapshot, error) {
	from, to, err := datekey.Range(eng.Selected(), e.window)
	if err != nil {
		return plan.Snapshot{}, err
	}
	snap := eng.Refresh(commandContext(cmd), from, to)

	failed := map[plan.Source]bool{}
	p := i18n.Printer(e.locale)
	for _, n := range snap.Notices {
		failed[n.Source] = true
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", n)
	}
	if !failed[plan.SourcePlans] {
		if err := service.SavePlans(e.db, from, to, eng.Plans()); err != nil {
			return plan.Snapshot{}, err
		}
	} else if snap.Status == plan.StatusReady {
		fmt.Fprintln(cmd.ErrOrStderr(), p.Sprintf(i18n.MsgStale, plan.SourcePlans))
		if !saved.covers(eng.Selected()) {
			fmt.Fprintln(cmd.ErrOrStderr(), p.Sprintf(i18n.MsgStaleWindow, saved.from, saved.to))
		}
	}
	if !failed[plan.SourceMeals] {
		if err := service.SaveMeals(e.db, snap.Meals); err != nil {
			return plan.Snapshot{}, err
		}
	}
	if !failed[plan.SourceExercises] {
		if err := service.SaveExercises(e.db, snap.Exercises); err != nil {
			return plan.Snapshot{}, err
		}
	}
	return snap, nil
}

func noticeErr(snap plan.Snapshot, source plan.Source) error {
	for _, n := range snap.Notices {
		if n.Source == source {
			return fmt.Errorf("%s unavailable: %w", source, n.Err)
		}
	}
	return fmt.Errorf("%s unavailable", source)
}

func printPlan(w io.Writer, r plan.Resolution, locale string) error {
	p := i18n.Printer(locale)
	header, err := datekey.FormatDisplay(r.Date, locale)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n\n", header, r.Date)
	if !r.Found {
		fmt.Fprintln(w, p.Sprintf(i18n.MsgNoPlan))
		return nil
	}
	for _, slot := range model.MealSlots {
		m := r.Plan.Meals.Slot(slot)
		fmt.Fprintf(w, "%s:\t%s (%d kcal)\n", p.Sprintf(slotMessage(slot)), m.Name, m.Calories)
	}
	fmt.Fprintln(w, p.Sprintf(i18n.MsgTotalCalories, r.Plan.Meals.TotalCalories()))
	if len(r.Plan.Exercises) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s:\n", p.Sprintf(i18n.MsgExercises))
	for _, ex := range r.Plan.Exercises {
		line := fmt.Sprintf("  - %s (%s)", ex.Name, p.Sprintf(i18n.MsgMinutes, ex.DurationMin))
		if d := strings.TrimSpace(ex.Description); d != "" {
			line += ": " + d
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func slotMessage(s model.MealSlot) string {
	switch s {
	case model.Breakfast:
		return i18n.MsgBreakfast
	case model.Lunch:
		return i18n.MsgLunch
	default:
		return i18n.MsgDinner
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planShowCmd, planNextCmd, planPrevCmd)
	planShowCmd.Flags().StringVar(&planDate, "date", "", "Date to show (YYYY-MM-DD); defaults to the last selected date or today")
}
