package metafit

import (
	"fmt"
	"io"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/plan"
	"github.com/spf13/cobra"
)

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "List recommended meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			eng, saved, err := openEngine(cmd, e)
			if err != nil {
				return err
			}
			snap, err := refreshEngine(cmd, e, eng, saved)
			if err != nil {
				return err
			}
			if !snap.MealsReady {
				return noticeErr(snap, plan.SourceMeals)
			}
			printMeals(cmd.OutOrStdout(), snap.Meals, e.locale)
			return nil
		})
	},
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List recommended exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			eng, saved, err := openEngine(cmd, e)
			if err != nil {
				return err
			}
			snap, err := refreshEngine(cmd, e, eng, saved)
			if err != nil {
				return err
			}
			if !snap.ExercisesReady {
				return noticeErr(snap, plan.SourceExercises)
			}
			printExercises(cmd.OutOrStdout(), snap.Exercises, e.locale)
			return nil
		})
	},
}

func printMeals(w io.Writer, meals []model.Meal, locale string) {
	p := i18n.Printer(locale)
	if len(meals) == 0 {
		fmt.Fprintln(w, p.Sprintf(i18n.MsgNoMeals))
		return
	}
	for i, m := range meals {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d kcal)\n", m.Name, m.Calories)
		if d := strings.TrimSpace(m.Description); d != "" {
			fmt.Fprintf(w, "  %s\n", d)
		}
		fmt.Fprintf(w, "  %s\n", p.Sprintf(i18n.MsgMacros, formatKg(m.ProteinG), formatKg(m.CarbsG), formatKg(m.FatG)))
		if len(m.Ingredients) > 0 {
			fmt.Fprintf(w, "  %s\n", p.Sprintf(i18n.MsgIngredients, strings.Join(m.Ingredients, ", ")))
		}
		for n, step := range m.Instructions {
			fmt.Fprintf(w, "  %d. %s\n", n+1, step)
		}
	}
}

func printExercises(w io.Writer, exercises []model.Exercise, locale string) {
	p := i18n.Printer(locale)
	if len(exercises) == 0 {
		fmt.Fprintln(w, p.Sprintf(i18n.MsgNoExercises))
		return
	}
	for i, ex := range exercises {
		if i > 0 {
			fmt.Fprintln(w)
		}
		parts := []string{p.Sprintf(i18n.MsgMinutes, ex.DurationMin)}
		if d := strings.TrimSpace(ex.Difficulty); d != "" {
			parts = append(parts, d)
		}
		if ex.CaloriesBurned > 0 {
			parts = append(parts, fmt.Sprintf("%d kcal", ex.CaloriesBurned))
		}
		fmt.Fprintf(w, "%s (%s)\n", ex.Name, strings.Join(parts, ", "))
		if d := strings.TrimSpace(ex.Description); d != "" {
			fmt.Fprintf(w, "  %s\n", d)
		}
		if v := strings.TrimSpace(ex.VideoURL); v != "" {
			fmt.Fprintf(w, "  %s\n", p.Sprintf(i18n.MsgVideo, v))
		}
	}
}

func init() {
	rootCmd.AddCommand(mealsCmd, exercisesCmd)
}
