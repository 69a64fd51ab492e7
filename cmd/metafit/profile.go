package metafit

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/biometrics"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/profile"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or edit your health profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and BMI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			c := profile.New(e.gate, e.client, e.policy)
			if err := c.Load(commandContext(cmd)); err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), c.Snapshot(), e.locale)
			return nil
		})
	},
}

var (
	editName         string
	editAge          string
	editWeight       string
	editHeight       string
	editTargetWeight string
)

// editFlags maps profile edit flags to the draft fields they change.
var editFlags = []struct {
	name  string
	field biometrics.Field
	value *string
}{
	{"name", biometrics.FieldFullName, &editName},
	{"age", biometrics.FieldAge, &editAge},
	{"weight", biometrics.FieldWeight, &editWeight},
	{"height", biometrics.FieldHeight, &editHeight},
	{"target-weight", biometrics.FieldTargetWeight, &editTargetWeight},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update profile fields",
	Long:  "Update one or more profile fields. Every field is validated before anything is sent; only changed fields are submitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := 0
		for _, f := range editFlags {
			if cmd.Flags().Changed(f.name) {
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("set at least one flag")
		}
		return withEnv(cmd, func(e *env) error {
			ctx := commandContext(cmd)
			c := profile.New(e.gate, e.client, e.policy)
			if err := c.Load(ctx); err != nil {
				return err
			}
			if err := c.BeginEdit(); err != nil {
				return err
			}
			for _, f := range editFlags {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				if err := c.SetField(f.field, *f.value); err != nil {
					return err
				}
			}
			if err := c.Submit(ctx); err != nil {
				return err
			}
			snap := c.Snapshot()
			if len(snap.FieldErrors) > 0 {
				for _, f := range snap.FieldErrors.Fields() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, snap.FieldErrors[f].Message)
				}
				return fmt.Errorf("profile not updated: %d invalid field(s)", len(snap.FieldErrors))
			}
			if snap.Notice != nil {
				return snap.Notice
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Printer(e.locale).Sprintf(i18n.MsgProfileUpdated))
			printProfile(cmd.OutOrStdout(), snap, e.locale)
			return nil
		})
	},
}

func printProfile(w io.Writer, snap profile.Snapshot, locale string) {
	p := snap.Profile
	msg := i18n.Printer(locale)
	fmt.Fprintf(w, "%s:\t%s\n", msg.Sprintf(i18n.MsgName), p.FullName)
	fmt.Fprintf(w, "%s:\t%s\n", msg.Sprintf(i18n.MsgEmail), p.Email)
	fmt.Fprintf(w, "%s:\t%d\n", msg.Sprintf(i18n.MsgAge), p.Age)
	fmt.Fprintf(w, "%s:\t%s kg\n", msg.Sprintf(i18n.MsgWeight), formatKg(p.WeightKg))
	fmt.Fprintf(w, "%s:\t%d cm\n", msg.Sprintf(i18n.MsgHeight), p.HeightCm)
	fmt.Fprintf(w, "%s:\t%s kg\n", msg.Sprintf(i18n.MsgTargetWeight), formatKg(p.TargetWeightKg))
	fmt.Fprintf(w, "%s:\t%s\n", msg.Sprintf(i18n.MsgBMI), formatBMI(snap.Metrics, locale))
}

func formatBMI(m biometrics.Metrics, locale string) string {
	if !m.Available {
		return m.Category.Label(locale)
	}
	return fmt.Sprintf("%.1f (%s)", m.BMI, m.Category.Label(locale))
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileEditCmd)

	profileEditCmd.Flags().StringVar(&editName, "name", "", "Full name")
	profileEditCmd.Flags().StringVar(&editAge, "age", "", "Age in years")
	profileEditCmd.Flags().StringVar(&editWeight, "weight", "", "Weight in kg")
	profileEditCmd.Flags().StringVar(&editHeight, "height", "", "Height in cm")
	profileEditCmd.Flags().StringVar(&editTargetWeight, "target-weight", "", "Target weight in kg")
}

