package metafit

import (
	"database/sql"
	"fmt"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check local cache and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid cache rows: %d\n", report.InvalidCacheRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicate plan dates: %d\n", report.DuplicatePlanDates)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid settings: %d\n", report.InvalidSettings)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed rows: %d\n", report.FixedRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Delete unusable cache rows and settings")
}
