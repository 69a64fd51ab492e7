package metafit

import (
	"errors"
	"fmt"
	"os"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/session"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	apiURL     string
	localeFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "metafit",
	Short:         "metafit shows your METAFIT plan and health profile from the terminal",
	Long:          "metafit is a terminal client for the METAFIT service: daily meal and exercise plans, recommended meals and exercises, and an editable health profile with BMI.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, session.ErrLoginRequired) {
			fmt.Fprintln(os.Stderr, i18n.Printer(activeLocale).Sprintf(i18n.MsgLoginRequired))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "METAFIT API base URL")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Display locale (for example en-US or es-MX)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")
}
