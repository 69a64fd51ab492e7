package metafit

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to METAFIT and store the session token",
	Long:  "Sign in with email and password. When --password is omitted it is read from the first line of stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password from stdin: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		return withEnv(cmd, func(e *env) error {
			if err := e.gate.Login(commandContext(cmd), e.client, loginEmail, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Printer(e.locale).Sprintf(i18n.MsgLoggedIn, strings.TrimSpace(loginEmail)))
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.gate.Clear(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Printer(e.locale).Sprintf(i18n.MsgLoggedOut))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (read from stdin when omitted)")
	_ = loginCmd.MarkFlagRequired("email")
}
