// Login and logout commands.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaulatti/cirrus/internal/client/cli"
	"github.com/gaulatti/cirrus/internal/common"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session in the system keyring",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session from memory and the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		globalSession.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	},
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(os.Stdin)

	identifier, err := cli.GetSimpleText(reader, "Handle or email", out)
	if err != nil {
		return err
	}

	secret, err := cli.GetPassword(out)
	if err != nil {
		return err
	}

	if _, err := globalSession.Login(ctx, identifier, secret); err != nil {
		// Server diagnostics go to the log; the user gets a generic hint.
		globalLogger.Error(ctx, "login failed", "identifier", identifier, "err", err)
		if errors.Is(err, common.ErrNetwork) {
			return errors.New("login failed: could not reach the service")
		}
		return errors.New("login failed, check your credentials")
	}

	fmt.Fprintf(out, "Logged in as %s.\n", identifier)
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
