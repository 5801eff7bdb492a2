package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "university",
		Short: "University accounts service",
		Long: `Accounts service for the university portal.

Serves registration, sign in and session management over HTTP with
JWTs carried in HttpOnly cookies. Configuration is read from the
environment; see internal/accounts/app/config.go.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		createSuperuserCmd(),
		deactivateCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
