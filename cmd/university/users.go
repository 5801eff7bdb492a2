package main

import (
	"fmt"

	"github.com/aussiebroadwan/university/internal/accounts/app"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/spf13/cobra"
)

// withUsers opens the configured store and hands fn a user service.
func withUsers(fn func(users *service.UserService) error) error {
	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg)
	cryptox.SetPepperPath(cfg.PepperFile)

	db, err := app.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(&service.UserService{Store: db, BlockedEmailDomains: cfg.BlockedEmailDomains})
}

func createSuperuserCmd() *cobra.Command {
	var in service.RegisterInput

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a verified staff administrator",
		Long: `Create a verified staff administrator.

When --password is omitted a random password is generated and printed
once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := in.Password == ""
			if generated {
				pw, err := cryptox.GeneratePassword()
				if err != nil {
					return err
				}
				in.Password = pw
			}

			return withUsers(func(users *service.UserService) error {
				u, err := users.CreateSuperuser(cmd.Context(), in)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "created superuser %s (%s)\n", u.Email, u.ID)
				if generated {
					fmt.Fprintf(out, "password: %s\n", in.Password)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password, generated when empty")
	cmd.Flags().StringVar(&in.MobileNumber, "mobile", "", "Mobile number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func deactivateCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate an account and revoke its sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(func(users *service.UserService) error {
				u, err := users.FindByEmail(cmd.Context(), email)
				if err != nil {
					return fmt.Errorf("lookup %s: %w", email, err)
				}
				if err := users.Deactivate(cmd.Context(), u.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", u.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the account (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
