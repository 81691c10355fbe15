package cmd

import (
	"fmt"

	"blogapi/database"
	"blogapi/services"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant admin rights to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], true)
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote <email>",
	Short: "Revoke admin rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(promoteCmd, demoteCmd)
}

func setAdmin(cmd *cobra.Command, email string, isAdmin bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}

	user, err := services.NewUserService(db).SetAdminByEmail(cmd.Context(), email, isAdmin)
	if err != nil {
		return fmt.Errorf("update %s: %w", email, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d) admin=%t\n", user.Email, user.ID, user.IsAdmin)
	return nil
}
