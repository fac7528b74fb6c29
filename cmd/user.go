package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/example/courtbook/internal/auth"
	"github.com/example/courtbook/internal/config"
	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/migrate"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var username, password, role string

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a local account (customer or owner)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx := context.Background()
			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}

			store := auth.NewStore(d, cfg.CookieHashKey, cfg.CookieBlockKey)
			id, err := store.CreateUser(ctx, username, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created %s %q (id=%d)\n", role, username, id)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "username")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().StringVar(&role, "role", auth.RoleCustomer, "customer or owner")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
