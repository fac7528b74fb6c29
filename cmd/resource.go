package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/example/courtbook/internal/config"
	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/migrate"
	"github.com/example/courtbook/internal/resources"
	"github.com/spf13/cobra"
)

func newResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage bookable resources",
	}
	cmd.AddCommand(newResourceAddCmd())
	return cmd
}

func newResourceAddCmd() *cobra.Command {
	var ownerID int64
	var name, timezone string

	c := &cobra.Command{
		Use:   "add",
		Short: "Register a resource for an owner account",
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

			res, err := resources.NewRepo(d).Create(ctx, ownerID, name, timezone)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created resource %q (id=%s, tz=%s)\n", res.Name, res.ID, res.Timezone)
			return nil
		},
	}

	c.Flags().Int64Var(&ownerID, "owner", 0, "owner account id")
	c.Flags().StringVar(&name, "name", "", "resource name")
	c.Flags().StringVar(&timezone, "timezone", "UTC", "IANA timezone for the resource")
	_ = c.MarkFlagRequired("owner")
	_ = c.MarkFlagRequired("name")
	return c
}
