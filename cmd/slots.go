package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/courtbook/internal/availability"
	"github.com/example/courtbook/internal/config"
	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/migrate"
	"github.com/example/courtbook/internal/resources"
	"github.com/example/courtbook/internal/slots"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage generated slots",
	}
	cmd.AddCommand(newSlotsGenerateCmd())
	return cmd
}

func newSlotsGenerateCmd() *cobra.Command {
	var resourceID string
	var horizonDays, slotMinutes int

	c := &cobra.Command{
		Use:   "generate",
		Short: "Expand a resource's availability template into slots, one shot",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(resourceID)
			if err != nil {
				return fmt.Errorf("invalid resource id: %w", err)
			}

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if horizonDays == 0 {
				horizonDays = cfg.HorizonDays
			}
			slotLen := time.Duration(slotMinutes) * time.Minute
			if slotMinutes == 0 {
				slotLen = cfg.SlotLength
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

			res, err := resources.NewRepo(d).Get(ctx, id)
			if err != nil {
				return err
			}
			loc, err := res.Location()
			if err != nil {
				return err
			}
			tpl, err := availability.NewRepo(d).Get(ctx, id)
			if err != nil {
				return err
			}

			cands := availability.Expand(tpl, loc, time.Now(), horizonDays, slotLen)
			rep, err := slots.NewStore(d).PersistCandidates(ctx, id, cands)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s: %d inserted, %d skipped\n", res.Name, rep.Inserted, rep.Skipped)
			return nil
		},
	}

	c.Flags().StringVar(&resourceID, "resource", "", "resource id")
	c.Flags().IntVar(&horizonDays, "horizon", 0, "days ahead to generate (default from env)")
	c.Flags().IntVar(&slotMinutes, "minutes", 0, "slot length in minutes (default from env)")
	_ = c.MarkFlagRequired("resource")
	return c
}
