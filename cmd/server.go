package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/courtbook/internal/auth"
	"github.com/example/courtbook/internal/availability"
	"github.com/example/courtbook/internal/booking"
	"github.com/example/courtbook/internal/config"
	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/migrate"
	"github.com/example/courtbook/internal/resources"
	"github.com/example/courtbook/internal/scheduler"
	"github.com/example/courtbook/internal/slots"
	"github.com/example/courtbook/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the booking API + horizon keeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			authStore := auth.NewStore(d, cfg.CookieHashKey, cfg.CookieBlockKey)
			resourceRepo := resources.NewRepo(d)
			templateRepo := availability.NewRepo(d)
			slotStore := slots.NewStore(d)
			reservationStore := booking.NewStore(d)

			bookings := &booking.Service{
				Slots:        slotStore,
				Reservations: reservationStore,
				Owners:       resourceRepo,
				Timeout:      cfg.BookingTimeout,
			}

			// horizon keeper
			k := &scheduler.Keeper{
				Resources:   resourceRepo,
				Templates:   templateRepo,
				Slots:       slotStore,
				Interval:    cfg.PollInterval,
				HorizonDays: cfg.HorizonDays,
				SlotLength:  cfg.SlotLength,
			}
			go func() { _ = k.Run(ctx) }()

			// web
			ws := &web.Server{
				Auth:         authStore,
				Resources:    resourceRepo,
				Templates:    templateRepo,
				Slots:        slotStore,
				Bookings:     bookings,
				Reservations: reservationStore,
				HorizonDays:  cfg.HorizonDays,
				SlotLength:   cfg.SlotLength,
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes())
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
