package main

import (
	"fmt"
	"log/slog"
	"os"

	"travel-booking/internal/pkg/config"

	"github.com/spf13/cobra"
)

var Version = "dev"

// app carries what subcommands share once the root command has loaded configuration.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "travelctl",
		Short:         "Operator tool for the travel booking service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if file, _ := cmd.Flags().GetString("bookings-file"); file != "" {
				cfg.Storage.BookingsFile = file
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("bookings-file", "", "Booking store path (defaults to BOOKINGS_FILE)")

	rootCmd.AddCommand(bookingsCmd(a))
	rootCmd.AddCommand(tokenCmd(a))
	return rootCmd
}
