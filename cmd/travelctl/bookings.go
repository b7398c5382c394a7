package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/filestore"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func bookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect stored bookings",
	}
	cmd.AddCommand(bookingsListCmd(a))
	cmd.AddCommand(bookingsShowCmd(a))
	return cmd
}

// ticket rendering is not needed for listing, so no renderer is wired
func (a *app) bookingQueries() queries.BookingQueries {
	return queries.NewBookingQueries(filestore.NewBookingStore(a.cfg.Storage, a.logger), nil)
}

func bookingsListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")
			asJSON, _ := cmd.Flags().GetBool("json")

			filter := queries.BookingFilter{Limit: limit}
			if status != "" {
				filter.Status = booking.PaymentStatus(strings.ToLower(status))
				if !filter.Status.IsValid() {
					return fmt.Errorf("unknown status %q (want pending or completed)", status)
				}
			}

			items, err := a.bookingQueries().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, items)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tNAME\tDESTINATION\tDEPARTURE\tTICKETS\tSTATUS\tMETHOD")
			for _, v := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					v.ID, v.CreatedAt.Format("2006-01-02 15:04"), v.Name, v.Destination,
					v.DepartureDate, v.Tickets, v.PaymentStatus, v.PaymentMethod)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d booking(s)\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringP("status", "s", "", "Filter by payment status (pending, completed)")
	cmd.Flags().IntP("limit", "n", 0, "Maximum results (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	return cmd
}

func bookingsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print one booking as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			view, err := a.bookingQueries().GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, view)
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
