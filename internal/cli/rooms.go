package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hotelbook/booking-api/internal/domain/confirmation"
	"github.com/hotelbook/booking-api/internal/domain/room"
)

func newRoomsCmd(opts *options) *cobra.Command {
	var (
		roomType    string
		maxPrice    int64
		minCapacity int
		search      string
	)

	c := &cobra.Command{
		Use:   "rooms",
		Short: "List rooms in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if roomType != "" && !room.Type(roomType).IsValid() {
				return fmt.Errorf("invalid --type %q (want simple, double, suite or deluxe)", roomType)
			}
			catalog, err := opts.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			rooms := room.Browse(catalog.Rooms(), room.BrowseFilter{
				Type:        room.Type(roomType),
				MaxPrice:    maxPrice,
				MinCapacity: minCapacity,
				Search:      search,
			})
			printRooms(cmd.OutOrStdout(), rooms, opts.currency)
			return nil
		},
	}

	c.Flags().StringVar(&roomType, "type", "", "room type")
	c.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum nightly price")
	c.Flags().IntVar(&minCapacity, "min-capacity", 0, "minimum capacity")
	c.Flags().StringVar(&search, "search", "", "match type or description")
	return c
}

func newSearchCmd(opts *options) *cobra.Command {
	var (
		arrival   string
		departure string
		partySize int
	)

	c := &cobra.Command{
		Use:   "search",
		Short: "Find available rooms for a stay and price them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, d, err := parseStay(arrival, departure)
			if err != nil {
				return err
			}
			catalog, err := opts.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			rooms, err := room.FilterAvailable(catalog.Rooms(), room.Criteria{PartySize: partySize, Arrival: a, Departure: d})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tCAPACITY\tNIGHTS\tTOTAL")
			for _, r := range rooms {
				q, err := room.QuoteStay(r, a, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.Number, r.Type, r.Capacity, q.Nights, confirmation.FormatAmount(q.Total, opts.currency))
			}
			return w.Flush()
		},
	}

	c.Flags().StringVar(&arrival, "arrival", "", "arrival date (YYYY-MM-DD)")
	c.Flags().StringVar(&departure, "departure", "", "departure date (YYYY-MM-DD)")
	c.Flags().IntVar(&partySize, "party-size", 1, "number of guests")
	_ = c.MarkFlagRequired("arrival")
	_ = c.MarkFlagRequired("departure")
	return c
}

func newQuoteCmd(opts *options) *cobra.Command {
	var arrival, departure string

	c := &cobra.Command{
		Use:   "quote ROOM_ID",
		Short: "Price a stay in one room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, d, err := parseStay(arrival, departure)
			if err != nil {
				return err
			}
			catalog, err := opts.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			r, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			q, err := room.QuoteStay(r, a, d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "room:    %s (%s)\n", r.Number, r.Type)
			fmt.Fprintf(out, "nights:  %d x %s\n", q.Nights, confirmation.FormatAmount(q.NightlyPrice, opts.currency))
			fmt.Fprintf(out, "total:   %s\n", confirmation.FormatAmount(q.Total, opts.currency))
			return nil
		},
	}

	c.Flags().StringVar(&arrival, "arrival", "", "arrival date (YYYY-MM-DD)")
	c.Flags().StringVar(&departure, "departure", "", "departure date (YYYY-MM-DD)")
	_ = c.MarkFlagRequired("arrival")
	_ = c.MarkFlagRequired("departure")
	return c
}

func parseStay(arrival, departure string) (a, d time.Time, err error) {
	if a, err = room.ParseDate(arrival); err != nil {
		return a, d, fmt.Errorf("invalid --arrival (want YYYY-MM-DD)")
	}
	if d, err = room.ParseDate(departure); err != nil {
		return a, d, fmt.Errorf("invalid --departure (want YYYY-MM-DD)")
	}
	return a, d, nil
}

func printRooms(out io.Writer, rooms []room.Room, currency string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tCAPACITY\tPRICE/NIGHT\tAVAILABLE\tAMENITIES")
	for _, r := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%t\t%s\n",
			r.ID, r.Number, r.Type, r.Capacity,
			confirmation.FormatAmount(r.NightlyPrice, currency), r.Available,
			strings.Join(r.Amenities, ", "))
	}
	w.Flush()
}
