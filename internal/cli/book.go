package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/confirmation"
	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
)

type bookFlags struct {
	name        string
	email       string
	phone       string
	arrival     string
	departure   string
	partySize   int
	method      string
	successRate float64
	seed        int64
	delay       time.Duration
	form        payment.Form
}

func newBookCmd(opts *options) *cobra.Command {
	f := &bookFlags{}

	c := &cobra.Command{
		Use:   "book ROOM_ID",
		Short: "Run the whole booking flow against the payment simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			r, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			return runBooking(cmd.Context(), cmd.OutOrStdout(), r, f, opts.currency)
		},
	}

	c.Flags().StringVar(&f.name, "name", "", "guest name")
	c.Flags().StringVar(&f.email, "email", "", "guest email")
	c.Flags().StringVar(&f.phone, "phone", "", "guest phone")
	c.Flags().StringVar(&f.arrival, "arrival", "", "arrival date (YYYY-MM-DD)")
	c.Flags().StringVar(&f.departure, "departure", "", "departure date (YYYY-MM-DD)")
	c.Flags().IntVar(&f.partySize, "party-size", 1, "number of guests")
	c.Flags().StringVar(&f.method, "method", string(payment.MethodCard), "payment method: card, mobile_money or bank_transfer")
	c.Flags().StringVar(&f.form.CardNumber, "card-number", "", "card number")
	c.Flags().StringVar(&f.form.HolderName, "holder", "", "card holder name")
	c.Flags().StringVar(&f.form.Expiration, "expiration", "", "card expiration (MM/YY)")
	c.Flags().StringVar(&f.form.CVV, "cvv", "", "card security code")
	c.Flags().StringVar(&f.form.Operator, "operator", "", "mobile money operator: mtn, moov or orange")
	c.Flags().StringVar(&f.form.MobileNumber, "mobile-number", "", "mobile money number")
	c.Flags().StringVar(&f.form.TransferReference, "reference", "", "bank transfer reference")
	c.Flags().Float64Var(&f.successRate, "success-rate", payment.DefaultSuccessRate, "share of simulated payments that complete")
	c.Flags().Int64Var(&f.seed, "seed", 0, "seed for the simulated outcome (random when 0)")
	c.Flags().DurationVar(&f.delay, "delay", 0, "simulated processing delay")
	return c
}

func runBooking(ctx context.Context, out io.Writer, r room.Room, f *bookFlags, currency string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outcome := payment.NewWeightedOutcome(f.successRate)
	if f.seed != 0 {
		outcome = payment.NewSeededOutcome(f.successRate, f.seed)
	}
	sim := payment.NewSimulator(payment.WithDelay(f.delay), payment.WithOutcome(outcome))
	ctrl := booking.NewController(sim, confirmation.NewLogSink(currency))

	if err := ctrl.SelectRoom(r); err != nil {
		return err
	}

	details := booking.DetailsRequest{
		CustomerName:  f.name,
		Email:         f.email,
		Phone:         f.phone,
		ArrivalDate:   f.arrival,
		DepartureDate: f.departure,
		PartySize:     f.partySize,
	}
	in, dateErrs := details.ToInput()
	if dateErrs != nil {
		fields := booking.ValidateDetails(r, in)
		if fields == nil {
			fields = map[string]string{}
		}
		for k, v := range dateErrs {
			fields[k] = v
		}
		return fieldFailure(out, "reservation details", fields)
	}

	if _, err := ctrl.SubmitDetails(in); err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			return fieldFailure(out, "reservation details", verr.Fields)
		}
		return err
	}

	draft, err := ctrl.Proceed()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "reservation %s: room %s, %d night(s), %d guest(s), total %s\n",
		draft.ReservationID, r.Number, draft.Nights, draft.PartySize, confirmation.FormatAmount(draft.TotalAmount, currency))

	method := payment.Method(f.method)
	if method == payment.MethodBankTransfer {
		b := payment.HotelBankDetails
		fmt.Fprintf(out, "transfer to %s, %s, IBAN %s, SWIFT %s\n", b.Holder, b.Bank, b.IBAN, b.SWIFT)
	}

	conf, err := ctrl.SubmitPayment(ctx, method, f.form)
	if err != nil {
		var verr *payment.ValidationError
		var declined *payment.DeclinedError
		switch {
		case errors.As(err, &verr):
			return fieldFailure(out, "payment", verr.Fields)
		case errors.As(err, &declined):
			fmt.Fprintln(out, declined.Record.Message)
			return errors.New("payment declined")
		}
		return err
	}

	fmt.Fprintln(out, booking.ConfirmedMessage)
	fmt.Fprintf(out, "transaction %s, %s paid by %s\n",
		conf.Payment.TransactionID, confirmation.FormatAmount(conf.Payment.Amount, currency), conf.Payment.Method)
	return nil
}

func fieldFailure(out io.Writer, step string, fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", name, fields[name])
	}
	return fmt.Errorf("invalid %s: %d field(s)", step, len(fields))
}
