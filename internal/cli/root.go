package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotelbook/booking-api/internal/config"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
	"github.com/hotelbook/booking-api/internal/pkg/storage"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

type options struct {
	catalog  string
	currency string
	logLevel string
}

// NewRoot builds the bookctl command tree.
func NewRoot() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Browse the room catalog and run bookings from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Config{
				Level:       opts.logLevel,
				Environment: "development",
				Output:      cmd.ErrOrStderr(),
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.catalog, "catalog", "", "catalog source: file path or s3://bucket/key (built-in rooms when empty)")
	cmd.PersistentFlags().StringVar(&opts.currency, "currency", "FCFA", "currency label for prices")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newRoomsCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newQuoteCmd(opts))
	cmd.AddCommand(newBookCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs bookctl and exits non-zero on error.
func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) openCatalog(ctx context.Context) (*room.Catalog, error) {
	if o.catalog == "" {
		return room.NewCatalog(room.DefaultRooms())
	}
	cfg := config.Load()
	return room.OpenCatalog(ctx, o.catalog, storage.Config{
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookctl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
