package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/polkiloo/bankportal/internal/pkg/money"
	"github.com/polkiloo/bankportal/internal/storage"
	"github.com/polkiloo/bankportal/internal/storage/postgres"
)

// openStore connects to the session store. Tests swap it for memory.
var openStore = func(ctx context.Context, dsn string, logger *slog.Logger) (storage.Store, error) {
	return postgres.New(ctx, dsn, logger)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operator tools for the bank portal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(emiCmd())
	root.AddCommand(formatCmd())
	root.AddCommand(sessionsCmd())
	return root
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return v, nil
}

func emiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment of a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, err := decimalFlag(cmd, "principal")
			if err != nil {
				return err
			}
			rate, err := decimalFlag(cmd, "rate")
			if err != nil {
				return err
			}
			months, _ := cmd.Flags().GetInt("months")
			currency, _ := cmd.Flags().GetString("currency")
			withSchedule, _ := cmd.Flags().GetBool("schedule")

			if !principal.IsPositive() || months <= 0 {
				return fmt.Errorf("principal and months must be positive")
			}
			if rate.IsNegative() {
				return fmt.Errorf("rate must not be negative")
			}

			out := cmd.OutOrStdout()
			emi := money.EMI(principal, rate, months)
			fmt.Fprintf(out, "EMI: %s\n", money.Format(emi, currency))
			fmt.Fprintf(out, "Total payable: %s\n", money.Format(emi.Mul(decimal.NewFromInt(int64(months))), currency))
			if !withSchedule {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Month\tInstallment\tInterest\tPrincipal\tRemaining\t")
			for _, row := range money.Schedule(principal, rate, months) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", row.Month,
					row.Installment.StringFixed(2), row.Interest.StringFixed(2),
					row.Principal.StringFixed(2), row.Remaining.StringFixed(2))
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("principal", "", "Loan amount")
	cmd.Flags().String("rate", "0", "Annual interest rate in percent")
	cmd.Flags().Int("months", 12, "Term in months")
	cmd.Flags().String("currency", money.DefaultCurrency, "Currency code used for display")
	cmd.Flags().Bool("schedule", false, "Print the amortisation schedule")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Render an amount the way the portal displays it",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimalFlag(cmd, "amount")
			if err != nil {
				return err
			}
			currency, _ := cmd.Flags().GetString("currency")
			fmt.Fprintln(cmd.OutOrStdout(), money.Format(amount, currency))
			return nil
		},
	}
	cmd.Flags().String("amount", "", "Amount to format")
	cmd.Flags().String("currency", money.DefaultCurrency, "Currency code")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session store maintenance",
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired portal sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString("database")
			if dsn == "" {
				return fmt.Errorf("database DSN is required (--database or DATABASE_URI)")
			}
			timeout, _ := cmd.Flags().GetDuration("timeout")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			store, err := openStore(ctx, dsn, logger)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer store.Close()

			n, err := store.Sessions().DeleteExpired(ctx, time.Now())
			if err != nil {
				return fmt.Errorf("purge sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", n)
			return nil
		},
	}
	purge.Flags().String("database", os.Getenv("DATABASE_URI"), "PostgreSQL DSN")
	purge.Flags().Duration("timeout", 30*time.Second, "Overall timeout")

	cmd.AddCommand(purge)
	return cmd
}
