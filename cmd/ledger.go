package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	paymentCmd = &cobra.Command{
		Use:   "payment",
		Short: "Operate the payment ledger",
	}

	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Inspect audit trails",
	}

	createInput payment.CreatePaymentDTO
	amountFlag  string
)

var createPaymentCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a pending payment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(amountFlag)
		if err != nil {
			return fmt.Errorf("invalid --amount %q: %w", amountFlag, err)
		}
		createInput.Amount = amount

		return withApp(cmd, func(ctx context.Context, a *app) error {
			p, err := a.Ledger.CreatePayment(ctx, createInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.ToResponse())
		})
	},
}

var verifyPaymentCmd = &cobra.Command{
	Use:   "verify <payment-id>",
	Short: "Mark a payment completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			p, err := a.Ledger.VerifyPayment(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.ToResponse())
		})
	},
}

var showPaymentCmd = &cobra.Command{
	Use:   "show <payment-id>",
	Short: "Print a payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			p, err := a.Ledger.GetPayment(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.ToResponse())
		})
	},
}

var listPaymentsCmd = &cobra.Command{
	Use:   "list <payer-type> <payer-id>",
	Short: "List a payer's payments, newest first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			payments, err := a.Ledger.ListPaymentsByPayer(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			resp := payment.PaymentsResponse{Payments: make([]payment.PaymentResponse, len(payments))}
			for i, p := range payments {
				resp.Payments[i] = p.ToResponse()
			}
			return printJSON(cmd.OutOrStdout(), resp)
		})
	},
}

var auditListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "Stream a user's audit trail, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out := cmd.OutOrStdout()
			for entry, err := range a.Audit.ListForUser(ctx, args[0]) {
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%-18s\t%s\n", entry.CreatedAt.Format(time.RFC3339), entry.ActivityType, entry.Description)
			}
			return nil
		})
	},
}

func init() {
	f := createPaymentCmd.Flags()
	f.StringVar(&amountFlag, "amount", "", "payment amount, e.g. 500 or 199.50")
	f.StringVar(&createInput.PaymentMethod, "method", "", "payment method, e.g. bkash")
	f.StringVar(&createInput.TransactionID, "txn", "", "external transaction id")
	f.StringVar(&createInput.PayerType, "payer-type", "student", "student, tutor or guardian")
	f.StringVar(&createInput.PayerID, "payer-id", "", "payer id")
	f.StringVar(&createInput.Purpose, "purpose", "tuition", "what the payment is for")
	_ = createPaymentCmd.MarkFlagRequired("amount")
	_ = createPaymentCmd.MarkFlagRequired("method")
	_ = createPaymentCmd.MarkFlagRequired("txn")
	_ = createPaymentCmd.MarkFlagRequired("payer-id")

	paymentCmd.AddCommand(createPaymentCmd, verifyPaymentCmd, showPaymentCmd, listPaymentsCmd)
	auditCmd.AddCommand(auditListCmd)
}

// withApp wires the ledger for a single command and drains event handlers
// before returning.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(closeCtx)
	}()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
