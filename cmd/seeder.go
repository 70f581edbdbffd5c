package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedVerify bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample payments",
	Long:  `Record demo payments through the ledger so each one gets its audit entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			a.Close(ctx)
		}()

		return seedPayments(cmd.Context(), a.Ledger, seedVerify, cmd.OutOrStdout())
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedVerify, "verify", true, "also verify the seeded student payments")
}

var demoPayments = []payment.CreatePaymentDTO{
	{Amount: decimal.NewFromInt(500), PaymentMethod: "bkash", TransactionID: "SEED-TXN-1", PayerID: "student-1", PayerType: "student", Purpose: "tuition"},
	{Amount: decimal.NewFromInt(3500), PaymentMethod: "nagad", TransactionID: "SEED-TXN-2", PayerID: "student-2", PayerType: "student", Purpose: "monthly tuition"},
	{Amount: decimal.RequireFromString("199.50"), PaymentMethod: "card", TransactionID: "SEED-TXN-3", PayerID: "tutor-1", PayerType: "tutor", Purpose: "premium profile"},
	{Amount: decimal.NewFromInt(1200), PaymentMethod: "rocket", TransactionID: "SEED-TXN-4", PayerID: "guardian-1", PayerType: "guardian", Purpose: "tutor matching fee"},
}

type ledgerWriter interface {
	CreatePayment(ctx context.Context, dto payment.CreatePaymentDTO) (*payment.Payment, error)
	VerifyPayment(ctx context.Context, id string) (*payment.Payment, error)
}

func seedPayments(ctx context.Context, ledger ledgerWriter, verify bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, dto := range demoPayments {
		p, err := ledger.CreatePayment(ctx, dto)
		if err != nil {
			return fmt.Errorf("seed payment %s: %w", dto.TransactionID, err)
		}
		fmt.Fprintf(out, "Seeded payment %s (%s %s) for %s %s\n", p.ID, p.Amount, p.Currency, p.Payer.Kind(), p.Payer.Ref())

		if verify && p.Payer.Kind() == payment.PayerKindStudent {
			if _, err := ledger.VerifyPayment(ctx, p.ID); err != nil {
				return fmt.Errorf("verify seeded payment %s: %w", p.ID, err)
			}
			fmt.Fprintf(out, "Verified payment %s\n", p.ID)
		}
	}
	return nil
}
