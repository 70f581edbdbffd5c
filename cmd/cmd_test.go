package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	auditpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	paymentpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/testutil"
)

var _ = Describe("loadConfig", func() {
	BeforeEach(func() {
		for _, key := range []string{"APP_ENV", "DOCKER_ENV"} {
			if old, had := os.LookupEnv(key); had {
				Expect(os.Unsetenv(key)).To(Succeed())
				DeferCleanup(os.Setenv, key, old)
			}
		}
	})

	It("reads config.yml and fills defaults", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(`
database:
  source: postgres://ledger@localhost/ledger
  max_open_conns: 5
  max_idle_conns: 2
ledger:
  strict_verification: true
`), 0o600)).To(Succeed())

		cfg, err := loadConfig(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Database.Source).To(Equal("postgres://ledger@localhost/ledger"))
		Expect(cfg.Ledger.StrictVerification).To(BeTrue())
		Expect(cfg.Ledger.Currency).To(Equal("BDT"))
		Expect(cfg.Server.Port).To(Equal(8080))
	})

	It("rejects an invalid config", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte("ledger:\n  currency: TAKA\n"), 0o600)).To(Succeed())

		_, err := loadConfig(dir)
		Expect(err).To(MatchError(ContainSubstring("invalid config")))
	})

	It("fails when no config file exists", func() {
		_, err := loadConfig(GinkgoT().TempDir())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("seedPayments", func() {
	It("records every demo payment with its audit entry", func() {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))

		db, err := testutil.OpenSQLite(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		ledger := payment.NewService(paymentpg.NewUnitOfWork(db.Gorm), paymentpg.NewPaymentRepository(db.Gorm), nil, logger, payment.Options{})
		audit := auditlog.NewService(auditpg.NewWriter(db.Gorm), auditpg.NewReader(db.Sqlx), logger)

		var out bytes.Buffer
		Expect(seedPayments(ctx, ledger, true, &out)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Seeded payment"))

		entries, err := auditlog.Collect(audit.ListForUser(ctx, "student-1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
		Expect(entries[1].ActivityType).To(Equal(auditlog.ActivityPaymentVerified))

		tutorPayments, err := ledger.ListPaymentsByPayer(ctx, "tutor", "tutor-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(tutorPayments).To(HaveLen(1))
		Expect(tutorPayments[0].Status).To(Equal(payment.StatusPending))
	})
})

var _ = Describe("rootCmd", func() {
	It("registers the operator commands", func() {
		names := map[string]bool{}
		for _, c := range rootCmd.Commands() {
			names[c.Name()] = true
		}
		Expect(names).To(HaveKey("server"))
		Expect(names).To(HaveKey("migrate"))
		Expect(names).To(HaveKey("seed"))
		Expect(names).To(HaveKey("payment"))
		Expect(names).To(HaveKey("audit"))
	})
})
