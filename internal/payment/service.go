package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/events"
	"github.com/google/uuid"
)

// EventPublisher receives ledger events once the owning transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Options struct {
	// Currency is stamped on every new payment.
	Currency string
	// StrictVerification rejects verification of a payment that is not pending.
	StrictVerification bool
	Clock              func() time.Time
	NewID              func() string
}

// Service is the payment ledger. Each mutating operation writes the payment
// row and its audit entry in one unit of work.
type Service struct {
	uow       UnitOfWork
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger

	currency           string
	strictVerification bool
	now                func() time.Time
	newID              func() string
}

// NewService creates a ledger. repo serves reads outside any transaction;
// publisher may be nil.
func NewService(uow UnitOfWork, repo RepositoryAPI, publisher EventPublisher, logger *slog.Logger, opts Options) *Service {
	s := &Service{
		uow:                uow,
		repo:               repo,
		publisher:          publisher,
		logger:             logger,
		currency:           strings.ToUpper(opts.Currency),
		strictVerification: opts.StrictVerification,
		now:                opts.Clock,
		newID:              opts.NewID,
	}
	if s.currency == "" {
		s.currency = "BDT"
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	return s
}

// CreatePayment records a pending payment and a "payment" audit entry for the
// payer. Either both are stored or neither is.
func (s *Service) CreatePayment(ctx context.Context, dto CreatePaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("payment validation failed", "error", err, "payer_id", dto.PayerID)
		ledgerFailures.WithLabelValues("create", string(errors.ErrorTypeValidation)).Inc()
		return nil, err
	}

	payer, err := NewPayer(dto.PayerType, dto.PayerID)
	if err != nil {
		ledgerFailures.WithLabelValues("create", string(errors.ErrorTypeValidation)).Inc()
		return nil, err
	}

	now := s.now().UTC()
	p := NewPayment(s.newID(), dto, payer, s.currency, now)

	err = s.uow.Do(ctx, func(tx Tx) error {
		if err := tx.Payments().Create(ctx, ToDataModel(p)); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		entry := auditlog.NewEntry(payer.Ref(), auditlog.ActivityPayment, p.createdDescription(), now)
		if err := tx.ActivityLogs().Append(ctx, auditlog.ToDataModel(entry)); err != nil {
			return fmt.Errorf("append payment audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create payment", "error", err, "payer_id", payer.Ref(), "transaction_id", dto.TransactionID)
		return nil, s.fail("create", "failed to create payment", err)
	}

	paymentsCreated.Inc()
	s.logger.Info("payment created",
		"payment_id", p.ID,
		"payer_type", payer.Kind(),
		"payer_id", payer.Ref(),
		"amount", p.Amount.String(),
		"currency", p.Currency)

	s.publish(ctx, events.NewPaymentCreatedEvent(p.ID, string(payer.Kind()), payer.Ref(),
		p.Amount.String(), p.Currency, string(p.Status), now))

	return p, nil
}

// VerifyPayment moves a payment to completed and appends a "payment_verified"
// audit entry, atomically. In strict mode only pending payments can be
// verified; otherwise a completed payment is re-stamped and audited again.
func (s *Service) VerifyPayment(ctx context.Context, id string) (*Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		ledgerFailures.WithLabelValues("verify", string(errors.ErrorTypeValidation)).Inc()
		return nil, errors.NewValidationFieldError("id", "id is required", errors.ErrCodeValidationFailed)
	}

	var (
		verified  *Payment
		reapplied bool
	)
	err := s.uow.Do(ctx, func(tx Tx) error {
		row, err := tx.Payments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		p, err := FromDataModel(row)
		if err != nil {
			return err
		}
		if s.strictVerification && !p.CanBeVerified() {
			return errors.ErrPaymentAlreadyCompleted
		}
		reapplied = p.IsCompleted()

		now := s.now().UTC()
		affected, err := tx.Payments().MarkCompleted(ctx, id, now, s.strictVerification)
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		if affected == 0 {
			if s.strictVerification {
				return errors.ErrPaymentAlreadyCompleted
			}
			return errors.ErrPaymentNotFound
		}
		// Re-read so the returned version reflects every committed verification.
		row, err = tx.Payments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p, err = FromDataModel(row); err != nil {
			return err
		}

		entry := auditlog.NewEntry(p.Payer.Ref(), auditlog.ActivityPaymentVerified, p.verifiedDescription(), now)
		if err := tx.ActivityLogs().Append(ctx, auditlog.ToDataModel(entry)); err != nil {
			return fmt.Errorf("append verification audit entry: %w", err)
		}

		verified = p
		return nil
	})
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) || errors.IsType(err, errors.ErrorTypeConflict) {
			s.logger.Warn("payment verification rejected", "error", err, "payment_id", id)
		} else {
			s.logger.Error("failed to verify payment", "error", err, "payment_id", id)
		}
		return nil, s.fail("verify", "failed to verify payment", err)
	}

	if reapplied {
		paymentsVerified.WithLabelValues("reapplied").Inc()
		s.logger.Warn("completed payment verified again", "payment_id", id)
	} else {
		paymentsVerified.WithLabelValues("verified").Inc()
	}
	s.logger.Info("payment verified", "payment_id", id, "payer_id", verified.Payer.Ref())

	s.publish(ctx, events.NewPaymentVerifiedEvent(verified.ID, string(verified.Payer.Kind()), verified.Payer.Ref(),
		verified.Amount.String(), verified.Currency, string(verified.Status), *verified.VerifiedAt))

	return verified, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	row, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if !errors.IsType(err, errors.ErrorTypeNotFound) {
			s.logger.Error("failed to get payment", "error", err, "payment_id", id)
		}
		return nil, s.fail("get", "failed to get payment", err)
	}

	p, err := FromDataModel(row)
	if err != nil {
		s.logger.Error("stored payment is unreadable", "error", err, "payment_id", id)
		return nil, s.fail("get", "failed to get payment", err)
	}
	return p, nil
}

// ListPaymentsByPayer returns the payer's payments, newest first.
func (s *Service) ListPaymentsByPayer(ctx context.Context, payerType, payerID string) ([]*Payment, error) {
	payer, err := NewPayer(payerType, payerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByPayer(ctx, string(payer.Kind()), payer.Ref())
	if err != nil {
		s.logger.Error("failed to list payments", "error", err, "payer_type", payer.Kind(), "payer_id", payer.Ref())
		return nil, s.fail("list", "failed to list payments", err)
	}

	payments, err := FromDataModelSlice(rows)
	if err != nil {
		s.logger.Error("stored payment is unreadable", "error", err, "payer_id", payer.Ref())
		return nil, s.fail("list", "failed to list payments", err)
	}
	return payments, nil
}

// fail passes application errors through and reports anything else as a
// storage failure.
func (s *Service) fail(operation, message string, err error) error {
	if appErr, ok := errors.IsAppError(err); ok {
		ledgerFailures.WithLabelValues(operation, string(appErr.Type)).Inc()
		return appErr
	}
	ledgerFailures.WithLabelValues(operation, string(errors.ErrorTypeStorage)).Inc()
	return errors.NewStorageError(message, err)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(errors.Detach(ctx), event); err != nil {
		s.logger.Error("failed to publish ledger event", "error", err, "event_type", event.EventType(), "event_id", event.EventID())
	}
}
