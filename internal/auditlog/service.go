package auditlog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	activityDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/activitylog"
)

// WriterAPI appends audit rows. Implementations bound to a transaction let
// the ledger write its entries inside the same atomic unit as the payment.
type WriterAPI interface {
	Append(ctx context.Context, entry *activityDatamodel.ActivityLog) error
}

// ReaderAPI streams a user's audit rows oldest first.
type ReaderAPI interface {
	ListForUser(ctx context.Context, userID string) iter.Seq2[*activityDatamodel.ActivityLog, error]
}

type Service struct {
	writer WriterAPI
	reader ReaderAPI
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces the timestamp source used for entries without CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(writer WriterAPI, reader ReaderAPI, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		writer: writer,
		reader: reader,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stores the entry, stamping CreatedAt when the caller left it zero.
// Content is not inspected beyond the presence of the required fields.
func (s *Service) Append(ctx context.Context, entry *Entry) error {
	req := AppendEntryRequest{
		UserID:       entry.UserID,
		ActivityType: string(entry.ActivityType),
		Description:  entry.Description,
	}
	if err := req.Validate(); err != nil {
		s.logger.Warn("audit entry rejected", "error", err, "user_id", entry.UserID)
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	row := ToDataModel(entry)
	if err := s.writer.Append(ctx, row); err != nil {
		s.logger.Error("failed to append audit entry", "error", err, "user_id", entry.UserID, "activity_type", entry.ActivityType)
		return errors.NewStorageError("failed to append audit entry", err)
	}
	entry.ID = row.ID

	s.logger.Debug("audit entry appended", "entry_id", entry.ID, "user_id", entry.UserID, "activity_type", entry.ActivityType)
	return nil
}

// ListForUser returns a lazy, finite sequence of the user's entries ordered by
// CreatedAt. Every range over the sequence re-reads current state.
func (s *Service) ListForUser(ctx context.Context, userID string) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		for row, err := range s.reader.ListForUser(ctx, userID) {
			if err != nil {
				s.logger.Error("failed to read audit entries", "error", err, "user_id", userID)
				yield(nil, errors.NewStorageError("failed to read audit entries", err))
				return
			}
			if !yield(FromDataModel(row), nil) {
				return
			}
		}
	}
}

// Collect drains seq, stopping at the first error.
func Collect(seq iter.Seq2[*Entry, error]) ([]*Entry, error) {
	entries := make([]*Entry, 0)
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
