package postgres

import (
	"context"
	"iter"

	activityDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/activitylog"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Writer struct {
	db *gorm.DB
}

// NewWriter returns a writer on db. Passing a transaction handle makes every
// Append part of that transaction.
func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

func (w *Writer) Append(ctx context.Context, entry *activityDatamodel.ActivityLog) error {
	return w.db.WithContext(ctx).Create(entry).Error
}

const listForUserQuery = `SELECT id, user_id, activity_type, description, created_at
	FROM activity_logs
	WHERE user_id = ?
	ORDER BY created_at ASC, id ASC`

type Reader struct {
	db *sqlx.DB
}

func NewReader(db *sqlx.DB) *Reader {
	return &Reader{db: db}
}

// ListForUser streams rows through a cursor; the query runs when the sequence
// is ranged over, and the cursor closes when iteration ends or stops early.
func (r *Reader) ListForUser(ctx context.Context, userID string) iter.Seq2[*activityDatamodel.ActivityLog, error] {
	return func(yield func(*activityDatamodel.ActivityLog, error) bool) {
		rows, err := r.db.QueryxContext(ctx, r.db.Rebind(listForUserQuery), userID)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row activityDatamodel.ActivityLog
			if err := rows.StructScan(&row); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}
