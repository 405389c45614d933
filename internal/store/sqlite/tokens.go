package sqlite

import (
	"context"
	"time"

	"github.com/tablematch/tablematch-server/internal/store"
)

// consumeJTI records a token ID as spent. The primary key on jti makes the
// insert the consumption check: a replayed token hits the unique violation
// and surfaces as store.ErrAlreadyExists.
func consumeJTI(ctx context.Context, q querier, jti string, consumedAt time.Time) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO used_jtis (jti, consumed_at) VALUES (?, ?)`,
		jti, formatTime(consumedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ConsumeJTI marks a token ID as used.
// Returns store.ErrAlreadyExists if it was already consumed.
func (s *Store) ConsumeJTI(ctx context.Context, jti string, consumedAt time.Time) error {
	return consumeJTI(ctx, s.db, jti, consumedAt)
}

// ConsumeJTI marks a token ID as used within the transaction.
func (t *Tx) ConsumeJTI(ctx context.Context, jti string, consumedAt time.Time) error {
	return consumeJTI(ctx, t.tx, jti, consumedAt)
}

// PruneUsedJTIs deletes ledger entries consumed before the cutoff. Entries
// older than the action token TTL can never be replayed because the token
// itself has expired.
func (s *Store) PruneUsedJTIs(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM used_jtis WHERE consumed_at < ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
