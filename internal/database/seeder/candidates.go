package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"shortlist/internal/database"
	"shortlist/internal/store"
)

const upsertCandidate = `
INSERT INTO candidates (email, position, doc) VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET position = EXCLUDED.position, doc = EXCLUDED.doc, imported_at = now()`

// CandidatesSeeder copies a candidate dataset into the candidates table,
// keeping dataset order in the position column. Records the store would
// reject (blank or duplicate email) are skipped.
type CandidatesSeeder struct {
	Source store.Source
	// Replace clears the table first so removed records do not linger.
	Replace bool
	Logger  *zap.Logger
}

func (CandidatesSeeder) Name() string { return "candidates" }

func (s CandidatesSeeder) Run(ctx context.Context, db database.ReadWriter) error {
	if s.Source == nil {
		return fmt.Errorf("nil source")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := EnsureTableColumns(ctx, db, "candidates", "email", "position", "doc"); err != nil {
		return err
	}

	items, err := s.Source.Load(ctx)
	if err != nil {
		return err
	}
	snap, rejected := store.NewSnapshot(s.Source.Name(), items)
	for _, r := range rejected {
		logger.Warn("skipping record", zap.Error(r))
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if s.Replace {
		if _, err := tx.Exec(ctx, `DELETE FROM candidates`); err != nil {
			return err
		}
	}

	for i, c := range snap.All() {
		doc, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.Email, err)
		}
		if _, err := tx.Exec(ctx, upsertCandidate, c.Email, i, doc); err != nil {
			return fmt.Errorf("upsert %s: %w", c.Email, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logger.Info("seeded candidates", zap.Int("count", snap.Len()), zap.Int("skipped", len(rejected)))
	return nil
}
