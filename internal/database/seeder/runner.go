package seeder

import (
	"context"
	"fmt"

	"shortlist/internal/database"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.ReadWriter) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
