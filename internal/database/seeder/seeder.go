package seeder

import (
	"context"

	"shortlist/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.ReadWriter) error
}
