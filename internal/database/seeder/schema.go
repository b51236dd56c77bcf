package seeder

import (
	"context"
	"fmt"
	"strings"

	"shortlist/internal/database"
)

// EnsureTableColumns fails with every missing column listed when table
// lacks any of columns.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
