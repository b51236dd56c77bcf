package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"shortlist/internal/database"
	"shortlist/internal/domain/candidate"
)

// Source produces the full candidate list once at startup.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]candidate.Candidate, error)
}

type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: strings.TrimSpace(path)}
}

func (f *FileSource) Name() string { return "file:" + f.Path }

// Load reads a JSON array of candidate records.
func (f *FileSource) Load(ctx context.Context) ([]candidate.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	var out []candidate.Candidate
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode candidates %s: %w", f.Path, err)
	}
	return out, nil
}

const defaultCandidatesQuery = `SELECT doc FROM candidates ORDER BY position ASC`

// PostgresSource reads one JSON document per row from a candidates table.
type PostgresSource struct {
	db    database.DB
	query string
}

func NewPostgresSource(db database.DB, query string) *PostgresSource {
	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultCandidatesQuery
	}
	return &PostgresSource{db: db, query: query}
}

func (p *PostgresSource) Name() string { return "postgres" }

func (p *PostgresSource) Load(ctx context.Context) ([]candidate.Candidate, error) {
	if p == nil || p.db == nil {
		return nil, fmt.Errorf("nil db")
	}
	rows, err := p.db.Query(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		var c candidate.Candidate
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("decode candidate row %d: %w", len(out), err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Load builds the snapshot from src. With fatal unset a failing source is
// logged and an empty snapshot is returned so the process can still serve.
func Load(ctx context.Context, src Source, fatal bool, logger *zap.Logger) (*Snapshot, error) {
	items, err := src.Load(ctx)
	if err != nil {
		if fatal {
			return nil, fmt.Errorf("load candidates from %s: %w", src.Name(), err)
		}
		if logger != nil {
			logger.Error("candidate load failed, serving empty store", zap.String("source", src.Name()), zap.Error(err))
		}
		return Empty(src.Name()), nil
	}

	snap, rejected := NewSnapshot(src.Name(), items)
	logRejected(logger, src.Name(), rejected)
	if logger != nil {
		logger.Info("candidates loaded",
			zap.String("source", src.Name()),
			zap.Int("count", snap.Len()),
			zap.Int("skipped", len(rejected)),
			zap.String("fingerprint", snap.Fingerprint()),
		)
	}
	return snap, nil
}
