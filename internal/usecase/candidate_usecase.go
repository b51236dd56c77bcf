package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
)

var (
	ErrNotFound     = errors.New("candidate not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// CandidateReader is the read side of the candidate store.
type CandidateReader interface {
	All() []candidate.Candidate
	Get(email string) (candidate.Candidate, bool)
	Len() int
	Source() string
	Fingerprint() string
	LoadedAt() time.Time
}

type StoreStats struct {
	Candidates  int       `json:"candidates"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context, params search.Params) (search.ResultPage, error)
	GetCandidate(ctx context.Context, email string) (candidate.Candidate, error)
	Stats(ctx context.Context) StoreStats
}

type Candidates struct {
	store    CandidateReader
	engine   *search.Engine
	cache    SearchCache
	maxLimit int
	logger   *zap.Logger
}

func NewCandidateUsecase(store CandidateReader, engine *search.Engine, cache SearchCache, maxLimit int, logger *zap.Logger) *Candidates {
	if engine == nil {
		engine = search.NewEngine(logger)
	}
	return &Candidates{store: store, engine: engine, cache: cache, maxLimit: maxLimit, logger: logger}
}

// ListCandidates never fails on filter content: malformed values are
// dropped by search.ParseQuery. Errors only come from a cancelled context.
func (u *Candidates) ListCandidates(ctx context.Context, params search.Params) (search.ResultPage, error) {
	if err := ctx.Err(); err != nil {
		return search.ResultPage{}, fmt.Errorf("list candidates: %w", err)
	}

	q := search.ParseQuery(params, u.maxLimit)
	cacheKey := CandidatesSearchCacheKey(u.store.Fingerprint(), q)

	if u.cache != nil {
		var cached search.ResultPage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.debug("cache hit", zap.String("key", cacheKey))
			if cached.Candidates == nil {
				cached.Candidates = []search.ScoredCandidate{}
			}
			return cached, nil
		}
		if err != nil {
			u.debug("cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	page := u.engine.Evaluate(u.store.All(), q)

	if err := ctx.Err(); err != nil {
		return search.ResultPage{}, fmt.Errorf("list candidates: %w", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, 0); err != nil {
			u.debug("cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return page, nil
}

func (u *Candidates) GetCandidate(ctx context.Context, email string) (candidate.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return candidate.Candidate{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return candidate.Candidate{}, ErrInvalidInput
	}
	c, ok := u.store.Get(email)
	if !ok {
		return candidate.Candidate{}, ErrNotFound
	}
	return c, nil
}

func (u *Candidates) Stats(context.Context) StoreStats {
	return StoreStats{
		Candidates:  u.store.Len(),
		Source:      u.store.Source(),
		Fingerprint: u.store.Fingerprint(),
		LoadedAt:    u.store.LoadedAt(),
	}
}

func (u *Candidates) debug(msg string, fields ...zap.Field) {
	if u.logger != nil {
		u.logger.Debug(msg, fields...)
	}
}

var _ CandidateUsecase = (*Candidates)(nil)
