package selection

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/search"
)

const DefaultFetchTimeout = 10 * time.Second

type Fetcher interface {
	ListCandidates(ctx context.Context, params search.Params) (search.ResultPage, error)
}

// Controller drives fetches for a Store. Every Load gets a new sequence
// number so a slow response cannot overwrite a newer one.
type Controller struct {
	store   *Store
	api     Fetcher
	timeout time.Duration
	logger  *zap.Logger

	seq atomic.Uint64
}

func NewController(store *Store, api Fetcher, timeout time.Duration, logger *zap.Logger) *Controller {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, api: api, timeout: timeout, logger: logger}
}

func (c *Controller) Store() *Store {
	return c.store
}

// Load fetches the page described by the current filters and pagination.
// The returned error is the fetch error, also recorded in the state unless a
// newer Load has started since.
func (c *Controller) Load(ctx context.Context) error {
	seq := c.seq.Add(1)
	st := c.store.Dispatch(FetchStart{Seq: seq})

	params := search.Params{
		FilterParams: st.Filters,
		Page:         strconv.Itoa(st.Pagination.Page),
		Limit:        strconv.Itoa(st.Pagination.Limit),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	page, err := c.api.ListCandidates(ctx, params)
	if err != nil {
		c.logger.Warn("fetch candidates failed", zap.Uint64("seq", seq), zap.Error(err))
		c.store.Dispatch(FetchError{Err: err, Seq: seq})
		return err
	}

	after := c.store.Dispatch(FetchSuccess{Candidates: page.Candidates, Total: page.Total, Seq: seq})
	if after.LastSeq != seq {
		c.logger.Debug("dropped stale fetch result", zap.Uint64("seq", seq), zap.Uint64("latest", after.LastSeq))
	}
	return nil
}

// Retry re-issues the last request. Nothing retries automatically.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Controller) UpdateFilters(ctx context.Context, patch FilterPatch) error {
	c.store.Dispatch(UpdateFilters{Patch: patch})
	return c.Load(ctx)
}

func (c *Controller) GoToPage(ctx context.Context, n int) error {
	if err := c.store.GoToPage(n); err != nil {
		return err
	}
	return c.Load(ctx)
}
