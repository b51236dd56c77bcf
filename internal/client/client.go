package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
)

const DefaultTimeout = 10 * time.Second

var ErrNotFound = errors.New("candidate not found")

// StatusError is returned for any non-2xx answer other than a 404 on a
// single-candidate lookup.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("candidate api: status=%d body=%s", e.StatusCode, e.Body)
}

type CandidateAPI interface {
	ListCandidates(ctx context.Context, params search.Params) (search.ResultPage, error)
	GetCandidate(ctx context.Context, email string) (candidate.Candidate, error)
}

type httpCandidateAPI struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New returns nil for an empty base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) CandidateAPI {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpCandidateAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpCandidateAPI) ListCandidates(ctx context.Context, params search.Params) (search.ResultPage, error) {
	endpoint := c.baseURL + "/api/candidates"
	if q := params.Values().Encode(); q != "" {
		endpoint += "?" + q
	}

	var out search.ResultPage
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return search.ResultPage{}, err
	}
	if out.Candidates == nil {
		out.Candidates = []search.ScoredCandidate{}
	}
	return out, nil
}

func (c *httpCandidateAPI) GetCandidate(ctx context.Context, email string) (candidate.Candidate, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return candidate.Candidate{}, ErrNotFound
	}
	endpoint := c.baseURL + "/api/candidates/" + url.PathEscape(email)

	var out candidate.Candidate
	err := c.getJSON(ctx, endpoint, &out)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return candidate.Candidate{}, ErrNotFound
	}
	if err != nil {
		return candidate.Candidate{}, err
	}
	return out, nil
}

func (c *httpCandidateAPI) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Debug("candidate api error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", bodyStr),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: bodyStr}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ CandidateAPI = (*httpCandidateAPI)(nil)
