package dto

import (
	"time"

	"shortlist/internal/search"
	"shortlist/internal/usecase"
)

type CandidateListResponse struct {
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	Candidates []search.ScoredCandidate `json:"candidates"`
}

func NewCandidateListResponse(p search.ResultPage) CandidateListResponse {
	items := p.Candidates
	if items == nil {
		items = []search.ScoredCandidate{}
	}
	return CandidateListResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, Candidates: items}
}

type HealthResponse struct {
	Candidates  int    `json:"candidates"`
	Source      string `json:"source"`
	Fingerprint string `json:"fingerprint"`
	LoadedAt    string `json:"loaded_at"`
	Cache       string `json:"cache"`
}

func NewHealthResponse(st usecase.StoreStats, cacheEnabled bool) HealthResponse {
	cache := "disabled"
	if cacheEnabled {
		cache = "redis"
	}
	loaded := ""
	if !st.LoadedAt.IsZero() {
		loaded = st.LoadedAt.UTC().Format(time.RFC3339)
	}
	return HealthResponse{
		Candidates:  st.Candidates,
		Source:      st.Source,
		Fingerprint: st.Fingerprint,
		LoadedAt:    loaded,
		Cache:       cache,
	}
}
