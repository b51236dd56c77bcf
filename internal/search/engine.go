package search

import (
	"go.uber.org/zap"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/domain/matching"
)

type MatchDetails struct {
	SkillsMatch int `json:"skillsMatch"`
	TotalSkills int `json:"totalSkills"`
}

// ScoredCandidate decorates a stored candidate with per-query match fields.
type ScoredCandidate struct {
	candidate.Candidate
	MatchScore   int          `json:"matchScore"`
	MatchDetails MatchDetails `json:"matchDetails"`
}

type ResultPage struct {
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Candidates []ScoredCandidate `json:"candidates"`
}

type Engine struct {
	filters []Filter
	logger  *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{filters: DefaultFilters(), logger: logger}
}

// Evaluate scores, filters and paginates candidates for q using the default
// filter set.
func Evaluate(candidates []candidate.Candidate, q Query) ResultPage {
	return (*Engine)(nil).Evaluate(candidates, q)
}

// Evaluate never modifies candidates; the result shares no mutable state
// with the caller beyond the read-only candidate fields.
func (e *Engine) Evaluate(candidates []candidate.Candidate, q Query) ResultPage {
	filters := DefaultFilters()
	if e != nil && e.filters != nil {
		filters = e.filters
	}

	scored := ScoreAll(candidates, q.Skills)
	kept, steps := RunFilters(q, filters, scored)

	if e != nil && e.logger != nil {
		for _, st := range steps {
			e.logger.Debug("filter step",
				zap.String("name", st.Name),
				zap.Int("initial", st.Initial),
				zap.Int("dropped", st.Dropped),
				zap.Int("left", st.Left),
			)
		}
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	return ResultPage{
		Total:      len(kept),
		Page:       page,
		Limit:      limit,
		Candidates: Paginate(kept, page, limit),
	}
}

// ScoreAll attaches match scores to every candidate. Without requested
// skills every candidate scores 100 with zeroed details.
func ScoreAll(candidates []candidate.Candidate, skills []string) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		sc := ScoredCandidate{Candidate: c}
		if len(skills) == 0 {
			sc.MatchScore = 100
		} else {
			res := matching.Score(c.Skills, skills)
			sc.MatchScore = res.MatchScore
			sc.MatchDetails = MatchDetails{SkillsMatch: res.SkillsMatch, TotalSkills: res.TotalSkills}
		}
		out = append(out, sc)
	}
	return out
}

// Paginate returns the [(page-1)*limit, page*limit) window of items. A
// window past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	if len(items) == 0 || page-1 > (len(items)-1)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) || end < start {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages is ceil(total/limit), with a floor of zero.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
