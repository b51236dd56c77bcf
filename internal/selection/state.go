package selection

import (
	"slices"

	"shortlist/internal/search"
)

const MaxSelected = 5

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// State is the whole client-side view: the last fetched page, the fetch
// status, the shortlist and the filters that produced the page.
type State struct {
	Candidates []search.ScoredCandidate
	Loading    bool
	Err        error
	Selected   []search.ScoredCandidate
	Filters    search.FilterParams
	Pagination Pagination

	// LastSeq is the newest fetch issued. Fetch results carrying an older
	// sequence are ignored.
	LastSeq uint64
}

func InitialState() State {
	return State{
		Candidates: []search.ScoredCandidate{},
		Selected:   []search.ScoredCandidate{},
		Filters:    search.FilterParams{SkillMatchType: string(search.MatchAny)},
		Pagination: Pagination{Page: search.DefaultPage, Limit: search.DefaultLimit},
	}
}

func (s State) IsSelected(email string) bool {
	return slices.ContainsFunc(s.Selected, func(c search.ScoredCandidate) bool { return c.Email == email })
}

func (s State) SelectionFull() bool {
	return len(s.Selected) >= MaxSelected
}

func (s State) TotalPages() int {
	return search.TotalPages(s.Pagination.Total, s.Pagination.Limit)
}

func (s State) clone() State {
	s.Candidates = slices.Clone(s.Candidates)
	s.Selected = slices.Clone(s.Selected)
	return s
}

type Action interface {
	isAction()
}

type FetchStart struct {
	Seq uint64
}

type FetchSuccess struct {
	Candidates []search.ScoredCandidate
	Total      int
	Seq        uint64
}

type FetchError struct {
	Err error
	Seq uint64
}

// FilterPatch carries only the filters being changed; nil fields are kept.
type FilterPatch struct {
	Skills         *string
	SkillMatchType *string
	MinExperience  *string
	Education      *string
	Location       *string
	Name           *string
	Company        *string
	RoleName       *string
	MinSalary      *string
	MaxSalary      *string
}

type UpdateFilters struct {
	Patch FilterPatch
}

type SelectCandidate struct {
	Candidate search.ScoredCandidate
}

type RemoveCandidate struct {
	Email string
}

type SetPage struct {
	Page int
}

func (FetchStart) isAction()      {}
func (FetchSuccess) isAction()    {}
func (FetchError) isAction()      {}
func (UpdateFilters) isAction()   {}
func (SelectCandidate) isAction() {}
func (RemoveCandidate) isAction() {}
func (SetPage) isAction()         {}

// Reduce returns the state after applying a. It never mutates the slices
// of s, and unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchStart:
		s.Loading = true
		if a.Seq > s.LastSeq {
			s.LastSeq = a.Seq
		}
		return s

	case FetchSuccess:
		if stale(s, a.Seq) {
			return s
		}
		s.Candidates = slices.Clone(a.Candidates)
		if s.Candidates == nil {
			s.Candidates = []search.ScoredCandidate{}
		}
		s.Pagination.Total = a.Total
		s.Loading = false
		s.Err = nil
		return s

	case FetchError:
		if stale(s, a.Seq) {
			return s
		}
		s.Err = a.Err
		s.Loading = false
		return s

	case UpdateFilters:
		s.Filters = a.Patch.apply(s.Filters)
		s.Pagination.Page = 1
		return s

	case SelectCandidate:
		if s.IsSelected(a.Candidate.Email) || s.SelectionFull() {
			return s
		}
		next := make([]search.ScoredCandidate, 0, len(s.Selected)+1)
		next = append(next, s.Selected...)
		s.Selected = append(next, a.Candidate)
		return s

	case RemoveCandidate:
		if !s.IsSelected(a.Email) {
			return s
		}
		next := make([]search.ScoredCandidate, 0, len(s.Selected))
		for _, c := range s.Selected {
			if c.Email != a.Email {
				next = append(next, c)
			}
		}
		s.Selected = next
		return s

	case SetPage:
		s.Pagination.Page = a.Page
		return s
	}
	return s
}

// Seq 0 marks an unsequenced result, which always applies.
func stale(s State, seq uint64) bool {
	return seq != 0 && seq != s.LastSeq
}

func (p FilterPatch) apply(f search.FilterParams) search.FilterParams {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Skills, p.Skills)
	set(&f.SkillMatchType, p.SkillMatchType)
	set(&f.MinExperience, p.MinExperience)
	set(&f.Education, p.Education)
	set(&f.Location, p.Location)
	set(&f.Name, p.Name)
	set(&f.Company, p.Company)
	set(&f.RoleName, p.RoleName)
	set(&f.MinSalary, p.MinSalary)
	set(&f.MaxSalary, p.MaxSalary)
	return f
}
