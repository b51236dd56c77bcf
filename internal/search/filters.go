package search

import (
	"strings"
)

// Filter is one narrowing stage of the candidate pipeline.
type Filter interface {
	Name() string
	// Enabled reports whether the query asks for this filter at all.
	Enabled(q Query) bool
	Keep(q Query, c ScoredCandidate) bool
}

// Step describes the result of executing a filter.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

type filterFunc struct {
	name    string
	enabled func(Query) bool
	keep    func(Query, ScoredCandidate) bool
}

func (f filterFunc) Name() string                         { return f.name }
func (f filterFunc) Enabled(q Query) bool                 { return f.enabled(q) }
func (f filterFunc) Keep(q Query, c ScoredCandidate) bool { return f.keep(q, c) }

// DefaultFilters returns the filters in the order they must run. Skill
// filtering relies on the scores computed before the pipeline starts.
func DefaultFilters() []Filter {
	return []Filter{
		filterFunc{name: "skills", enabled: hasSkills, keep: keepSkills},
		filterFunc{name: "experience", enabled: func(q Query) bool { return q.MinExperience != nil }, keep: keepExperience},
		filterFunc{name: "education", enabled: func(q Query) bool { return q.Education != "" }, keep: keepEducation},
		filterFunc{name: "location", enabled: func(q Query) bool { return q.Location != "" }, keep: func(q Query, c ScoredCandidate) bool {
			return containsFold(c.Location, q.Location)
		}},
		filterFunc{name: "name", enabled: func(q Query) bool { return q.Name != "" }, keep: func(q Query, c ScoredCandidate) bool {
			return containsFold(c.Name, q.Name)
		}},
		filterFunc{name: "company", enabled: func(q Query) bool { return q.Company != "" }, keep: keepCompany},
		filterFunc{name: "role", enabled: func(q Query) bool { return q.RoleName != "" }, keep: keepRole},
		filterFunc{name: "salary", enabled: func(q Query) bool { return q.MinSalary != nil || q.MaxSalary != nil }, keep: keepSalary},
	}
}

// RunFilters applies every enabled filter in order and returns the survivors
// together with per-step counts. The input slice is not modified.
func RunFilters(q Query, filters []Filter, in []ScoredCandidate) ([]ScoredCandidate, []Step) {
	cur := in
	steps := make([]Step, 0, len(filters))
	for _, f := range filters {
		if !f.Enabled(q) {
			continue
		}
		initial := len(cur)
		next := make([]ScoredCandidate, 0, len(cur))
		for _, c := range cur {
			if f.Keep(q, c) {
				next = append(next, c)
			}
		}
		steps = append(steps, Step{Name: f.Name(), Initial: initial, Dropped: initial - len(next), Left: len(next)})
		cur = next
	}
	return cur, steps
}

func hasSkills(q Query) bool { return len(q.Skills) > 0 }

func keepSkills(q Query, c ScoredCandidate) bool {
	if len(c.Skills) == 0 {
		return false
	}
	d := c.MatchDetails
	if q.SkillMatchType == MatchAll {
		return d.TotalSkills > 0 && d.SkillsMatch == d.TotalSkills
	}
	return d.SkillsMatch > 0
}

func keepExperience(q Query, c ScoredCandidate) bool {
	if c.WorkExperiences == nil {
		return false
	}
	return c.ExperienceCount() >= *q.MinExperience
}

func keepEducation(q Query, c ScoredCandidate) bool {
	if c.Education == nil {
		return false
	}
	return c.Education.HighestLevel == q.Education
}

func keepCompany(q Query, c ScoredCandidate) bool {
	for _, we := range c.WorkExperiences {
		if containsFold(we.Company, q.Company) {
			return true
		}
	}
	return false
}

func keepRole(q Query, c ScoredCandidate) bool {
	for _, we := range c.WorkExperiences {
		if containsFold(we.RoleName, q.RoleName) {
			return true
		}
	}
	return false
}

func keepSalary(q Query, c ScoredCandidate) bool {
	salary, ok := c.FullTimeSalary()
	if !ok {
		return false
	}
	if q.MinSalary != nil && salary < *q.MinSalary {
		return false
	}
	if q.MaxSalary != nil && salary > *q.MaxSalary {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
