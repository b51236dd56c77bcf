package search

import (
	"math"
	"sort"
	"strings"
)

type SortMode string

const (
	SortMatch      SortMode = "match"
	SortLatest     SortMode = "latest"
	SortSalaryHigh SortMode = "salary-high"
	SortSalaryLow  SortMode = "salary-low"
	SortExperience SortMode = "experience"
)

var SortModes = []SortMode{SortMatch, SortLatest, SortSalaryHigh, SortSalaryLow, SortExperience}

// ParseSortMode falls back to latest, like an unknown option in the list view.
func ParseSortMode(s string) SortMode {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range SortModes {
		if string(m) == s {
			return m
		}
	}
	return SortLatest
}

// Sort returns a stably sorted copy of items.
func Sort(items []ScoredCandidate, mode SortMode) []ScoredCandidate {
	out := make([]ScoredCandidate, len(items))
	copy(out, items)

	var less func(a, b ScoredCandidate) bool
	switch mode {
	case SortMatch:
		less = func(a, b ScoredCandidate) bool { return a.MatchScore > b.MatchScore }
	case SortSalaryHigh:
		less = func(a, b ScoredCandidate) bool { return salaryOr(a, 0) > salaryOr(b, 0) }
	case SortSalaryLow:
		less = func(a, b ScoredCandidate) bool { return salaryOr(a, math.MaxInt) < salaryOr(b, math.MaxInt) }
	case SortExperience:
		less = func(a, b ScoredCandidate) bool { return a.ExperienceCount() > b.ExperienceCount() }
	default:
		less = func(a, b ScoredCandidate) bool { return a.Submitted().After(b.Submitted()) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func salaryOr(c ScoredCandidate, missing int) int {
	if v, ok := c.FullTimeSalary(); ok {
		return v
	}
	return missing
}
