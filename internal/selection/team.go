package selection

import (
	"math"
	"sort"

	"shortlist/internal/search"
)

const maxTopSkills = 5

// TeamMetrics aggregates the shortlist. Experience figures count positions,
// not years.
type TeamMetrics struct {
	Count             int      `json:"count"`
	Locations         []string `json:"locations"`
	EducationLevels   []string `json:"educationLevels"`
	MinExperience     int      `json:"minExperience"`
	MaxExperience     int      `json:"maxExperience"`
	AvgExperience     int      `json:"avgExperience"`
	AverageMatchScore int      `json:"averageMatchScore"`
	TotalSalary       int      `json:"totalSalary"`
	AverageSalary     int      `json:"averageSalary"`
	TopSkills         []string `json:"topSkills"`
}

func Summarize(selected []search.ScoredCandidate) TeamMetrics {
	m := TeamMetrics{
		Count:           len(selected),
		Locations:       []string{},
		EducationLevels: []string{},
		TopSkills:       []string{},
	}
	if len(selected) == 0 {
		return m
	}

	m.Locations = distinct(selected, func(c search.ScoredCandidate) string { return c.Location })
	m.EducationLevels = distinct(selected, func(c search.ScoredCandidate) string { return c.HighestEducation() })

	m.MinExperience = math.MaxInt
	scoreSum := 0
	for _, c := range selected {
		n := c.ExperienceCount()
		m.MinExperience = min(m.MinExperience, n)
		m.MaxExperience = max(m.MaxExperience, n)
		scoreSum += c.MatchScore
		if v, ok := c.FullTimeSalary(); ok {
			m.TotalSalary += v
		}
	}
	// Midpoint of the range, as shown on the shortlist panel.
	m.AvgExperience = roundDiv(m.MinExperience+m.MaxExperience, 2)
	m.AverageMatchScore = roundDiv(scoreSum, len(selected))
	m.AverageSalary = roundDiv(m.TotalSalary, len(selected))
	m.TopSkills = topSkills(selected, maxTopSkills)
	return m
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}

func distinct(items []search.ScoredCandidate, key func(search.ScoredCandidate) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, c := range items {
		k := key(c)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// topSkills ranks skills by how many members list them. Equal counts keep
// first-appearance order.
func topSkills(items []search.ScoredCandidate, n int) []string {
	counts := map[string]int{}
	order := []string{}
	for _, c := range items {
		for _, s := range c.Skills {
			if _, ok := counts[s]; !ok {
				order = append(order, s)
			}
			counts[s]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}
