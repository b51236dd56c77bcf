package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"shortlist/internal/search"
)

const SearchKeyPrefix = "candidates:search:"

type candidateSearchCacheKeyInput struct {
	Dataset        string   `json:"dataset"`
	Skills         []string `json:"skills"`
	SkillMatchType string   `json:"skill_match_type"`
	MinExperience  *int     `json:"min_experience"`
	Education      string   `json:"education"`
	Location       string   `json:"location"`
	Name           string   `json:"name"`
	Company        string   `json:"company"`
	RoleName       string   `json:"role_name"`
	MinSalary      *int     `json:"min_salary"`
	MaxSalary      *int     `json:"max_salary"`
	Page           int      `json:"page"`
	Limit          int      `json:"limit"`
}

// Inner whitespace is kept: substring filters treat it as significant.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CandidatesSearchCacheKey hashes the parsed query together with the dataset
// fingerprint. Queries that can only differ in letter case or skill order
// share a key; education stays case-sensitive because its filter is.
func CandidatesSearchCacheKey(dataset string, q search.Query) string {
	skills := make([]string, 0, len(q.Skills))
	for _, s := range q.Skills {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	sort.Strings(skills)

	in := candidateSearchCacheKeyInput{
		Dataset:        dataset,
		Skills:         skills,
		SkillMatchType: string(q.SkillMatchType),
		MinExperience:  q.MinExperience,
		Education:      q.Education,
		Location:       normalizeSearchValue(q.Location),
		Name:           normalizeSearchValue(q.Name),
		Company:        normalizeSearchValue(q.Company),
		RoleName:       normalizeSearchValue(q.RoleName),
		MinSalary:      q.MinSalary,
		MaxSalary:      q.MaxSalary,
		Page:           q.Page,
		Limit:          q.Limit,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return SearchKeyPrefix + hex.EncodeToString(sum[:])
}
