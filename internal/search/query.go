package search

import (
	"net/url"
	"strconv"
	"strings"

	"shortlist/internal/domain/matching"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type MatchType string

const (
	MatchAny MatchType = "any"
	MatchAll MatchType = "all"
)

func ParseMatchType(s string) MatchType {
	if strings.EqualFold(strings.TrimSpace(s), string(MatchAll)) {
		return MatchAll
	}
	return MatchAny
}

// FilterParams is the flat, string-typed form of the filters as they travel
// in a query string. Empty means "no filter".
type FilterParams struct {
	Skills         string `json:"skills"`
	SkillMatchType string `json:"skillMatchType"`
	MinExperience  string `json:"minExperience"`
	Education      string `json:"education"`
	Location       string `json:"location"`
	Name           string `json:"name"`
	Company        string `json:"company"`
	RoleName       string `json:"roleName"`
	MinSalary      string `json:"minSalary"`
	MaxSalary      string `json:"maxSalary"`
}

type Params struct {
	FilterParams
	Page  string `json:"page"`
	Limit string `json:"limit"`
}

func (f FilterParams) HasFilter() bool {
	for _, v := range []string{f.Skills, f.MinExperience, f.Education, f.Location, f.Name, f.Company, f.RoleName, f.MinSalary, f.MaxSalary} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Values encodes the non-empty filters plus pagination.
func (p Params) Values() url.Values {
	v := url.Values{}
	add := func(k, s string) {
		if s = strings.TrimSpace(s); s != "" {
			v.Set(k, s)
		}
	}
	add("skills", p.Skills)
	add("skillMatchType", p.SkillMatchType)
	add("minExperience", p.MinExperience)
	add("education", p.Education)
	add("location", p.Location)
	add("name", p.Name)
	add("company", p.Company)
	add("roleName", p.RoleName)
	add("minSalary", p.MinSalary)
	add("maxSalary", p.MaxSalary)
	add("page", p.Page)
	add("limit", p.Limit)
	return v
}

// Query is the parsed, typed request. Nil pointers and empty strings mean
// the corresponding filter is not applied.
type Query struct {
	Skills         []string
	SkillMatchType MatchType
	MinExperience  *int
	Education      string
	Location       string
	Name           string
	Company        string
	RoleName       string
	MinSalary      *int
	MaxSalary      *int
	Page           int
	Limit          int
}

// ParseQuery converts wire params into a Query. Numeric values that do not
// parse, or are out of range, are treated as absent. maxLimit <= 0 disables
// the upper clamp on limit.
func ParseQuery(p Params, maxLimit int) Query {
	q := Query{
		Skills:         matching.ParseSkills(p.Skills),
		SkillMatchType: ParseMatchType(p.SkillMatchType),
		MinExperience:  parseNonNegative(p.MinExperience),
		Education:      strings.TrimSpace(p.Education),
		Location:       strings.TrimSpace(p.Location),
		Name:           strings.TrimSpace(p.Name),
		Company:        strings.TrimSpace(p.Company),
		RoleName:       strings.TrimSpace(p.RoleName),
		MinSalary:      parseNonNegative(p.MinSalary),
		MaxSalary:      parseNonNegative(p.MaxSalary),
		Page:           parsePositive(p.Page, DefaultPage),
		Limit:          parsePositive(p.Limit, DefaultLimit),
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

func parseNonNegative(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parsePositive(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}
