package candidate

import (
	"strconv"
	"strings"
	"time"
)

const FullTime = "full-time"

type WorkExperience struct {
	RoleName string `json:"roleName"`
	Company  string `json:"company"`
}

type Degree struct {
	Degree         string `json:"degree"`
	Subject        string `json:"subject"`
	School         string `json:"school,omitempty"`
	OriginalSchool string `json:"originalSchool"`
	GPA            string `json:"gpa,omitempty"`
	IsTop          bool   `json:"isTop,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
}

type Education struct {
	HighestLevel string   `json:"highest_level"`
	Degrees      []Degree `json:"degrees"`
}

// Candidate is a single profile from the dataset. Email is the identity key.
type Candidate struct {
	Email                   string            `json:"email"`
	Name                    string            `json:"name"`
	Location                string            `json:"location"`
	Phone                   string            `json:"phone,omitempty"`
	Skills                  []string          `json:"skills"`
	WorkExperiences         []WorkExperience  `json:"work_experiences"`
	Education               *Education        `json:"education"`
	AnnualSalaryExpectation map[string]string `json:"annual_salary_expectation"`
	SubmittedAt             string            `json:"submitted_at,omitempty"`
}

// ExperienceCount is the number of listed positions, not years.
func (c Candidate) ExperienceCount() int {
	return len(c.WorkExperiences)
}

func (c Candidate) HighestEducation() string {
	if c.Education == nil {
		return ""
	}
	return c.Education.HighestLevel
}

// FullTimeSalary returns the parsed full-time expectation. ok is false when
// the field is missing or carries no digits.
func (c Candidate) FullTimeSalary() (int, bool) {
	raw, ok := c.AnnualSalaryExpectation[FullTime]
	if !ok || raw == "" {
		return 0, false
	}
	return ParseSalary(raw)
}

func (c Candidate) Submitted() time.Time {
	s := strings.TrimSpace(c.SubmittedAt)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range submittedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

var submittedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSalary keeps only the digits of s and parses them, so "$120,000"
// becomes 120000. Ranges and "k" suffixes are not understood.
func ParseSalary(s string) (int, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return v, true
}
