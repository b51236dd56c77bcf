package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
)

func member(email, location, edu string, positions, score int, salary string, skills ...string) search.ScoredCandidate {
	c := candidate.Candidate{
		Email:    email,
		Location: location,
		Skills:   skills,
	}
	if edu != "" {
		c.Education = &candidate.Education{HighestLevel: edu}
	}
	for i := 0; i < positions; i++ {
		c.WorkExperiences = append(c.WorkExperiences, candidate.WorkExperience{RoleName: "Engineer"})
	}
	if salary != "" {
		c.AnnualSalaryExpectation = map[string]string{candidate.FullTime: salary}
	}
	return search.ScoredCandidate{Candidate: c, MatchScore: score}
}

func TestSummarize_Empty(t *testing.T) {
	m := Summarize(nil)
	assert.Equal(t, 0, m.Count)
	assert.Empty(t, m.Locations)
	assert.NotNil(t, m.TopSkills)
	assert.Equal(t, 0, m.MinExperience)
	assert.Equal(t, 0, m.AverageSalary)
}

func TestSummarize(t *testing.T) {
	team := []search.ScoredCandidate{
		member("a", "Berlin", "Master's Degree", 1, 100, "$100,000", "Go", "React"),
		member("b", "Lisbon", "Bachelor's Degree", 4, 50, "$150,000", "React", "SQL"),
		member("c", "Berlin", "", 2, 33, "", "SQL", "React", "Docker"),
	}

	m := Summarize(team)
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, []string{"Berlin", "Lisbon"}, m.Locations)
	assert.Equal(t, []string{"Master's Degree", "Bachelor's Degree"}, m.EducationLevels)
	assert.Equal(t, 1, m.MinExperience)
	assert.Equal(t, 4, m.MaxExperience)
	assert.Equal(t, 3, m.AvgExperience)
	assert.Equal(t, 61, m.AverageMatchScore)
	assert.Equal(t, 250000, m.TotalSalary)
	assert.Equal(t, 83333, m.AverageSalary)
	assert.Equal(t, []string{"React", "SQL", "Go", "Docker"}, m.TopSkills)
}

func TestSummarize_TopSkillsCappedAtFive(t *testing.T) {
	team := []search.ScoredCandidate{
		member("a", "", "", 0, 0, "", "s1", "s2", "s3", "s4", "s5", "s6", "s7"),
		member("b", "", "", 0, 0, "", "s7"),
	}
	assert.Equal(t, []string{"s7", "s1", "s2", "s3", "s4"}, Summarize(team).TopSkills)
}
