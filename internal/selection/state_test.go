package selection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
)

func scored(email string) search.ScoredCandidate {
	return search.ScoredCandidate{Candidate: candidate.Candidate{Email: email}}
}

func strPtr(s string) *string { return &s }

func TestReduce_SelectCapsAtFive(t *testing.T) {
	s := InitialState()
	for i := 0; i < 7; i++ {
		s = Reduce(s, SelectCandidate{Candidate: scored(fmt.Sprintf("c%d@example.com", i))})
	}
	require.Len(t, s.Selected, MaxSelected)
	assert.Equal(t, "c4@example.com", s.Selected[4].Email)
	assert.True(t, s.SelectionFull())
}

func TestReduce_SelectDeduplicates(t *testing.T) {
	s := InitialState()
	s = Reduce(s, SelectCandidate{Candidate: scored("a@example.com")})
	s = Reduce(s, SelectCandidate{Candidate: scored("a@example.com")})
	assert.Len(t, s.Selected, 1)
}

func TestReduce_RemoveThenReselect(t *testing.T) {
	s := InitialState()
	for _, e := range []string{"a", "b", "c", "d", "e"} {
		s = Reduce(s, SelectCandidate{Candidate: scored(e)})
	}
	s = Reduce(s, RemoveCandidate{Email: "c"})
	s = Reduce(s, RemoveCandidate{Email: "zzz"})
	require.Len(t, s.Selected, 4)

	s = Reduce(s, SelectCandidate{Candidate: scored("f")})
	var got []string
	for _, c := range s.Selected {
		got = append(got, c.Email)
	}
	assert.Equal(t, []string{"a", "b", "d", "e", "f"}, got)
}

func TestReduce_DoesNotMutatePrevious(t *testing.T) {
	s0 := InitialState()
	s0 = Reduce(s0, SelectCandidate{Candidate: scored("a")})
	s1 := Reduce(s0, SelectCandidate{Candidate: scored("b")})
	s2 := Reduce(s0, SelectCandidate{Candidate: scored("c")})

	assert.Len(t, s0.Selected, 1)
	assert.Equal(t, "b", s1.Selected[1].Email)
	assert.Equal(t, "c", s2.Selected[1].Email)
}

func TestReduce_UpdateFiltersMergesAndResetsPage(t *testing.T) {
	s := InitialState()
	s = Reduce(s, UpdateFilters{Patch: FilterPatch{Skills: strPtr("Go"), Location: strPtr("Berlin")}})
	s = Reduce(s, SetPage{Page: 3})
	s = Reduce(s, UpdateFilters{Patch: FilterPatch{Location: strPtr("")}})

	assert.Equal(t, "Go", s.Filters.Skills)
	assert.Equal(t, "", s.Filters.Location)
	assert.Equal(t, "any", s.Filters.SkillMatchType)
	assert.Equal(t, 1, s.Pagination.Page)
}

func TestReduce_FetchLifecycle(t *testing.T) {
	s := InitialState()
	s = Reduce(s, FetchSuccess{Candidates: []search.ScoredCandidate{scored("a")}, Total: 41})
	s = Reduce(s, SelectCandidate{Candidate: scored("a")})

	s = Reduce(s, FetchStart{Seq: 1})
	assert.True(t, s.Loading)

	boom := errors.New("network down")
	s = Reduce(s, FetchError{Err: boom, Seq: 1})
	assert.False(t, s.Loading)
	assert.ErrorIs(t, s.Err, boom)
	assert.Len(t, s.Candidates, 1, "error keeps loaded candidates")
	assert.Len(t, s.Selected, 1, "error keeps selection")
	assert.Equal(t, 41, s.Pagination.Total)

	s = Reduce(s, FetchStart{Seq: 2})
	s = Reduce(s, FetchSuccess{Candidates: nil, Total: 0, Seq: 2})
	assert.NoError(t, s.Err)
	assert.NotNil(t, s.Candidates)
	assert.Empty(t, s.Candidates)
}

func TestReduce_StaleFetchDropped(t *testing.T) {
	s := InitialState()
	s = Reduce(s, FetchStart{Seq: 1})
	s = Reduce(s, FetchStart{Seq: 2})

	s = Reduce(s, FetchSuccess{Candidates: []search.ScoredCandidate{scored("new")}, Total: 1, Seq: 2})
	s = Reduce(s, FetchSuccess{Candidates: []search.ScoredCandidate{scored("old")}, Total: 9, Seq: 1})
	s = Reduce(s, FetchError{Err: errors.New("late"), Seq: 1})

	require.Len(t, s.Candidates, 1)
	assert.Equal(t, "new", s.Candidates[0].Email)
	assert.Equal(t, 1, s.Pagination.Total)
	assert.NoError(t, s.Err)
}

type unknownAction struct{}

func (unknownAction) isAction() {}

func TestReduce_UnknownActionIsIdentity(t *testing.T) {
	s := InitialState()
	assert.Equal(t, s, Reduce(s, unknownAction{}))
	assert.Equal(t, s, Reduce(s, nil))
}
