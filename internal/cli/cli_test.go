package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shortlist/internal/client"
	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
	"shortlist/internal/selection"
)

type fakeAPI struct {
	people   map[string]candidate.Candidate
	lastList search.Params
	listErr  error
}

func (f *fakeAPI) ListCandidates(_ context.Context, p search.Params) (search.ResultPage, error) {
	f.lastList = p
	if f.listErr != nil {
		return search.ResultPage{}, f.listErr
	}
	all := make([]candidate.Candidate, 0, len(f.people))
	for _, e := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if c, ok := f.people[e]; ok {
			all = append(all, c)
		}
	}
	return search.Evaluate(all, search.ParseQuery(p, 100)), nil
}

func (f *fakeAPI) GetCandidate(_ context.Context, email string) (candidate.Candidate, error) {
	c, ok := f.people[email]
	if !ok {
		return candidate.Candidate{}, client.ErrNotFound
	}
	return c, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{people: map[string]candidate.Candidate{
		"a@example.com": {Email: "a@example.com", Name: "Ann", Location: "Berlin", Skills: []string{"Go", "React"},
			AnnualSalaryExpectation: map[string]string{"full-time": "$100,000"}, SubmittedAt: "2025-01-01 10:00:00"},
		"b@example.com": {Email: "b@example.com", Name: "Bob", Location: "Lisbon", Skills: []string{"React"},
			AnnualSalaryExpectation: map[string]string{"full-time": "$150,000"}, SubmittedAt: "2025-01-02 10:00:00"},
		"c@example.com": {Email: "c@example.com", Name: "Cid", Location: "Berlin", Skills: []string{"SQL"}},
	}}
}

func run(t *testing.T, api client.CandidateAPI, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SHORTLIST_API", "http://candidates.test")
	root := newRootCommand(func(Config, *zap.Logger) client.CandidateAPI { return api })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListCommand_PassesFiltersAndSorts(t *testing.T) {
	api := newFakeAPI()
	out, err := run(t, api, "list", "--skills", "React,Go", "--match", "any", "--sort", "match", "--output-json")
	require.NoError(t, err)

	assert.Equal(t, "React,Go", api.lastList.Skills)
	assert.Equal(t, "any", api.lastList.SkillMatchType)

	var page search.ResultPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Candidates, 2)
	assert.Equal(t, "a@example.com", page.Candidates[0].Email)
	assert.Equal(t, 100, page.Candidates[0].MatchScore)
}

func TestListCommand_DefaultsToMatchOrder(t *testing.T) {
	out, err := run(t, newFakeAPI(), "list", "--skills", "React,Go", "--output-json")
	require.NoError(t, err)

	var page search.ResultPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Candidates, 2)
	assert.Equal(t, "a@example.com", page.Candidates[0].Email)
	assert.Equal(t, "b@example.com", page.Candidates[1].Email)
}

func TestListCommand_Table(t *testing.T) {
	out, err := run(t, newFakeAPI(), "list", "--location", "berlin", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "page 1/1, 2 candidates total")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "$100000")
	assert.NotContains(t, out, "Bob")
}

func TestListCommand_APIError(t *testing.T) {
	api := newFakeAPI()
	api.listErr = errors.New("connection refused")
	_, err := run(t, api, "list")
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetCommand(t *testing.T) {
	out, err := run(t, newFakeAPI(), "get", "b@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Bob"`)

	_, err = run(t, newFakeAPI(), "get", "nobody@example.com")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestTeamCommand(t *testing.T) {
	out, err := run(t, newFakeAPI(), "team", "--skills", "React", "--output-json", "a@example.com", "b@example.com", "a@example.com")
	require.NoError(t, err)

	var m selection.TeamMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 2, m.Count)
	assert.Equal(t, 250000, m.TotalSalary)
	assert.Equal(t, 100, m.AverageMatchScore)
	assert.Equal(t, []string{"React", "Go"}, m.TopSkills)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shortlist version:")
}

func scriptedChooser(t *testing.T, picks ...string) chooser {
	return func(label string, items []string) (int, error) {
		require.NotEmpty(t, picks, "unexpected prompt %q", label)
		want := picks[0]
		picks = picks[1:]
		for i, it := range items {
			if it == want {
				return i, nil
			}
		}
		t.Fatalf("prompt %q has no item %q in %v", label, want, items)
		return -1, nil
	}
}

func TestBrowser_AddRemoveAndQuit(t *testing.T) {
	var out bytes.Buffer
	store := selection.NewStore(selection.InitialState())
	b := &browser{
		ctrl:   selection.NewController(store, newFakeAPI(), 0, nil),
		out:    &out,
		sort:   search.SortMatch,
		logger: zap.NewNop(),
		choose: scriptedChooser(t,
			PromptAdd, "Ann <a@example.com> 100%",
			PromptAdd, "Bob <b@example.com> 100%",
			PromptRemove, "Ann <a@example.com>",
			PromptTeam,
			PromptQuit,
		),
	}

	require.NoError(t, b.run(context.Background(), search.FilterParams{Location: "", SkillMatchType: "any"}))

	st := store.State()
	require.Len(t, st.Selected, 1)
	assert.Equal(t, "b@example.com", st.Selected[0].Email)
	assert.Contains(t, out.String(), "1/5 candidates selected")
}

func TestBrowser_RetryOfferedAfterError(t *testing.T) {
	api := newFakeAPI()
	api.listErr = errors.New("down")
	store := selection.NewStore(selection.InitialState())
	var out bytes.Buffer
	b := &browser{
		ctrl:   selection.NewController(store, api, 0, nil),
		out:    &out,
		sort:   search.SortLatest,
		logger: zap.NewNop(),
	}
	b.choose = func(_ string, items []string) (int, error) {
		if items[0] == PromptRetry {
			api.listErr = nil
			return 0, nil
		}
		return len(items) - 1, nil
	}

	require.NoError(t, b.run(context.Background(), search.FilterParams{}))
	st := store.State()
	assert.NoError(t, st.Err)
	assert.Len(t, st.Candidates, 3)
	assert.Contains(t, out.String(), "error: down")
}
