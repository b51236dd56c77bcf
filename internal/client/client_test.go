package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/search"
)

func TestNew_EmptyBaseURL(t *testing.T) {
	assert.Nil(t, New("  ", 0, nil))
}

func TestListCandidates_EncodesParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/candidates", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 1, "page": 2, "limit": 5,
			"candidates": []map[string]any{{"email": "a@example.com", "matchScore": 50, "matchDetails": map[string]int{"skillsMatch": 1, "totalSkills": 2}}},
		})
	}))
	defer srv.Close()

	api := New(srv.URL+"/", time.Second, nil)
	page, err := api.ListCandidates(context.Background(), search.Params{
		FilterParams: search.FilterParams{Skills: "Go,React", SkillMatchType: "all", Location: ""},
		Page:         "2",
		Limit:        "5",
	})
	require.NoError(t, err)

	assert.Equal(t, "limit=5&page=2&skillMatchType=all&skills=Go%2CReact", gotQuery)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Candidates, 1)
	assert.Equal(t, "a@example.com", page.Candidates[0].Email)
	assert.Equal(t, 50, page.Candidates[0].MatchScore)
	assert.Equal(t, 2, page.Candidates[0].MatchDetails.TotalSkills)
}

func TestListCandidates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, nil).ListCandidates(context.Background(), search.Params{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestGetCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/candidates/a@example.com" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"message":"Candidate not found","data":null}`))
			return
		}
		_ = json.NewEncoder(w).Encode(candidate.Candidate{Email: "a@example.com", Name: "A"})
	}))
	defer srv.Close()

	api := New(srv.URL, time.Second, nil)

	got, err := api.GetCandidate(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	_, err = api.GetCandidate(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = api.GetCandidate(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCandidates_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 50*time.Millisecond, nil).ListCandidates(context.Background(), search.Params{})
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}
