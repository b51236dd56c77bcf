package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlist/internal/config"
)

const dataset = `[
  {"email": "a@example.com", "name": "Ann", "location": "Berlin", "skills": ["React", "Node"],
   "work_experiences": [{"company": "Acme", "roleName": "Frontend Developer"}],
   "education": {"highest_level": "Bachelor's Degree", "degrees": []},
   "annual_salary_expectation": {"full-time": "$100,000"}},
  {"email": "b@example.com", "name": "Bob", "location": "Lisbon", "skills": ["React"],
   "work_experiences": [], "education": {"highest_level": "Master's Degree", "degrees": []},
   "annual_salary_expectation": {"full-time": "$150,000"}}
]`

func testConfig(t *testing.T, path string, fatal bool) config.Config {
	t.Helper()
	return config.Config{
		App:  config.AppConfig{AppName: "shortlist-test", Environment: "test", HTTPPort: "0"},
		Data: config.DataConfig{Source: config.SourceFile, Path: path, LoadFatal: fatal},
		HTTP: config.HTTPConfig{RequestTimeout: time.Second, MaxPageLimit: 100},
	}
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))
	return path
}

func TestBootstrap_ServesCandidates(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), testConfig(t, writeDataset(t), true), nil)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/candidates?skills=React,Node&skillMatchType=all", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	b, _ := io.ReadAll(resp.Body)
	var page struct {
		Total      int `json:"total"`
		Candidates []struct {
			Email string `json:"email"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(b, &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "a@example.com", page.Candidates[0].Email)

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/candidates/nobody@example.com", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBootstrap_MissingDataDegrades(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	a, cleanup, err := Bootstrap(context.Background(), testConfig(t, missing, false), nil)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()
	assert.Equal(t, 0, a.Container.Store.Len())

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/candidates", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, _, err = Bootstrap(context.Background(), testConfig(t, missing, true), nil)
	assert.Error(t, err)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("5000")
	require.NoError(t, err)
	assert.Equal(t, ":5000", addr)

	addr, err = ListenAddr(":8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
