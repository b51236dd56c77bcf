package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shortlist/internal/database"
	"shortlist/internal/domain/candidate"
)

const sampleJSON = `[
  {
    "name": "Alice Anders",
    "email": "alice@example.com",
    "location": "Berlin",
    "skills": ["Go", "PostgreSQL"],
    "work_experiences": [{"company": "Acme", "roleName": "Backend Engineer"}],
    "education": {"highest_level": "Master's Degree", "degrees": [{"degree": "Master's Degree", "subject": "CS", "originalSchool": "TU Berlin", "gpa": "GPA 3.5-3.8"}]},
    "annual_salary_expectation": {"full-time": "$120,000"},
    "submitted_at": "2025-01-28 09:02:16.000000"
  },
  {"name": "Dup", "email": "alice@example.com"},
  {"name": "No Email"},
  {"name": "Bob", "email": "bob@example.com"}
]`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileSource(t *testing.T) {
	snap, err := Load(context.Background(), NewFileSource(writeFile(t, sampleJSON)), true, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())

	alice, ok := snap.Get("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "Alice Anders", alice.Name)
	assert.Equal(t, "Master's Degree", alice.HighestEducation())
	assert.Equal(t, "TU Berlin", alice.Education.Degrees[0].OriginalSchool)
	salary, ok := alice.FullTimeSalary()
	assert.True(t, ok)
	assert.Equal(t, 120000, salary)

	_, ok = snap.Get("nobody@example.com")
	assert.False(t, ok)
	assert.NotEmpty(t, snap.Fingerprint())
	assert.Contains(t, snap.Source(), "file:")
}

func TestNewSnapshot_KeepsRecordVerbatim(t *testing.T) {
	snap, rejected := NewSnapshot("test", []candidate.Candidate{{Email: " pad@example.com ", Name: "Pad"}})
	require.Empty(t, rejected)

	got, ok := snap.Get("pad@example.com")
	require.True(t, ok)
	assert.Equal(t, " pad@example.com ", got.Email)
	assert.Equal(t, " pad@example.com ", snap.All()[0].Email)
}

func TestLoad_MissingFileDegrades(t *testing.T) {
	snap, err := Load(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "missing.json")), false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.NotNil(t, snap.All())
}

func TestLoad_MissingFileFatal(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "missing.json")), true, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource(writeFile(t, `{"not":"an array"}`)), true, nil)
	require.Error(t, err)
}

func TestNewSnapshot_Rejected(t *testing.T) {
	snap, rejected := NewSnapshot("test", []candidate.Candidate{
		{Email: " a@x.io "},
		{Email: "a@x.io"},
		{Email: ""},
	})
	assert.Equal(t, 1, snap.Len())
	require.Len(t, rejected, 2)
	assert.ErrorIs(t, rejected[0], ErrDuplicateEmail)
	assert.ErrorIs(t, rejected[1], ErrMissingEmail)

	_, ok := snap.Get("a@x.io")
	assert.True(t, ok)
}

func TestSnapshot_AllIsACopy(t *testing.T) {
	snap, _ := NewSnapshot("test", []candidate.Candidate{{Email: "a@x.io", Name: "A"}})
	all := snap.All()
	all[0].Name = "changed"
	got, _ := snap.Get("a@x.io")
	assert.Equal(t, "A", got.Name)
}

func TestSnapshot_FingerprintTracksData(t *testing.T) {
	a, _ := NewSnapshot("x", []candidate.Candidate{{Email: "a@x.io"}})
	b, _ := NewSnapshot("y", []candidate.Candidate{{Email: "a@x.io"}})
	c, _ := NewSnapshot("x", []candidate.Candidate{{Email: "b@x.io"}})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

type fakeRows struct {
	docs [][]byte
	i    int
	err  error
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.docs) }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Scan(dest ...any) error {
	p, ok := dest[0].(*[]byte)
	if !ok {
		return errors.New("unexpected scan target")
	}
	*p = r.docs[r.i-1]
	return nil
}

type fakeDB struct {
	rows  *fakeRows
	err   error
	query string
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) Query(_ context.Context, q string, _ ...any) (database.Rows, error) {
	f.query = q
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

func TestPostgresSource_Load(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{docs: [][]byte{
		[]byte(`{"email":"a@x.io","name":"A","skills":["Go"]}`),
		[]byte(`{"email":"b@x.io","name":"B"}`),
	}}}
	src := NewPostgresSource(db, "")
	items, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"Go"}, items[0].Skills)
	assert.Equal(t, defaultCandidatesQuery, db.query)
	assert.Equal(t, "postgres", src.Name())
}

func TestPostgresSource_QueryError(t *testing.T) {
	src := NewPostgresSource(&fakeDB{err: errors.New("boom")}, "SELECT doc FROM other")
	_, err := src.Load(context.Background())
	require.Error(t, err)

	snap, err := Load(context.Background(), src, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}
