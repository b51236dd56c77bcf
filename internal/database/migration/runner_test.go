package migration

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OrdersAndSkipsUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql":      {Data: []byte("CREATE INDEX x ON candidates (position);")},
		"V1__create.sql":         {Data: []byte("  CREATE TABLE candidates (email TEXT);\n")},
		"README.md":              {Data: []byte("notes")},
		"v3__lowercase_skip.sql": {Data: []byte("SELECT 1")},
		"nested/V9__ignored.sql": {Data: []byte("SELECT 1")},
	}

	migs, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "create", migs[0].Name)
	assert.Equal(t, "CREATE TABLE candidates (email TEXT);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("   ")}})
	assert.ErrorContains(t, err, "empty migration file")

	_, err = Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1")},
		"V01__b.sql": {Data: []byte("SELECT 2")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	require.NoError(t, err)

	migs, err := Load(src)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS candidates")
}

func TestRun_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(context.Background(), nil))
}
