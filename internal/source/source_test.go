package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_JSON tests that JSON objects keep their field order.
func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rows.json", `[
  {"name": "alpha", "size": 10, "active": true},
  {"name": "beta", "size": 2.5, "owner": null}
]`)

	ds, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "size", "active", "owner"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "alpha", ds.Records[0]["name"])
	assert.Equal(t, 10, ds.Records[0]["size"])
	assert.Equal(t, true, ds.Records[0]["active"])
	assert.Equal(t, 2.5, ds.Records[1]["size"])
	assert.Nil(t, ds.Records[1]["owner"])
}

// TestLoad_YAML tests YAML sequences.
func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rows.yaml", `
- id: a1
  version: "1.10.0"
- id: a2
  version: "1.9.0"
`)

	ds, err := Load(context.Background(), path, Options{Kinds: map[string]Kind{"version": KindVersion}})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "version"}, ds.Columns)
	v, ok := ds.Records[0]["version"].(*semver.Version)
	require.True(t, ok)
	assert.Equal(t, "1.10.0", v.String())
}

// TestLoad_CSV tests CSV headers, short rows and coercion.
func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rows.csv", "name,count,seen\nalpha,\"1,200\",2024-03-01\nbeta,,\ngamma\n")

	ds, err := Load(context.Background(), path, Options{Infer: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count", "seen"}, ds.Columns)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, int64(1200), ds.Records[0]["count"])
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ds.Records[0]["seen"])
	assert.Nil(t, ds.Records[1]["count"])
	_, present := ds.Records[2]["count"]
	assert.False(t, present)
}

// TestLoad_Errors tests unsupported and malformed inputs.
func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), writeFile(t, dir, "rows.txt", "x"), Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(context.Background(), writeFile(t, dir, "obj.json", `{"a": 1}`), Options{})
	require.ErrorIs(t, err, ErrNotTabular)

	_, err = Load(context.Background(), writeFile(t, dir, "bad.csv", "n\nx\n"), Options{Kinds: map[string]Kind{"n": KindNumber}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "n"`)

	_, err = Load(context.Background(), writeFile(t, dir, "broken.xlsx", "not a zip"), Options{})
	require.Error(t, err)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"), Options{})
	require.Error(t, err)
}

// TestLoad_Empty tests empty documents.
func TestLoad_Empty(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"empty.json", "empty.csv"} {
		ds, err := Load(context.Background(), writeFile(t, dir, name, ""), Options{})
		require.NoError(t, err, name)
		assert.Empty(t, ds.Records, name)
	}
}

// TestLoad_GenerateIDs tests that generated ids fill only missing ids.
func TestLoad_GenerateIDs(t *testing.T) {
	dir := t.TempDir()

	mixed := writeFile(t, dir, "mixed.yaml", "- name: a\n- name: b\n  id: keep\n")
	ds, err := Load(context.Background(), mixed, Options{GenerateIDs: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, ds.Columns)
	assert.Len(t, ds.Records[0]["id"], 26)
	assert.Equal(t, "keep", ds.Records[1]["id"])

	bare := writeFile(t, dir, "bare.yaml", "- name: a\n")
	ds, err = Load(context.Background(), bare, Options{GenerateIDs: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Columns)
}

// TestLoadAll tests concurrent loading and column union order.
func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.csv", "name,size\nx,1\n")
	second := writeFile(t, dir, "b.json", `[{"owner": "o", "name": "y"}]`)

	ds, err := LoadAll(context.Background(), []string{first, second}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "size", "owner"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "x", ds.Records[0]["name"])
	assert.Equal(t, "y", ds.Records[1]["name"])

	_, err = LoadAll(context.Background(), []string{first, filepath.Join(dir, "nope.csv")}, Options{})
	require.Error(t, err)
}

// TestLoadAll_Canceled tests that a canceled context stops loading.
func TestLoadAll_Canceled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.csv", "name\nx\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadAll(ctx, []string{path}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

// TestRecordKey tests the id, key, index fallback.
func TestRecordKey(t *testing.T) {
	assert.Equal(t, "7", RecordKey(Record{"id": 7, "key": "k"}, 3))
	assert.Equal(t, "k", RecordKey(Record{"key": "k"}, 3))
	assert.Equal(t, "k", RecordKey(Record{"id": nil, "key": "k"}, 3))
	assert.Equal(t, "#3", RecordKey(Record{"name": "x"}, 3))
	assert.Equal(t, "#1", RecordKey(Record{"id": ""}, 1))
}

// TestRecordKey_MixedIDs tests that positional keys never match a real id.
func TestRecordKey_MixedIDs(t *testing.T) {
	records := []Record{{"id": "1"}, {"id": nil}, {"id": "x"}}
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		seen[RecordKey(rec, i)] = struct{}{}
	}
	assert.Len(t, seen, len(records))
}

// TestFromTable tests header normalization.
func TestFromTable(t *testing.T) {
	ds := fromTable([]string{"a", ""}, [][]string{{"1", "2", "extra"}})

	assert.Equal(t, []string{"a", "column2"}, ds.Columns)
	assert.Equal(t, Record{"a": "1", "column2": "2"}, ds.Records[0])
}
