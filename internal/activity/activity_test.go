package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)

func importEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Action:    ActionImport,
		Subject:   "catalogo.csv",
		Status:    "partial",
		Details:   "9 parsed, 8 imported, 1 skipped, 4 linked",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, importEntry()))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionImport, entries[0].Action)
	assert.True(t, testTime.Equal(entries[0].Timestamp))

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), Header+"\n")
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, importEntry()))
	require.NoError(t, Append(dir, Entry{Timestamp: testTime, Action: ActionPost, Subject: "JE-000001", Status: "posted", Details: "1200.00"}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionImport, entries[0].Action)
	assert.Equal(t, ActionPost, entries[1].Action)
	assert.Equal(t, "JE-000001", entries[1].Subject)
}

func TestAppend_NothingToWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir))

	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err), "no log dir for an empty append")
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadTimestamp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\nyesterday,import,a.csv,ok,\n"
	require.NoError(t, os.WriteFile(Path(dir), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMarshalEntry(t *testing.T) {
	e := importEntry()
	e.Details = "parent code \"9000\" not found, line 3"
	row := MarshalEntry(e)
	require.Len(t, row, 5)
	assert.Equal(t, "2026-03-01T09:15:00Z", row[0])

	got, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestMarshalEntry_NormalizesToUTC(t *testing.T) {
	e := importEntry()
	e.Timestamp = time.Date(2026, 3, 1, 5, 15, 0, 0, time.FixedZone("AST", -4*3600))
	assert.Equal(t, "2026-03-01T09:15:00Z", MarshalEntry(e)[0])
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")
}
