package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/samuli/bike-logs/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeSession(t *testing.T, dir, name, timestamp string, distance float64) string {
	t.Helper()
	content := `[{"data": {"start_time": "` + timestamp + `", "timestamp": "` + timestamp + `", "total_distance": ` +
		strconv.FormatFloat(distance, 'f', -1, 64) + `}}]`
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenArchive_SortsAndSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "2021-02-03.json", "2021-02-03 10:00:00", 3000)
	writeSession(t, dir, "2021-02-01.json", "2021-02-01 10:00:00", 1000)
	writeSession(t, dir, "2021-02-02.json", "2021-02-02 10:00:00", 2000)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2021-02-00.d"), 0o755))

	archive, err := session.OpenArchive(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, archive.Dir())
	assert.Equal(t, []string{
		filepath.Join(dir, "2021-02-01.json"),
		filepath.Join(dir, "2021-02-02.json"),
		filepath.Join(dir, "2021-02-03.json"),
	}, archive.Paths())
}

func TestOpenArchive_MissingDirectory(t *testing.T) {
	_, err := session.OpenArchive(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrDirectory)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArchive_Walk(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.json", "2021-02-01 10:00:00", 1000)
	badPath := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"broken":`), 0o644))
	writeSession(t, dir, "c.json", "2021-02-03 10:00:00", 3000)

	archive, err := session.OpenArchive(dir)
	require.NoError(t, err)

	var distances []float64
	var paths []string
	var skipped []*session.DecodeError
	err = archive.Walk(func(rec session.Record) error {
		distances = append(distances, rec.DistanceMeters)
		paths = append(paths, rec.Path)
		return nil
	}, func(decodeErr *session.DecodeError) {
		skipped = append(skipped, decodeErr)
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{1000, 3000}, distances)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "c.json")}, paths)
	require.Len(t, skipped, 1)
	assert.Equal(t, badPath, skipped[0].Path)
	assert.Contains(t, skipped[0].Error(), "b.json")
}

func TestArchive_Walk_StopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.json", "2021-02-01 10:00:00", 1000)
	writeSession(t, dir, "b.json", "2021-02-02 10:00:00", 2000)

	archive, err := session.OpenArchive(dir)
	require.NoError(t, err)

	stop := errors.New("stop")
	calls := 0
	err = archive.Walk(func(rec session.Record) error {
		calls++
		return stop
	}, nil)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestArchive_Walk_ReadErrorAborts(t *testing.T) {
	dir := t.TempDir()
	path := writeSession(t, dir, "a.json", "2021-02-01 10:00:00", 1000)
	writeSession(t, dir, "b.json", "2021-02-02 10:00:00", 2000)

	archive, err := session.OpenArchive(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	calls := 0
	err = archive.Walk(func(rec session.Record) error {
		calls++
		return nil
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrRead)
	assert.Zero(t, calls)
}

func TestReadFile_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := session.ReadFile(path)
	var decodeErr *session.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, path, decodeErr.Path)
	assert.NotErrorIs(t, err, session.ErrRead)
}
