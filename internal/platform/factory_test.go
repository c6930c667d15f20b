package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
}

func TestOpen_FS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")

	svc, err := platform.Open(path, platform.WithClock(fixedClock))
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Len())
	assert.NoError(t, svc.LoadErr())

	id, err := svc.Create(context.Background(), "A", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	// A second service sees what the first one persisted.
	again, err := platform.Open(path)
	require.NoError(t, err)
	notes := again.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, core.Note{ID: 0, Title: "A", Content: "x", CreatedAt: "2024-03-09 14:05"}, notes[0])
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	svc, err := platform.Open(path, platform.WithAdapter(platform.AdapterSQLite))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	_, err = svc.Create(context.Background(), "stored", "in sqlite")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpen_UnknownAdapter(t *testing.T) {
	_, err := platform.Open(filepath.Join(t.TempDir(), "x"), platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	svc, err := platform.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Len())
	assert.ErrorIs(t, svc.LoadErr(), core.ErrCorrupt)
}

func TestOpen_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "notes.json")

	svc, err := platform.Open(path, platform.WithReadOnly(true))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "nope", "")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.NoDirExists(t, filepath.Join(dir, "missing"))
}

func TestOpen_MustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.json")

	_, err := platform.Open(path, platform.WithMustExist(true))
	assert.Error(t, err)
}

type stubRepository struct {
	initialized bool
	saved       []core.Note
}

func (s *stubRepository) Initialize(ctx context.Context) error {
	s.initialized = true
	return nil
}

func (s *stubRepository) Load(ctx context.Context) ([]core.Note, error) {
	return []core.Note{{ID: 7, Title: "injected"}}, nil
}

func (s *stubRepository) Save(ctx context.Context, notes []core.Note) error {
	s.saved = notes
	return nil
}

func TestOpen_WithRepository(t *testing.T) {
	stub := &stubRepository{}

	svc, err := platform.Open("ignored", platform.WithRepository(stub))
	require.NoError(t, err)
	assert.True(t, stub.initialized)

	note, err := svc.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "injected", note.Title)

	require.NoError(t, svc.Update(context.Background(), 0, "changed"))
	require.Len(t, stub.saved, 1)
	assert.Equal(t, "changed", stub.saved[0].Content)
}
