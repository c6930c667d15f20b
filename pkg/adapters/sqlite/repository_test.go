package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/core"
)

func openRepo(t *testing.T, cfg sqlite.Config) *sqlite.Repository {
	t.Helper()

	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "notes.db")
	}
	repo := sqlite.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_EmptyDatabase(t *testing.T) {
	repo := openRepo(t, sqlite.Config{})

	notes, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, sqlite.Config{})

	first := []core.Note{
		{ID: 0, Title: "a", Content: "alpha", CreatedAt: "2024-01-01 10:00"},
		{ID: 1, Title: "b", Content: "", CreatedAt: "2024-01-02 11:00"},
		{ID: 2, Title: "c", Content: "gamma", CreatedAt: "2024-01-03 12:00"},
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// A shorter collection replaces the previous rows entirely.
	second := []core.Note{{ID: 0, Title: "c", Content: "gamma", CreatedAt: "2024-01-03 12:00"}}
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestRepository_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "notes.db")

	repo := sqlite.NewRepository(sqlite.Config{Path: path})
	require.NoError(t, repo.Initialize(ctx))
	require.NoError(t, repo.Save(ctx, []core.Note{{Title: "persisted", CreatedAt: "2024-01-01 00:00"}}))
	require.NoError(t, repo.Close())

	reopened := openRepo(t, sqlite.Config{Path: path})
	notes, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "persisted", notes[0].Title)
}

func TestRepository_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "absent.db")

	repo := openRepo(t, sqlite.Config{Path: path, ReadOnly: true})

	notes, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.ErrorIs(t, repo.Save(ctx, nil), core.ErrReadOnly)
	assert.NoFileExists(t, path)
}

func TestRepository_MustExist(t *testing.T) {
	repo := sqlite.NewRepository(sqlite.Config{
		Path:      filepath.Join(t.TempDir(), "absent.db"),
		MustExist: true,
	})
	assert.Error(t, repo.Initialize(context.Background()))
}

func TestRepository_WithService(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, sqlite.Config{})

	svc := core.NewService(repo)
	require.NoError(t, svc.Load(ctx))

	for _, title := range []string{"zero", "one", "two"} {
		_, err := svc.Create(ctx, title, "")
		require.NoError(t, err)
	}
	require.NoError(t, svc.Delete(ctx, 1))

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1, stored[1].ID)
	assert.Equal(t, "two", stored[1].Title)

	state := repo.State().(sqlite.RepositoryState)
	assert.True(t, state.Open)
}
