package core_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test the fallback.
type MockRepository struct {
	stored  []core.Note
	saves   int
	loadErr error
	saveErr error
	onLoad  func()
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func (m *MockRepository) Load(ctx context.Context) ([]core.Note, error) {
	if m.onLoad != nil {
		m.onLoad()
	}
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]core.Note(nil), m.stored...), nil
}

func (m *MockRepository) Save(ctx context.Context, notes []core.Note) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.stored = append([]core.Note(nil), notes...)
	return nil
}

var fixedNow = time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)

func newService(t *testing.T, repo *MockRepository) *core.Service {
	t.Helper()
	svc := core.NewService(repo, core.WithClock(func() time.Time { return fixedNow }))
	if err := svc.Load(context.TODO()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return svc
}

func seed(titles ...string) *MockRepository {
	repo := &MockRepository{}
	for i, title := range titles {
		repo.stored = append(repo.stored, core.Note{
			ID:        i,
			Title:     title,
			Content:   "content of " + title,
			CreatedAt: "2024-01-0" + string(rune('1'+i)) + " 09:00",
		})
	}
	return repo
}

func ids(notes []core.Note) []int {
	out := make([]int, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestService_Create(t *testing.T) {
	repo := &MockRepository{}
	svc := newService(t, repo)
	ctx := context.TODO()

	id, err := svc.Create(ctx, "A", "x")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != 0 {
		t.Errorf("expected id 0, got %d", id)
	}

	want := []core.Note{{ID: 0, Title: "A", Content: "x", CreatedAt: "2024-03-09 14:05"}}
	if !reflect.DeepEqual(svc.Notes(), want) {
		t.Errorf("unexpected notes: %+v", svc.Notes())
	}
	if !reflect.DeepEqual(repo.stored, want) {
		t.Errorf("persisted notes mismatch: %+v", repo.stored)
	}

	selected, ok := svc.Selected()
	if !ok || selected.ID != 0 {
		t.Errorf("expected new note to be selected, got %+v (ok=%v)", selected, ok)
	}
}

func TestService_Create_EmptyTitle(t *testing.T) {
	repo := seed("first")
	svc := newService(t, repo)

	_, err := svc.Create(context.TODO(), "", "x")
	if !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if svc.Len() != 1 {
		t.Errorf("expected store unchanged, got %d notes", svc.Len())
	}
	if repo.saves != 0 {
		t.Errorf("expected no save, got %d", repo.saves)
	}
}

func TestService_Delete_Renumbers(t *testing.T) {
	repo := seed("zero", "one", "two")
	svc := newService(t, repo)

	if err := svc.Delete(context.TODO(), 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	notes := svc.Notes()
	if got := ids(notes); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("expected ids [0 1], got %v", got)
	}
	if notes[0].Title != "zero" || notes[1].Title != "two" {
		t.Errorf("order not preserved: %+v", notes)
	}
	if notes[1].Content != "content of two" || notes[1].CreatedAt != "2024-01-03 09:00" {
		t.Errorf("fields changed on renumber: %+v", notes[1])
	}
	if got := ids(repo.stored); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("persisted ids %v", got)
	}
}

func TestService_Delete_Selection(t *testing.T) {
	t.Run("clears selection of deleted note", func(t *testing.T) {
		svc := newService(t, seed("a", "b", "c"))
		svc.Select(1)

		if err := svc.Delete(context.TODO(), 1); err != nil {
			t.Fatal(err)
		}
		if _, ok := svc.Selected(); ok {
			t.Error("expected selection to be cleared")
		}
	})

	t.Run("follows a later note", func(t *testing.T) {
		svc := newService(t, seed("a", "b", "c"))
		svc.Select(2)

		if err := svc.Delete(context.TODO(), 0); err != nil {
			t.Fatal(err)
		}
		selected, ok := svc.Selected()
		if !ok || selected.Title != "c" || selected.ID != 1 {
			t.Errorf("expected selection to follow 'c' to id 1, got %+v (ok=%v)", selected, ok)
		}
	})

	t.Run("keeps an earlier note", func(t *testing.T) {
		svc := newService(t, seed("a", "b", "c"))
		svc.Select(0)

		if err := svc.Delete(context.TODO(), 2); err != nil {
			t.Fatal(err)
		}
		selected, ok := svc.Selected()
		if !ok || selected.Title != "a" {
			t.Errorf("expected 'a' to stay selected, got %+v", selected)
		}
	})
}

func TestService_Delete_Unknown(t *testing.T) {
	repo := seed("a")
	svc := newService(t, repo)

	err := svc.Delete(context.TODO(), 7)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if svc.Len() != 1 || repo.saves != 0 {
		t.Errorf("expected no-op, got len=%d saves=%d", svc.Len(), repo.saves)
	}
}

func TestService_Update(t *testing.T) {
	repo := seed("a", "b")
	svc := newService(t, repo)
	before, _ := svc.Get(1)

	if err := svc.Update(context.TODO(), 1, "new content"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after, err := svc.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if after.Content != "new content" {
		t.Errorf("content not updated: %q", after.Content)
	}
	if after.Title != before.Title || after.CreatedAt != before.CreatedAt {
		t.Errorf("immutable fields changed: before=%+v after=%+v", before, after)
	}
	if repo.stored[1].Content != "new content" {
		t.Errorf("update not persisted")
	}

	saves := repo.saves
	if err := svc.Update(context.TODO(), 42, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if repo.saves != saves {
		t.Error("updating an unknown id must not save")
	}
}

func TestService_Filter(t *testing.T) {
	repo := &MockRepository{stored: []core.Note{
		{ID: 0, Title: "Hello world"},
		{ID: 1, Title: "other", Content: "nothing here"},
		{ID: 2, Title: "third", Content: "say HELLO"},
	}}
	svc := newService(t, repo)

	tests := []struct {
		query string
		want  []int
	}{
		{"hello", []int{0, 2}},
		{"HeLLo", []int{0, 2}},
		{"", []int{0, 1, 2}},
		{"nothing", []int{1}},
		{"absent", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ids(svc.Filter(tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestService_Load_Failures(t *testing.T) {
	repo := &MockRepository{loadErr: core.ErrCorrupt}
	svc := core.NewService(repo)

	err := svc.Load(context.TODO())
	if !errors.Is(err, core.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if svc.Len() != 0 {
		t.Errorf("expected empty collection, got %d", svc.Len())
	}
	if !errors.Is(svc.LoadErr(), core.ErrCorrupt) {
		t.Errorf("LoadErr should keep the failure")
	}

	// The service stays usable.
	repo.loadErr = nil
	if _, err := svc.Create(context.TODO(), "fresh", ""); err != nil {
		t.Fatalf("Create after failed load: %v", err)
	}
}

func TestService_Load_Renumbers(t *testing.T) {
	repo := &MockRepository{stored: []core.Note{{ID: 5, Title: "a"}, {ID: 9, Title: "b"}}}
	svc := newService(t, repo)

	if got := ids(svc.Notes()); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("expected positional ids, got %v", got)
	}
}

func TestService_SaveFailure(t *testing.T) {
	repo := &MockRepository{saveErr: errors.New("disk full")}
	svc := newService(t, repo)

	_, err := svc.Create(context.TODO(), "A", "x")
	if !errors.Is(err, core.ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if svc.Len() != 1 {
		t.Errorf("in-memory state should keep the note, got %d", svc.Len())
	}
}

func TestService_ReadOnly(t *testing.T) {
	repo := seed("a")
	svc := core.NewService(repo, core.WithServiceReadOnly(true))
	if err := svc.Load(context.TODO()); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Create(context.TODO(), "b", ""); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Create: expected ErrReadOnly, got %v", err)
	}
	if err := svc.Update(context.TODO(), 0, "x"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Update: expected ErrReadOnly, got %v", err)
	}
	if err := svc.Delete(context.TODO(), 0); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Delete: expected ErrReadOnly, got %v", err)
	}
	if repo.saves != 0 || svc.Len() != 1 {
		t.Errorf("read-only service mutated: saves=%d len=%d", repo.saves, svc.Len())
	}
}

func TestService_Import(t *testing.T) {
	repo := seed("existing")
	svc := newService(t, repo)

	added, err := svc.Import(context.TODO(), []core.Note{
		{ID: 40, Title: "kept", Content: "c", CreatedAt: "2020-01-01 00:00"},
		{Title: ""},
		{Title: "stamped"},
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if repo.saves != 1 {
		t.Errorf("expected a single save, got %d", repo.saves)
	}

	notes := svc.Notes()
	if got := ids(notes); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("unexpected ids %v", got)
	}
	if notes[1].CreatedAt != "2020-01-01 00:00" {
		t.Errorf("CreatedAt should be preserved, got %q", notes[1].CreatedAt)
	}
	if notes[2].CreatedAt != "2024-03-09 14:05" {
		t.Errorf("missing CreatedAt should be stamped, got %q", notes[2].CreatedAt)
	}
}

func TestService_Reload_KeepsSelection(t *testing.T) {
	repo := seed("a", "b")
	svc := newService(t, repo)
	svc.Select(1)

	repo.stored = append(repo.stored, core.Note{Title: "c"})
	if err := svc.Reload(context.TODO()); err != nil {
		t.Fatal(err)
	}
	if selected, ok := svc.Selected(); !ok || selected.ID != 1 {
		t.Errorf("selection lost on reload: %+v", selected)
	}

	repo.stored = repo.stored[:1]
	if err := svc.Reload(context.TODO()); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.Selected(); ok {
		t.Error("out-of-range selection should be cleared")
	}
}

func TestService_Reload_KeepsConcurrentSelection(t *testing.T) {
	repo := seed("a", "b", "c")
	svc := newService(t, repo)
	svc.Select(2)

	// Another goroutine moves the selection while the repository is being read.
	repo.onLoad = func() { svc.Select(0) }
	if err := svc.Reload(context.TODO()); err != nil {
		t.Fatal(err)
	}

	selected, ok := svc.Selected()
	if !ok || selected.ID != 0 {
		t.Errorf("expected selection 0 after reload, got %+v (ok=%v)", selected, ok)
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc := core.NewService(&MockRepository{})

	_, err := svc.Watch(context.TODO())
	if !errors.Is(err, core.ErrWatchUnsupported) {
		t.Errorf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestService_State(t *testing.T) {
	svc := newService(t, seed("a", "b"))
	svc.Select(1)

	state, ok := svc.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", svc.State())
	}
	if state.Notes != 2 || state.Selected == nil || *state.Selected != 1 {
		t.Errorf("unexpected state: %+v", state)
	}
	if svc.ComponentType() != "service" {
		t.Errorf("unexpected component type %q", svc.ComponentType())
	}
}
