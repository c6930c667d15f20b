// Package notepad is the Composition Root for the notepad application.
//
// It connects the note store (pkg/core) with its storage adapters
// (pkg/adapters/fs, pkg/adapters/sqlite) using functional options.
//
// Model:
//
// Notes live in one ordered collection that is loaded whole at startup and
// written back whole after every change. A note's ID is its position in the
// collection: deleting a note renumbers every note after it.
//
// Features:
//
//   - **Single backing file**: ~/.note_app_data.json by default, pretty-printed JSON; .yaml/.yml paths use YAML.
//   - **Atomic writes**: temp file + rename, never a half-written file.
//   - **Never fails to start**: a missing file is an empty store; an unreadable one is reported through Service.LoadErr.
//   - **Live reload**: the fs adapter watches the backing file for changes made by other programs.
//   - **SQLite adapter**: the same whole-collection semantics in a single table.
//
// Usage:
//
//	svc, err := notepad.Open("", notepad.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	id, err := svc.Create(ctx, "Groceries", "milk, eggs")
//	matches := svc.Filter("milk")
package notepad
