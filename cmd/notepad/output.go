package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/aretw0/notepad/pkg/core"
)

const titleColumnWidth = 48

// parseID converts a command argument to a note ID.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid note id %q: must be a non-negative integer", arg)
	}
	return id, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printNotes writes a table with one note per line.
func printNotes(w io.Writer, notes []core.Note) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTITLE")
	for _, n := range notes {
		title := strings.ReplaceAll(n.Title, "\n", " ")
		fmt.Fprintf(tw, "%d\t%s\t%s\n", n.ID, n.CreatedAt, runewidth.Truncate(title, titleColumnWidth, "…"))
	}
	return tw.Flush()
}

// printNote writes a single note as a small header followed by its content.
func printNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "# %s\n", n.Title)
	fmt.Fprintf(w, "id: %d  created: %s\n\n", n.ID, n.CreatedAt)
	fmt.Fprint(w, n.Content)
	if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
		fmt.Fprintln(w)
	}
}

// readContent returns value when the flag was given, otherwise stdin when it
// is piped. An interactive stdin yields "".
func readContent(flagSet bool, value string, stdin *os.File) (string, error) {
	if flagSet {
		return value, nil
	}
	info, err := stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
