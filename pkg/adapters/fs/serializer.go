package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/notepad/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how a whole note collection is written to and read from bytes.
type Serializer interface {
	// Format returns a short name for the encoding (e.g. "json").
	Format() string
	// Encode converts the collection to bytes.
	Encode(notes []core.Note) ([]byte, error)
	// Decode parses bytes produced by Encode (or written by hand).
	Decode(data []byte) ([]core.Note, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer for path by its extension.
// Unknown or missing extensions fall back to JSON.
func SerializerFor(path string) Serializer {
	if s, ok := DefaultSerializers()[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return NewJSONSerializer()
}

// --- JSON Serializer ---

// JSONSerializer writes the collection as a pretty-printed JSON array.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Format() string { return "json" }

func (s *JSONSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return json.MarshalIndent(notes, "", "  ")
}

func (s *JSONSerializer) Decode(data []byte) ([]core.Note, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return toNotes(records)
}

// --- YAML Serializer ---

// YAMLSerializer writes the collection as a YAML sequence.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Format() string { return "yaml" }

func (s *YAMLSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *YAMLSerializer) Decode(data []byte) ([]core.Note, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return toNotes(records)
}

// record is the stored shape of a note. Every field must be present.
type record struct {
	ID        *int    `json:"id" yaml:"id"`
	Title     *string `json:"title" yaml:"title"`
	Content   *string `json:"content" yaml:"content"`
	CreatedAt *string `json:"created_at" yaml:"created_at"`
}

func toNotes(records []record) ([]core.Note, error) {
	if len(records) == 0 {
		return nil, nil
	}

	notes := make([]core.Note, 0, len(records))
	for i, rec := range records {
		var missing []string
		if rec.ID == nil {
			missing = append(missing, "id")
		}
		if rec.Title == nil {
			missing = append(missing, "title")
		}
		if rec.Content == nil {
			missing = append(missing, "content")
		}
		if rec.CreatedAt == nil {
			missing = append(missing, "created_at")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: record %d is missing %s", core.ErrCorrupt, i, strings.Join(missing, ", "))
		}

		notes = append(notes, core.Note{
			ID:        *rec.ID,
			Title:     *rec.Title,
			Content:   *rec.Content,
			CreatedAt: *rec.CreatedAt,
		})
	}
	return notes, nil
}

// --- Markdown (single note) ---

// frontMatter is the YAML header of a Markdown note.
type frontMatter struct {
	Title     string `yaml:"title,omitempty"`
	CreatedAt string `yaml:"created_at,omitempty"`
}

// MarshalMarkdown renders one note as Markdown with a YAML front matter
// holding its title and creation time.
func MarshalMarkdown(n core.Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontMatter{Title: n.Title, CreatedAt: n.CreatedAt}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// ParseMarkdown reads a note written by MarshalMarkdown.
// Files without front matter are accepted: the whole text becomes the content
// and the title is left empty for the caller to fill in.
func ParseMarkdown(data []byte) (core.Note, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return core.Note{Content: text}, nil
	}

	rest := text[len("---\n"):]
	var header, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		body = rest[len("---\n"):]
	default:
		end := strings.Index(rest, "\n---\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n---") {
				return core.Note{}, errors.New("frontmatter started but no closing delimiter found")
			}
			end = len(rest) - len("\n---")
			header = rest[:end]
		} else {
			header = rest[:end]
			body = rest[end+len("\n---\n"):]
		}
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return core.Note{Title: fm.Title, CreatedAt: fm.CreatedAt, Content: body}, nil
}
