package parser

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotNotebook is returned for content that is not a notebook document.
var ErrNotNotebook = errors.New("not a notebook")

// DefaultDescriptionLimit is the number of characters kept in a description.
const DefaultDescriptionLimit = 200

// NotebookMeta is the metadata extracted from a notebook document.
type NotebookMeta struct {
	Title         string
	Description   string
	Cells         int
	CodeCells     int
	MarkdownCells int
}

type notebook struct {
	Cells *[]cell `json:"cells"`
}

type cell struct {
	CellType string `json:"cell_type"`
	Source   source `json:"source"`
}

// source accepts both encodings used by nbformat: one string or a list of lines.
type source string

func (s *source) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = source(one)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		return err
	}
	*s = source(strings.Join(lines, ""))
	return nil
}

// ParseNotebook extracts title, description and cell counts from a notebook.
// The title is the heading line opening the first non-blank markdown cell and
// the description the first block of text that follows it, cut to limit
// characters (limit <= 0 keeps it whole).
func ParseNotebook(data []byte, limit int) (NotebookMeta, error) {
	var meta NotebookMeta
	var nb notebook
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&nb); err != nil {
		return meta, errors.Wrapf(ErrNotNotebook, "decode: %v", err)
	}
	if nb.Cells == nil {
		return meta, errors.Wrap(ErrNotNotebook, "missing cells")
	}
	cells := *nb.Cells

	var markdown []string
	for _, c := range cells {
		switch c.CellType {
		case "code":
			meta.CodeCells++
		case "markdown":
			meta.MarkdownCells++
			markdown = append(markdown, string(c.Source))
		}
	}
	meta.Cells = len(cells)

	for i, src := range markdown {
		if strings.TrimSpace(src) == "" {
			continue
		}
		title, rest, found := splitHeading(src)
		meta.Title = title
		desc := firstBlock(rest)
		if desc == "" && found && i+1 < len(markdown) {
			desc = firstBlock(markdown[i+1])
		}
		meta.Description = truncate(desc, limit)
		break
	}
	return meta, nil
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimRight(string(r[:limit]), " ") + "..."
}
