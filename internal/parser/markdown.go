package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New()

func parseMarkdown(src []byte) ast.Node {
	return md.Parser().Parse(text.NewReader(src))
}

// splitHeading splits a markdown cell into its title line and the remaining
// source. The title is the first non-empty line when it starts with '#'
// (any number, with or without a following space, indentation ignored) or
// when it is underlined with '=' or '-'. found is false when the cell does
// not open with a heading; rest is then the whole cell.
func splitHeading(src string) (title, rest string, found bool) {
	lines := strings.Split(strings.TrimSpace(src), "\n")
	first := strings.TrimSpace(lines[0])
	if strings.HasPrefix(first, "#") {
		return inlineText(strings.TrimSpace(strings.TrimLeft(first, "#"))), strings.Join(lines[1:], "\n"), true
	}
	if len(lines) > 1 && isUnderline(strings.TrimSpace(lines[1])) {
		return inlineText(first), strings.Join(lines[2:], "\n"), true
	}
	return "", src, false
}

func isUnderline(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "=") == "" || strings.Trim(s, "-") == ""
}

// inlineText renders a single line of markdown as plain text. A line that
// goldmark reads as anything but a paragraph ("2. Outline", "> note") keeps
// its markers and only has escapes resolved.
func inlineText(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	doc := parseMarkdown(b)
	if p, ok := doc.FirstChild().(*ast.Paragraph); ok && p.NextSibling() == nil {
		if t := plainText(p, b); t != "" {
			return t
		}
	}
	return strings.Join(strings.Fields(string(resolve(b))), " ")
}

// firstBlock returns the text of the first top-level block in src that has
// any. Lists and block quotes are flattened.
func firstBlock(src string) string {
	b := []byte(src)
	doc := parseMarkdown(b)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if s := plainText(n, b); s != "" {
			return s
		}
	}
	return ""
}

// plainText flattens the content of n, resolving escapes and entity
// references and collapsing whitespace.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeLines := func(lines *text.Segments) {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
			b.WriteByte(' ')
		}
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c.Type() == ast.TypeBlock {
			b.WriteByte(' ')
		}
		switch t := c.(type) {
		case *ast.Text:
			v := t.Segment.Value(src)
			if !t.IsRaw() {
				v = resolve(v)
			}
			b.Write(v)
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			for i := 0; i < t.Segments.Len(); i++ {
				seg := t.Segments.At(i)
				b.Write(seg.Value(src))
			}
		case *ast.AutoLink:
			b.Write(t.Label(src))
		case *ast.HTMLBlock, *ast.CodeBlock, *ast.FencedCodeBlock:
			writeLines(c.Lines())
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func resolve(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
