// Package scan builds the Course → Week → Assignment → Notebook tree of a
// course repository.
package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"

	"github.com/claes/coursereport/internal/model"
	"github.com/claes/coursereport/internal/naming"
	"github.com/claes/coursereport/internal/parser"
)

// ErrInvalidRoot is returned when the scan root is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid root directory")

// Scanner walks a course repository rooted at the top of its filesystem.
type Scanner struct {
	fs        billy.Filesystem
	root      string
	log       *slog.Logger
	descLimit int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used to report recoverable problems.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDescriptionLimit sets how many characters of a notebook description are kept.
func WithDescriptionLimit(n int) Option {
	return func(s *Scanner) { s.descLimit = n }
}

// New returns a Scanner over fsys.
func New(fsys billy.Filesystem, opts ...Option) *Scanner {
	s := &Scanner{
		fs:        fsys,
		log:       slog.Default(),
		descLimit: parser.DefaultDescriptionLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open validates root and returns a Scanner over the directory tree below it.
func Open(root string, opts ...Option) (*Scanner, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRoot, "%s: %v", root, err)
	}
	if !fi.IsDir() {
		return nil, errors.Wrapf(ErrInvalidRoot, "%s: not a directory", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRoot, "%s: %v", root, err)
	}
	s := New(osfs.New(abs), opts...)
	s.root = abs
	return s, nil
}

// Root returns the absolute scan root, or "" for scanners built with New.
func (s *Scanner) Root() string { return s.root }

// Scan builds the catalog. Only a failure to list the root itself is
// returned as an error; per-file problems end up in Catalog.Issues.
func (s *Scanner) Scan() (*model.Catalog, error) {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRoot, "read %s: %v", s.root, err)
	}
	w := &walk{Scanner: s}
	var courses []model.Course
	for _, e := range entries {
		if !e.IsDir() || naming.IsHidden(e.Name()) {
			continue
		}
		m := naming.MatchCourse(e.Name())
		if !m.OK() {
			s.log.Debug("skipping non-course directory", "dir", e.Name())
			continue
		}
		courses = append(courses, w.course(e.Name(), m))
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Number < courses[j].Number
	})
	return &model.Catalog{
		Root:    s.root,
		Courses: courses,
		Totals:  model.Summarize(courses),
		Issues:  w.issues,
	}, nil
}

// walk carries the state of a single Scan call.
type walk struct {
	*Scanner
	issues []model.Issue
}

func (w *walk) course(dir string, m naming.Match) model.Course {
	c := model.Course{Number: m.Number, Title: m.Title, Dir: filepath.ToSlash(dir)}
	entries := w.readDir(dir)

	// Files directly inside the course directory form an implicit week.
	if a, ok := w.assignment(dir, dir, entries); ok {
		c.Weeks = append(c.Weeks, model.Week{Name: dir, Dir: c.Dir, Assignments: []model.Assignment{a}})
	}
	for _, e := range entries {
		if !e.IsDir() || naming.IsHidden(e.Name()) {
			continue
		}
		p := w.fs.Join(dir, e.Name())
		week := model.Week{Name: e.Name(), Dir: filepath.ToSlash(p)}
		wm := naming.MatchWeek(e.Name())
		if wm.OK() {
			week.Number, week.Numbered = wm.Number, true
		}
		week.Assignments = w.assignments(p, e.Name())
		if !week.Numbered && len(week.Assignments) == 0 {
			w.log.Debug("skipping directory without assignments", "dir", p)
			continue
		}
		c.Weeks = append(c.Weeks, week)
	}
	// Numbered weeks in order, fallback weeks after them in traversal order.
	sort.SliceStable(c.Weeks, func(i, j int) bool {
		a, b := c.Weeks[i], c.Weeks[j]
		if a.Numbered != b.Numbered {
			return a.Numbered
		}
		return a.Numbered && a.Number < b.Number
	})
	return c
}

// assignments returns one assignment per subdirectory of dir, preceded by one
// named after dir itself when notebooks or scripts lie directly in it.
func (w *walk) assignments(dir, name string) []model.Assignment {
	entries := w.readDir(dir)
	var out []model.Assignment
	if a, ok := w.assignment(dir, name, entries); ok {
		out = append(out, a)
	}
	for _, e := range entries {
		if !e.IsDir() || naming.IsHidden(e.Name()) {
			continue
		}
		p := w.fs.Join(dir, e.Name())
		if a, ok := w.assignment(p, e.Name(), w.readDir(p)); ok {
			out = append(out, a)
		}
	}
	return out
}

// assignment classifies the files of one directory. ok is false when the
// directory has neither notebooks nor scripts.
func (w *walk) assignment(dir, name string, entries []os.FileInfo) (model.Assignment, bool) {
	a := model.Assignment{Name: name, Dir: filepath.ToSlash(dir)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		switch {
		case naming.IsNotebook(n):
			a.Notebooks = append(a.Notebooks, w.notebook(w.fs.Join(dir, n)))
		case naming.IsTestFile(n):
			a.TestFiles = append(a.TestFiles, n)
			a.HasTests = true
		case naming.IsScript(n):
			a.Scripts = append(a.Scripts, n)
		}
	}
	ok := len(a.Notebooks) > 0 || len(a.Scripts) > 0 || len(a.TestFiles) > 0
	return a, ok
}

func (w *walk) notebook(p string) model.Notebook {
	nb := model.Notebook{Path: filepath.ToSlash(p), Filename: filepath.Base(p)}
	data, err := util.ReadFile(w.fs, p)
	if err != nil {
		nb.Err = w.issue(p, errors.Wrap(err, "read notebook"))
		return nb
	}
	meta, err := parser.ParseNotebook(data, w.descLimit)
	if err != nil {
		nb.Err = w.issue(p, err)
		return nb
	}
	nb.Title = meta.Title
	nb.Description = meta.Description
	nb.CellCount = meta.Cells
	nb.CodeCells = meta.CodeCells
	nb.MarkdownCells = meta.MarkdownCells
	return nb
}

func (w *walk) readDir(dir string) []os.FileInfo {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.issue(dir, errors.Wrap(err, "read directory"))
		return nil
	}
	return entries
}

func (w *walk) issue(p string, err error) string {
	msg := err.Error()
	w.log.Warn("scan problem, continuing", "path", p, "err", msg)
	w.issues = append(w.issues, model.Issue{Path: filepath.ToSlash(p), Message: msg})
	return msg
}
