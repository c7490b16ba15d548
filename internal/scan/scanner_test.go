package scan

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claes/coursereport/internal/model"
)

func intro(title, body string) string {
	return `{"cells":[{"cell_type":"markdown","source":"# ` + title + `\n` + body + `"},{"cell_type":"code","source":"x = 1"}]}`
}

func write(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestScan_NoCourses(t *testing.T) {
	fs := memfs.New()
	write(t, fs, ".git/HEAD", "ref: refs/heads/main")
	write(t, fs, "Resources/Week 1/a/a.ipynb", intro("A", "a"))
	write(t, fs, "README.md", "# readme")

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	assert.Empty(t, cat.Courses)
	assert.Equal(t, model.Totals{}, cat.Totals)
	assert.Empty(t, cat.Issues)
}

func TestScan_EmptyRootOnDisk(t *testing.T) {
	s, err := Open(t.TempDir(), quiet())
	require.NoError(t, err)
	cat, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, cat.Courses)
	assert.Equal(t, model.Totals{}, cat.Totals)
}

func TestScan_SingleNotebook(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 1: Neural Networks/Week 1/Python Basics/Basics.ipynb", intro("Intro", "This is a test."))

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	require.Len(t, cat.Courses, 1)
	c := cat.Courses[0]
	assert.Equal(t, 1, c.Number)
	assert.Equal(t, "Neural Networks", c.Title)
	require.Len(t, c.Weeks, 1)
	assert.True(t, c.Weeks[0].Numbered)
	assert.Equal(t, 1, c.Weeks[0].Number)
	require.Len(t, c.Weeks[0].Assignments, 1)
	a := c.Weeks[0].Assignments[0]
	assert.Equal(t, "Python Basics", a.Name)
	assert.False(t, a.HasTests)
	require.Len(t, a.Notebooks, 1)
	nb := a.Notebooks[0]
	assert.Equal(t, "Intro", nb.Title)
	assert.Equal(t, "This is a test.", nb.Description)
	assert.Equal(t, 2, nb.CellCount)
	assert.Equal(t, "Basics.ipynb", nb.Filename)
	assert.Equal(t, "Course 1: Neural Networks/Week 1/Python Basics/Basics.ipynb", nb.Path)

	assert.Equal(t, model.Totals{Courses: 1, Weeks: 1, Assignments: 1, Notebooks: 1, Cells: 2}, cat.Totals)
}

func TestScan_TestFilesAndScripts(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 1: NN/Week 2/Logistic/Logistic.ipynb", intro("L", "l"))
	write(t, fs, "Course 1: NN/Week 2/Logistic/public_tests.py", "")
	write(t, fs, "Course 1: NN/Week 2/Logistic/lr_utils.py", "")
	write(t, fs, "Course 1: NN/Week 2/Plain/Plain.ipynb", intro("P", "p"))
	write(t, fs, "Course 1: NN/Week 2/Plain/utils.py", "")
	write(t, fs, "Course 1: NN/Week 2/Empty/data.h5", "")

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	as := cat.Courses[0].Weeks[0].Assignments
	require.Len(t, as, 2)

	assert.Equal(t, "Logistic", as[0].Name)
	assert.True(t, as[0].HasTests)
	assert.Equal(t, []string{"public_tests.py"}, as[0].TestFiles)
	assert.Equal(t, []string{"lr_utils.py"}, as[0].Scripts)

	assert.Equal(t, "Plain", as[1].Name)
	assert.False(t, as[1].HasTests)
	assert.Equal(t, []string{"utils.py"}, as[1].Scripts)

	assert.Equal(t, 1, cat.Totals.TestedAssignments)
	assert.Equal(t, 2, cat.Totals.Scripts)
}

func TestScan_Ordering(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 10: Extras/Week 1/a/a.ipynb", intro("A", "a"))
	write(t, fs, "Course 2: Improving/Week 10/b/b.ipynb", intro("B", "b"))
	write(t, fs, "Course 2: Improving/Week 2/c/c.ipynb", intro("C", "c"))
	write(t, fs, "Course 2: Improving/Labs/d/d.ipynb", intro("D", "d"))
	write(t, fs, "Course 1: NN/Week 1/z/z.ipynb", intro("Z", "z"))
	write(t, fs, "Course 1: NN/Week 1/m/m.ipynb", intro("M", "m"))

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	var numbers []int
	for _, c := range cat.Courses {
		numbers = append(numbers, c.Number)
	}
	assert.Equal(t, []int{1, 2, 10}, numbers)

	var names []string
	for _, w := range cat.Courses[1].Weeks {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"Week 2", "Week 10", "Labs"}, names)
	assert.False(t, cat.Courses[1].Weeks[2].Numbered)

	as := cat.Courses[0].Weeks[0].Assignments
	require.Len(t, as, 2)
	assert.Equal(t, "m", as[0].Name)
	assert.Equal(t, "z", as[1].Name)
}

func TestScan_FallbackWeeks(t *testing.T) {
	fs := memfs.New()
	// Partial matches are not guessed into numbered weeks.
	write(t, fs, "Course 3: Structuring/week 1/Quiz/quiz.ipynb", intro("Q", "q"))
	// Notebooks lying directly in a non-week directory.
	write(t, fs, "Course 3: Structuring/Case Study/study.ipynb", intro("S", "s"))
	// Notebooks lying directly in the course directory.
	write(t, fs, "Course 3: Structuring/overview.ipynb", intro("O", "o"))
	// Directories without assignment content are dropped.
	write(t, fs, "Course 3: Structuring/images/diagram.png", "")
	write(t, fs, "Course 3: Structuring/.ipynb_checkpoints/x-checkpoint.ipynb", intro("X", "x"))

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	weeks := cat.Courses[0].Weeks
	require.Len(t, weeks, 3)
	for _, w := range weeks {
		assert.False(t, w.Numbered, w.Name)
	}
	assert.Equal(t, "Course 3: Structuring", weeks[0].Name)
	assert.Equal(t, "overview.ipynb", weeks[0].Assignments[0].Notebooks[0].Filename)
	assert.Equal(t, "Case Study", weeks[1].Name)
	require.Len(t, weeks[1].Assignments, 1)
	assert.Equal(t, "Case Study", weeks[1].Assignments[0].Name)
	assert.Equal(t, "week 1", weeks[2].Name)
	assert.Equal(t, "Quiz", weeks[2].Assignments[0].Name)
	assert.Equal(t, 3, cat.Totals.Notebooks)
}

func TestScan_MalformedNotebookDoesNotAbort(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 1: NN/Week 1/a/good.ipynb", intro("Good", "fine"))
	write(t, fs, "Course 1: NN/Week 1/a/broken.ipynb", `{"cells": [{"cell_type": "mark`)
	write(t, fs, "Course 1: NN/Week 1/b/plain.ipynb", "not a notebook at all")

	var logs bytes.Buffer
	cat, err := New(fs, WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))).Scan()
	require.NoError(t, err)

	a := cat.Courses[0].Weeks[0].Assignments
	require.Len(t, a, 2)
	require.Len(t, a[0].Notebooks, 2)
	broken := a[0].Notebooks[0]
	assert.Equal(t, "broken.ipynb", broken.Filename)
	assert.Empty(t, broken.Title)
	assert.Empty(t, broken.Description)
	assert.Zero(t, broken.CellCount)
	assert.NotEmpty(t, broken.Err)
	assert.Equal(t, "Good", a[0].Notebooks[1].Title)
	assert.Zero(t, a[1].Notebooks[0].CellCount)

	require.Len(t, cat.Issues, 2)
	assert.Equal(t, "Course 1: NN/Week 1/a/broken.ipynb", cat.Issues[0].Path)
	assert.Contains(t, logs.String(), "broken.ipynb")
	assert.Equal(t, 3, cat.Totals.Notebooks)
}

func TestScan_NotebookTotalMatchesTree(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 1: A/Week 1/x/1.ipynb", intro("1", "1"))
	write(t, fs, "Course 1: A/Week 1/x/2.ipynb", intro("2", "2"))
	write(t, fs, "Course 1: A/Week 2/y/3.ipynb", intro("3", "3"))
	write(t, fs, "Course 2: B/Week 1/z/4.ipynb", intro("4", "4"))
	write(t, fs, "Course 2: B/Week 1/z/run.py", "")

	cat, err := New(fs, quiet()).Scan()
	require.NoError(t, err)
	sum := 0
	for _, c := range cat.Courses {
		for _, w := range c.Weeks {
			for _, a := range w.Assignments {
				sum += len(a.Notebooks)
			}
		}
	}
	assert.Equal(t, 4, sum)
	assert.Equal(t, sum, cat.Totals.Notebooks)
}

func TestScan_Deterministic(t *testing.T) {
	fs := memfs.New()
	write(t, fs, "Course 1: A/Week 1/x/1.ipynb", intro("1", "1"))
	write(t, fs, "Course 1: A/Extra/2.ipynb", intro("2", "2"))

	s := New(fs, quiet())
	first, err := s.Scan()
	require.NoError(t, err)
	second, err := s.Scan()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOpen_InvalidRoot(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRoot))

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Open(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}

func TestOpen_ScansDisk(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "Course 1: NN", "Week 1", "Intro", "intro.ipynb")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(intro("Intro", "This is a test.")), 0o644))

	s, err := Open(root, quiet())
	require.NoError(t, err)
	cat, err := s.Scan()
	require.NoError(t, err)
	assert.Equal(t, s.Root(), cat.Root)
	require.Equal(t, 1, cat.Totals.Notebooks)
	assert.Equal(t, "Intro", cat.Courses[0].Weeks[0].Assignments[0].Notebooks[0].Title)
}
