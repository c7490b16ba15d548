package model

// Notebook represents a single notebook file with the metadata extracted from it.
type Notebook struct {
	Path          string // relative to the scan root
	Filename      string
	Title         string
	Description   string
	CellCount     int
	CodeCells     int
	MarkdownCells int
	Err           string // non-empty when metadata could not be extracted
}

// Assignment represents one assignment directory within a week.
type Assignment struct {
	Name      string
	Dir       string
	Notebooks []Notebook
	Scripts   []string // script filenames, test files excluded
	TestFiles []string
	HasTests  bool
}

// Week groups the assignments of one week directory. Numbered is false for
// fallback weeks, i.e. directories that do not follow the "Week N" convention.
type Week struct {
	Number      int
	Numbered    bool
	Name        string
	Dir         string
	Assignments []Assignment
}

// Course represents a top-level "Course N: Title" directory.
type Course struct {
	Number int
	Title  string
	Dir    string
	Weeks  []Week
}

// Issue records a recoverable problem found while scanning.
type Issue struct {
	Path    string
	Message string
}

// Totals holds the aggregate counts over a set of courses.
type Totals struct {
	Courses           int
	Weeks             int
	Assignments       int
	Notebooks         int
	Scripts           int
	Cells             int
	TestedAssignments int
}

// Catalog is the result of one scan.
type Catalog struct {
	Root    string
	Courses []Course
	Totals  Totals
	Issues  []Issue
}
