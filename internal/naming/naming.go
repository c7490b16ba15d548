// Package naming classifies directory and file names of a course repository.
//
// Directory conventions are matched strictly. A name that only resembles a
// convention (different casing, doubled or trailing blanks) is Unmatched and
// no ordinal is guessed for it; callers decide what an Unmatched name means.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Kind tells whether a name followed a convention.
type Kind int

const (
	Unmatched Kind = iota
	Matched
)

// Match is the result of classifying a directory name.
type Match struct {
	Kind   Kind
	Number int
	Title  string // course title or week label, if any
}

// OK reports whether the name matched.
func (m Match) OK() bool { return m.Kind == Matched }

var (
	courseRe = regexp.MustCompile(`^Course ([0-9]+): (\S(?:.*\S)?)$`)
	weekRe   = regexp.MustCompile(`^Week ([0-9]+)(?:[:\-]? +(\S(?:.*\S)?))?$`)
)

// MatchCourse matches "Course <n>: <title>".
func MatchCourse(name string) Match {
	m := courseRe.FindStringSubmatch(name)
	if m == nil {
		return Match{}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Match{}
	}
	return Match{Kind: Matched, Number: n, Title: m[2]}
}

// MatchWeek matches "Week <n>", optionally followed by a label such as
// "Week 2 - Optimization" or "Week 3: Tuning".
func MatchWeek(name string) Match {
	m := weekRe.FindStringSubmatch(name)
	if m == nil {
		return Match{}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Match{}
	}
	return Match{Kind: Matched, Number: n, Title: strings.TrimLeft(m[2], "-: ")}
}

// IsHidden reports dot-prefixed names like .git or .ipynb_checkpoints.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsNotebook reports whether name is a visible .ipynb file.
func IsNotebook(name string) bool {
	return !IsHidden(name) && strings.EqualFold(filepath.Ext(name), ".ipynb")
}

// IsScript reports whether name is a visible .py file.
func IsScript(name string) bool {
	return !IsHidden(name) && strings.EqualFold(filepath.Ext(name), ".py")
}

// IsTestFile reports whether a script name signals a test helper, e.g.
// public_tests.py, test_utils.py or testCases_v4.py.
func IsTestFile(name string) bool {
	if !IsScript(name) {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	tokens := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "test") {
			return true
		}
	}
	return false
}
