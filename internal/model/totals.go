package model

// Summarize computes the aggregate counts of courses.
func Summarize(courses []Course) Totals {
	t := Totals{Courses: len(courses)}
	for _, c := range courses {
		ct := c.Totals()
		t.Weeks += ct.Weeks
		t.Assignments += ct.Assignments
		t.Notebooks += ct.Notebooks
		t.Scripts += ct.Scripts
		t.Cells += ct.Cells
		t.TestedAssignments += ct.TestedAssignments
	}
	return t
}

// Totals returns the counts for a single course. Courses is always 1.
func (c Course) Totals() Totals {
	t := Totals{Courses: 1, Weeks: len(c.Weeks)}
	for _, w := range c.Weeks {
		t.Assignments += len(w.Assignments)
		for _, a := range w.Assignments {
			t.Notebooks += len(a.Notebooks)
			t.Scripts += len(a.Scripts)
			if a.HasTests {
				t.TestedAssignments++
			}
			for _, nb := range a.Notebooks {
				t.Cells += nb.CellCount
			}
		}
	}
	return t
}
