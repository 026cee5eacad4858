package aggregate

import (
	"strings"

	"course-feedback/internal/models"
)

// All is the selector value meaning "no filter".
const All = "all"

// Filter narrows the feedback list. Empty or "all" fields match everything.
type Filter struct {
	Search     string `query:"search" form:"search"`
	Subject    string `query:"subject" form:"subject"`
	Faculty    string `query:"faculty" form:"faculty"`
	Department string `query:"department" form:"department"`
}

// Match reports whether f passes every active predicate.
func (flt Filter) Match(f *models.Feedback) bool {
	return flt.matchesSearch(f) &&
		selected(flt.Subject, f.Subject) &&
		selected(flt.Faculty, f.FacultyName) &&
		selected(flt.Department, f.Department)
}

// search is a case-insensitive substring match on name, roll number or comments
func (flt Filter) matchesSearch(f *models.Feedback) bool {
	if flt.Search == "" {
		return true
	}
	term := strings.ToLower(flt.Search)
	for _, field := range []*string{f.Name, f.RollNumber, f.Comments} {
		if field != nil && strings.Contains(strings.ToLower(*field), term) {
			return true
		}
	}
	return false
}

func selected(want, got string) bool {
	return want == "" || want == All || want == got
}

// ListResult is a filtered view over the loaded records.
type ListResult struct {
	Items   []models.Feedback `json:"items"`
	Showing int               `json:"showing"`
	Total   int               `json:"total"`
}

// Apply returns the records matching flt, in input order.
func Apply(records []models.Feedback, flt Filter) ListResult {
	items := make([]models.Feedback, 0, len(records))
	for i := range records {
		if flt.Match(&records[i]) {
			items = append(items, records[i])
		}
	}
	return ListResult{Items: items, Showing: len(items), Total: len(records)}
}

// Options are the values offered by the list's selectors.
type Options struct {
	Subjects    []string `json:"subjects"`
	Faculties   []string `json:"faculties"`
	Departments []string `json:"departments"`
}

// FilterOptions collects distinct subjects, faculties and departments in
// first-seen order.
func FilterOptions(records []models.Feedback) Options {
	return Options{
		Subjects:    distinct(records, func(f *models.Feedback) string { return f.Subject }),
		Faculties:   distinct(records, func(f *models.Feedback) string { return f.FacultyName }),
		Departments: distinct(records, func(f *models.Feedback) string { return f.Department }),
	}
}

func distinct(records []models.Feedback, key func(*models.Feedback) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for i := range records {
		k := key(&records[i])
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
