// Package aggregate computes the dashboard statistics from an in-memory
// snapshot of feedback records.
//
// Every function takes records in the order the store returned them (newest
// first), never mutates the input, and has a defined result for an empty set.
package aggregate

import (
	"fmt"
	"slices"

	"course-feedback/internal/models"
)

// TopCommentsLimit is how many comments each top-comments panel shows.
const TopCommentsLimit = 3

// NotAvailable is the placeholder for name-valued statistics of an empty set.
const NotAvailable = "N/A"

// RatingCount is how many records carry one rating value.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// SubjectRating is the mean rating of one subject, to one decimal place.
type SubjectRating struct {
	Subject   string  `json:"subject"`
	AvgRating float64 `json:"avg_rating"`
}

// Sentiment selects which end of the rating scale TopComments reads from.
type Sentiment int

const (
	Positive Sentiment = iota
	Negative
)

// Summary holds the four headline cards of the dashboard.
type Summary struct {
	TotalFeedback    int    `json:"total_feedback"`
	AverageRating    string `json:"average_rating"`
	BestFaculty      string `json:"best_faculty"`
	MostRatedSubject string `json:"most_rated_subject"`
}

// Dashboard is everything the dashboard renders besides the list itself.
type Dashboard struct {
	Summary            Summary           `json:"summary"`
	RatingDistribution []RatingCount     `json:"rating_distribution"`
	SubjectRatings     []SubjectRating   `json:"subject_ratings"`
	TopPositive        []models.Feedback `json:"top_positive"`
	TopNegative        []models.Feedback `json:"top_negative"`
}

// Build runs every aggregate over the same snapshot.
func Build(records []models.Feedback) Dashboard {
	return Dashboard{
		Summary: Summary{
			TotalFeedback:    Count(records),
			AverageRating:    AverageRating(records),
			BestFaculty:      BestFaculty(records),
			MostRatedSubject: MostRatedSubject(records),
		},
		RatingDistribution: RatingDistribution(records),
		SubjectRatings:     SubjectRatings(records),
		TopPositive:        TopComments(records, Positive),
		TopNegative:        TopComments(records, Negative),
	}
}

// Count is the number of records.
func Count(records []models.Feedback) int {
	return len(records)
}

// AverageRating is the mean rating to one decimal place, or "0" for no records.
func AverageRating(records []models.Feedback) string {
	if len(records) == 0 {
		return "0"
	}
	var acc tally
	for i := range records {
		acc.add(records[i].Rating)
	}
	return formatTenths(acc.tenths())
}

// BestFaculty returns the faculty with the highest mean rating. Ties go to the
// faculty that appears first in records.
func BestFaculty(records []models.Feedback) string {
	groups := groupBy(records, func(f *models.Feedback) string { return f.FacultyName })
	if len(groups) == 0 {
		return NotAvailable
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.meanAbove(best.tally) {
			best = g
		}
	}
	return best.key
}

// MostRatedSubject returns the subject with the most submissions. Ties go to
// the subject that appears first in records.
func MostRatedSubject(records []models.Feedback) string {
	groups := groupBy(records, func(f *models.Feedback) string { return f.Subject })
	if len(groups) == 0 {
		return NotAvailable
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.count > best.count {
			best = g
		}
	}
	return best.key
}

// RatingDistribution always has five entries, ratings 1 through 5.
func RatingDistribution(records []models.Feedback) []RatingCount {
	dist := make([]RatingCount, 5)
	for i := range dist {
		dist[i].Rating = i + 1
	}
	for i := range records {
		if r := records[i].Rating; r >= 1 && r <= 5 {
			dist[r-1].Count++
		}
	}
	return dist
}

// SubjectRatings lists every subject in first-seen order with its mean rating
// rounded to one decimal.
func SubjectRatings(records []models.Feedback) []SubjectRating {
	groups := groupBy(records, func(f *models.Feedback) string { return f.Subject })
	out := make([]SubjectRating, 0, len(groups))
	for _, g := range groups {
		out = append(out, SubjectRating{
			Subject:   g.key,
			AvgRating: float64(g.tenths()) / 10,
		})
	}
	return out
}

// TopComments picks up to three commented records: the highest rated ones
// (rating >= 4) for Positive, the lowest rated ones (rating <= 2) for Negative.
// Equal ratings keep their input order.
func TopComments(records []models.Feedback, s Sentiment) []models.Feedback {
	picked := make([]models.Feedback, 0, TopCommentsLimit)
	for i := range records {
		f := &records[i]
		if !f.HasComment() {
			continue
		}
		if (s == Positive && f.Rating >= 4) || (s == Negative && f.Rating <= 2) {
			picked = append(picked, *f)
		}
	}

	slices.SortStableFunc(picked, func(a, b models.Feedback) int {
		if s == Positive {
			return b.Rating - a.Rating
		}
		return a.Rating - b.Rating
	})

	if len(picked) > TopCommentsLimit {
		picked = picked[:TopCommentsLimit]
	}
	return picked
}

// tally is the running sum and count folded per group.
type tally struct {
	sum   int
	count int
}

func (t *tally) add(rating int) {
	t.sum += rating
	t.count++
}

// tenths is the mean in tenths, rounded half up. Integer arithmetic keeps
// values like 2.25 from drifting to 2.2.
func (t tally) tenths() int {
	if t.count == 0 {
		return 0
	}
	return (20*t.sum + t.count) / (2 * t.count)
}

type group struct {
	key string
	tally
}

// meanAbove compares means without dividing.
func (g group) meanAbove(other tally) bool {
	return g.sum*other.count > other.sum*g.count
}

// groupBy folds records into one tally per key, keeping first-seen key order.
func groupBy(records []models.Feedback, key func(*models.Feedback) string) []group {
	index := make(map[string]int)
	var groups []group
	for i := range records {
		f := &records[i]
		k := key(f)
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, group{key: k})
		}
		groups[pos].add(f.Rating)
	}
	return groups
}

func formatTenths(tenths int) string {
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}
