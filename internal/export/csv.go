// Package export renders loaded feedback records as a downloadable CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"course-feedback/internal/models"
)

const dateLayout = "2006-01-02"

// Header is the first row of every export.
var Header = []string{"Name", "Roll Number", "Department", "Subject", "Faculty", "Rating", "Comments", "Date"}

// Filename is the download name for an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("feedback-export-%s.csv", now.UTC().Format(dateLayout))
}

// Row converts one record. Anonymous records never expose a name or roll number.
func Row(f *models.Feedback) []string {
	comments := f.CommentText()
	if comments == "" {
		comments = "N/A"
	}
	return []string{
		f.DisplayName(),
		f.DisplayRollNumber(),
		f.Department,
		f.Subject,
		f.FacultyName,
		strconv.Itoa(f.Rating),
		comments,
		f.CreatedAt.UTC().Format(dateLayout),
	}
}

// WriteCSV writes the header followed by one row per record, in order.
func WriteCSV(w io.Writer, records []models.Feedback) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := range records {
		if err := cw.Write(Row(&records[i])); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
