package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"course-feedback/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestWriteCSV(t *testing.T) {
	created := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	records := []models.Feedback{
		{
			Name: strPtr("Priya"), RollNumber: strPtr("CE-101"),
			Department: "Civil", Subject: "Surveying", FacultyName: "Dr. Rao",
			Rating: 5, Comments: strPtr("Clear, practical"), CreatedAt: created,
		},
		{
			Name: strPtr("Leaked"), RollNumber: strPtr("X-1"), IsAnonymous: true,
			Department: "Electronics", Subject: "Signals", FacultyName: "Dr. Das",
			Rating: 2, CreatedAt: created,
		},
		{
			Department: "Chemical", Subject: "Kinetics", FacultyName: "Dr. Pillai",
			Rating: 3, CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"Priya", "CE-101", "Civil", "Surveying", "Dr. Rao", "5", "Clear, practical", "2026-03-09"}, rows[1])
	assert.Equal(t, []string{"Anonymous", "N/A", "Electronics", "Signals", "Dr. Das", "2", "N/A", "2026-03-09"}, rows[2])
	assert.Equal(t, []string{"N/A", "N/A", "Chemical", "Kinetics", "Dr. Pillai", "3", "N/A", "2026-03-09"}, rows[3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Roll Number,Department,Subject,Faculty,Rating,Comments,Date\n", buf.String())
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "feedback-export-2026-10-15.csv", Filename(now))
}
