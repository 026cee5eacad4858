package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Departments a student can pick on the submission form.
var Departments = []string{
	"Computer Science",
	"Electronics",
	"Mechanical",
	"Civil",
	"Electrical",
	"Chemical",
}

// Feedback is one student's rating of a subject/faculty pair.
// Records are never updated or deleted once stored.
type Feedback struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey"`
	Name        *string   `json:"name" bson:"name"`
	RollNumber  *string   `json:"roll_number" bson:"roll_number"`
	Department  string    `json:"department" bson:"department" gorm:"not null;index"`
	Subject     string    `json:"subject" bson:"subject" gorm:"not null;index"`
	FacultyName string    `json:"faculty_name" bson:"faculty_name" gorm:"not null;index"`
	Rating      int       `json:"rating" bson:"rating" gorm:"not null"`
	Comments    *string   `json:"comments" bson:"comments"`
	IsAnonymous bool      `json:"is_anonymous" bson:"is_anonymous" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" gorm:"index"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID != "" {
		return nil
	}
	// uuid v7 keeps ids roughly ordered by creation time
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return err
	}
	f.ID = uuidV7.String()
	return
}

// DisplayName is what the dashboard shows in place of the student's name.
func (f *Feedback) DisplayName() string {
	if f.IsAnonymous {
		return "Anonymous"
	}
	return valueOr(f.Name, "N/A")
}

// DisplayRollNumber mirrors DisplayName for the roll number column.
func (f *Feedback) DisplayRollNumber() string {
	if f.IsAnonymous {
		return "N/A"
	}
	return valueOr(f.RollNumber, "N/A")
}

// HasComment reports whether the record carries a non-blank comment.
func (f *Feedback) HasComment() bool {
	return f.Comments != nil && strings.TrimSpace(*f.Comments) != ""
}

// CommentText returns the comment or an empty string.
func (f *Feedback) CommentText() string {
	if f.Comments == nil {
		return ""
	}
	return *f.Comments
}

// FeedbackSubmission is the form payload before it becomes a stored record.
type FeedbackSubmission struct {
	Name        string `json:"name" form:"name"`
	RollNumber  string `json:"roll_number" form:"roll_number"`
	Department  string `json:"department" form:"department" validate:"required,department"`
	Subject     string `json:"subject" form:"subject" validate:"required"`
	FacultyName string `json:"faculty_name" form:"faculty_name" validate:"required"`
	Rating      int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comments    string `json:"comments" form:"comments"`
	IsAnonymous bool   `json:"is_anonymous" form:"is_anonymous"`
}

// Normalize trims the required text fields so whitespace-only input fails validation.
func (s *FeedbackSubmission) Normalize() {
	s.Department = strings.TrimSpace(s.Department)
	s.Subject = strings.TrimSpace(s.Subject)
	s.FacultyName = strings.TrimSpace(s.FacultyName)
}

// ToFeedback builds the record to insert. An anonymous submission never carries
// a name or roll number, whatever was typed into the form.
func (s *FeedbackSubmission) ToFeedback() *Feedback {
	f := &Feedback{
		Department:  s.Department,
		Subject:     s.Subject,
		FacultyName: s.FacultyName,
		Rating:      s.Rating,
		Comments:    optional(s.Comments),
		IsAnonymous: s.IsAnonymous,
	}
	if !s.IsAnonymous {
		f.Name = optional(s.Name)
		f.RollNumber = optional(s.RollNumber)
	}
	return f
}

// IsDepartment reports whether d is one of the selectable departments.
func IsDepartment(d string) bool {
	for _, dep := range Departments {
		if dep == d {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
