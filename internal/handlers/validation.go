package handlers

import (
	"errors"
	"reflect"
	"strings"

	"course-feedback/internal/models"

	"github.com/go-playground/validator"
)

// CustomValidator Source: https://echo.labstack.com/docs/request#validate-data
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NewValidator reports field errors under their json names and knows the
// "department" tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return models.IsDepartment(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

var fieldLabels = map[string]string{
	"department":   "Department",
	"subject":      "Subject",
	"faculty_name": "Faculty name",
	"rating":       "Rating",
}

// fieldErrors turns a validation failure into one message per field.
// It returns nil when err is not a validation failure.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(field, fe.Tag())
	}
	return out
}

func fieldMessage(field, tag string) string {
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}

	switch {
	case field == "rating" && tag == "required":
		return "Please select a rating"
	case field == "rating":
		return "Rating must be between 1 and 5"
	case tag == "required":
		return label + " is required"
	case tag == "department":
		return "Department must be one of: " + strings.Join(models.Departments, ", ")
	default:
		return label + " is invalid"
	}
}
