package handlers

import (
	"errors"
	"net/http"

	"course-feedback/internal/aggregate"
	"course-feedback/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DashboardPage is the data behind dashboard.html.
type DashboardPage struct {
	Error     string
	Dashboard aggregate.Dashboard
	Filter    aggregate.Filter
	Options   aggregate.Options
	List      aggregate.ListResult
}

// SubmitPage is the data behind submit.html.
type SubmitPage struct {
	Success     string
	Error       string
	Token       string
	Form        models.FeedbackSubmission
	Departments []string
	Errors      map[string]string
}

// submitForm is the posted form: the submission plus its one-time token.
type submitForm struct {
	models.FeedbackSubmission
	Token string `form:"submission_token"`
}

// ShowDashboard renders the dashboard from one snapshot; the list below it
// honours the query string filters.
func (h *FeedbackHandler) ShowDashboard(c echo.Context) error {
	var flt aggregate.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &flt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	records, err := h.loadSnapshot(c)

	page := DashboardPage{
		Dashboard: aggregate.Build(records),
		Filter:    flt,
		Options:   aggregate.FilterOptions(records),
		List:      aggregate.Apply(records, flt),
	}
	if err != nil {
		page.Error = msgLoadFailed
	}
	return c.Render(http.StatusOK, "dashboard.html", page)
}

func (h *FeedbackHandler) ShowSubmitForm(c echo.Context) error {
	return c.Render(http.StatusOK, "submit.html", newSubmitPage(models.FeedbackSubmission{}))
}

func (h *FeedbackHandler) SubmitForm(c echo.Context) error {
	form := new(submitForm)
	if err := c.Bind(form); err != nil {
		page := newSubmitPage(models.FeedbackSubmission{})
		page.Error = msgInvalidPayload
		return c.Render(http.StatusBadRequest, "submit.html", page)
	}

	_, fieldErrs, err := h.submit(c, &form.FeedbackSubmission, form.Token)
	switch {
	case fieldErrs != nil:
		page := newSubmitPage(form.FeedbackSubmission)
		page.Token = form.Token
		page.Errors = fieldErrs
		return c.Render(http.StatusBadRequest, "submit.html", page)
	case errors.Is(err, errSubmissionInFlight):
		page := newSubmitPage(form.FeedbackSubmission)
		page.Token = form.Token
		page.Error = msgInFlight
		return c.Render(http.StatusConflict, "submit.html", page)
	case err != nil:
		// keep what the student typed and hand out a fresh token for the retry
		page := newSubmitPage(form.FeedbackSubmission)
		page.Error = msgSubmitFailed
		return c.Render(http.StatusInternalServerError, "submit.html", page)
	}

	page := newSubmitPage(models.FeedbackSubmission{})
	page.Success = msgSubmitted
	return c.Render(http.StatusOK, "submit.html", page)
}

func newSubmitPage(form models.FeedbackSubmission) SubmitPage {
	return SubmitPage{
		Token:       uuid.NewString(),
		Form:        form,
		Departments: models.Departments,
		Errors:      map[string]string{},
	}
}
