package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"course-feedback/internal/aggregate"
	"course-feedback/internal/common"
	"course-feedback/internal/export"
	"course-feedback/internal/metrics"
	"course-feedback/internal/models"
	"course-feedback/internal/notifications"

	"github.com/labstack/echo/v4"
)

const (
	msgSubmitted      = "Feedback submitted successfully!"
	msgSubmitFailed   = "Failed to submit feedback. Please try again."
	msgInFlight       = "Your feedback is already being submitted."
	msgLoadFailed     = "Failed to load feedback data"
	msgInvalidPayload = "Invalid feedback submission"

	notifyTimeout = 10 * time.Second
)

var errSubmissionInFlight = errors.New("submission already in progress")

type FeedbackHandler struct {
	common.ServerState
}

func NewFeedbackHandler(state common.ServerState) *FeedbackHandler {
	return &FeedbackHandler{ServerState: state}
}

type DashboardResponse struct {
	aggregate.Dashboard
	FilterOptions aggregate.Options `json:"filter_options"`
	Error         string            `json:"error,omitempty"`
}

type ListResponse struct {
	aggregate.ListResult
	Error string `json:"error,omitempty"`
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) SubmitFeedback(c echo.Context) error {
	sub := new(models.FeedbackSubmission)
	if err := c.Bind(sub); err != nil {
		h.Metrics.ObserveSubmission(metrics.OutcomeInvalid)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	token := c.Request().Header.Get("X-Submission-Token")
	feedback, fieldErrs, err := h.submit(c, sub, token)
	switch {
	case fieldErrs != nil:
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"message": msgInvalidPayload,
			"errors":  fieldErrs,
		})
	case errors.Is(err, errSubmissionInFlight):
		return echo.NewHTTPError(http.StatusConflict, msgInFlight)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, msgSubmitFailed)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  msgSubmitted,
		"feedback": feedback,
	})
}

// --- GET /api/dashboard ---

func (h *FeedbackHandler) Dashboard(c echo.Context) error {
	records, err := h.loadSnapshot(c)

	resp := DashboardResponse{
		Dashboard:     aggregate.Build(records),
		FilterOptions: aggregate.FilterOptions(records),
	}
	if err != nil {
		resp.Error = msgLoadFailed
	}
	return c.JSON(http.StatusOK, resp)
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) ListFeedback(c echo.Context) error {
	var flt aggregate.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &flt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	records, err := h.loadSnapshot(c)

	resp := ListResponse{ListResult: aggregate.Apply(records, flt)}
	if err != nil {
		resp.Error = msgLoadFailed
	}
	return c.JSON(http.StatusOK, resp)
}

// --- GET /api/feedback/export ---

func (h *FeedbackHandler) ExportCSV(c echo.Context) error {
	records, err := h.loadSnapshot(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, msgLoadFailed)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	res.WriteHeader(http.StatusOK)

	if err := export.WriteCSV(res, records); err != nil {
		// headers are already sent, nothing left to tell the client
		c.Logger().Errorf("Failed to write CSV export: %v", err)
	}
	return nil
}

// loadSnapshot fetches every record once. A failed fetch is logged and
// reported, and the caller gets an empty snapshot to render.
func (h *FeedbackHandler) loadSnapshot(c echo.Context) ([]models.Feedback, error) {
	records, err := h.Store.ListRecent(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Error fetching feedback: %v", err)
		CaptureError(err)
		h.Metrics.ObserveLoad(metrics.LoadDegraded)
		return []models.Feedback{}, err
	}
	h.Metrics.ObserveLoad(metrics.LoadOK)
	return records, nil
}

// submit validates and stores one submission. Field errors come back as a map;
// any other failure as err. Exactly one insert is attempted.
func (h *FeedbackHandler) submit(c echo.Context, sub *models.FeedbackSubmission, token string) (*models.Feedback, map[string]string, error) {
	sub.Normalize()
	if err := c.Validate(sub); err != nil {
		h.Metrics.ObserveSubmission(metrics.OutcomeInvalid)
		if fe := fieldErrors(err); fe != nil {
			return nil, fe, nil
		}
		return nil, map[string]string{"form": msgInvalidPayload}, nil
	}

	ctx := c.Request().Context()
	release, ok := h.acquireSubmission(c, token)
	if !ok {
		h.Metrics.ObserveSubmission(metrics.OutcomeDuplicate)
		return nil, nil, errSubmissionInFlight
	}
	feedback := sub.ToFeedback()
	if err := h.Store.Insert(ctx, feedback); err != nil {
		release(false)
		c.Logger().Errorf("Error submitting feedback: %v", err)
		CaptureError(err)
		h.Metrics.ObserveSubmission(metrics.OutcomeFailed)
		return nil, nil, err
	}
	release(true)

	h.Metrics.ObserveSubmission(metrics.OutcomeCreated)
	h.notify(c.Logger(), feedback)
	return feedback, nil, nil
}

// notify fans a stored record out to staff in the background.
func (h *FeedbackHandler) notify(logger echo.Logger, f *models.Feedback) {
	if h.Notifier != nil {
		message := notifications.FormatFeedbackMessage(f)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := h.Notifier.Publish(ctx, message); err != nil {
				logger.Errorf("Error publishing feedback notification: %v", err)
			}
		}()
	}

	if f.Rating <= 2 && h.EmailClient != nil && h.Config != nil && h.Config.Resend.AlertEmail != "" {
		h.EmailClient.SendLowRatingAlert(h.Config.Resend.AlertEmail, f)
	}
}
