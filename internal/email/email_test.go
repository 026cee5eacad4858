package email

import (
	"errors"
	"sync"
	"testing"

	"course-feedback/internal/models"

	"github.com/labstack/echo/v4"
	resend "github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email_1"}, nil
}

func TestRenderLowRatingAlert(t *testing.T) {
	comment := "Lectures <never> start on time"
	f := &models.Feedback{
		Department: "Electrical", Subject: "Machines", FacultyName: "Dr. Bose",
		Rating: 1, Comments: &comment, IsAnonymous: true,
	}

	subject, body, err := RenderLowRatingAlert(f)
	require.NoError(t, err)

	assert.Equal(t, "Low rating for Machines (1/5)", subject)
	assert.Contains(t, body, "Dr. Bose")
	assert.Contains(t, body, "Electrical")
	assert.Contains(t, body, "Anonymous")
	assert.Contains(t, body, "Lectures &lt;never&gt; start on time")
	assert.NotContains(t, body, "{comments}")
}

func TestRenderLowRatingAlert_NoComment(t *testing.T) {
	f := &models.Feedback{Department: "Civil", Subject: "Hydraulics", FacultyName: "Dr. Rao", Rating: 2}

	_, body, err := RenderLowRatingAlert(f)
	require.NoError(t, err)
	assert.Contains(t, body, "No comment left.")
}

func TestSend(t *testing.T) {
	sender := &fakeSender{}
	c := NewEmailClientWithSender(sender, "alerts@example.edu", echo.New().Logger)

	c.send("hod@example.edu", "Subject line", "<p>body</p>")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alerts@example.edu", sender.sent[0].From)
	assert.Equal(t, []string{"hod@example.edu"}, sender.sent[0].To)
	assert.Equal(t, "Subject line", sender.sent[0].Subject)
}

func TestSend_ErrorIsLoggedOnly(t *testing.T) {
	sender := &fakeSender{err: errors.New("resend down")}
	c := NewEmailClientWithSender(sender, "alerts@example.edu", echo.New().Logger)

	assert.NotPanics(t, func() { c.send("hod@example.edu", "s", "b") })
	assert.Len(t, sender.sent, 1)
}

func TestSendAsync_NilClient(t *testing.T) {
	var c *ResendEmailClient
	assert.NotPanics(t, func() { c.SendAsync("hod@example.edu", "s", "b") })
}
