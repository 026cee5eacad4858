package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

const submissionLockTTL = 30 * time.Second

func submissionKey(token string) string {
	return "feedback:submission:" + token
}

// acquireSubmission claims token so a double-clicked form is stored once.
// Without redis or a token there is nothing to claim and it always succeeds.
// A redis error lets the submission through.
//
// The returned release frees the token after a failed insert so the student
// can retry. After a stored insert the token stays claimed until it expires.
func (h *FeedbackHandler) acquireSubmission(c echo.Context, token string) (release func(stored bool), ok bool) {
	noop := func(bool) {}
	if h.Redis == nil || token == "" {
		return noop, true
	}

	key := submissionKey(token)
	claimed, err := h.Redis.SetNX(c.Request().Context(), key, "1", submissionLockTTL).Result()
	if err != nil {
		c.Logger().Warnf("Submission lock unavailable: %v", err)
		return noop, true
	}
	if !claimed {
		return noop, false
	}

	return func(stored bool) {
		if stored {
			return
		}
		if err := h.Redis.Del(context.Background(), key).Err(); err != nil {
			c.Logger().Warnf("Failed to release submission lock: %v", err)
		}
	}, true
}
