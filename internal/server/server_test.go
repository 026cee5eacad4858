package server

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

func TestSentryLogger_Error(t *testing.T) {
	e := echo.New()
	e.Logger.SetLevel(log.OFF)
	l := &SentryLogger{Logger: e.Logger}

	tests := []struct {
		name string
		args []interface{}
	}{
		{"No arguments", nil},
		{"Error value", []interface{}{errors.New("boom")}},
		{"Plain message", []interface{}{"something failed", 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { l.Error(tt.args...) })
		})
	}
}
