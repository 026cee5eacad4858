package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	for _, name := range []string{"dashboard.html", "submit.html", "head"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestEmailTemplatesEmbedded(t *testing.T) {
	b, err := FS.ReadFile("emails/low-rating-alert.html")
	require.NoError(t, err)
	assert.Contains(t, string(b), "{faculty_name}")
}

func TestFuncs(t *testing.T) {
	stars := funcs["stars"].(func(int) string)
	assert.Equal(t, "★★★", stars(3))
	assert.Equal(t, "", stars(-1))

	ratingClass := funcs["ratingClass"].(func(int) string)
	assert.Equal(t, "good", ratingClass(4))
	assert.Equal(t, "ok", ratingClass(3))
	assert.Equal(t, "bad", ratingClass(2))

	percent := funcs["percent"].(func(int, int) int)
	assert.Equal(t, 0, percent(3, 0))
	assert.Equal(t, 25, percent(1, 4))

	ratingPercent := funcs["ratingPercent"].(func(float64) int)
	assert.Equal(t, 90, ratingPercent(4.5))

	date := funcs["date"].(func(time.Time) string)
	assert.Equal(t, "Mar 09, 2026", date(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}
