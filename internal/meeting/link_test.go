package meeting_test

import (
	"math/rand"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithcodes/assignment-scheduler/internal/meeting"
)

func TestFallbackLink(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		link := meeting.FallbackLink("meet.google.com", rnd)
		assert.Regexp(t, `^https://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}$`, link)
	}
}

func TestFallbackLinkDeterministicForSeed(t *testing.T) {
	a := meeting.FallbackLink("meet.google.com", rand.New(rand.NewSource(7)))
	b := meeting.FallbackLink("meet.google.com", rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestCalendarEventURL(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	raw := meeting.CalendarEventURL(
		"Meeting: Prof. Rao / Ana Scholar",
		"Slot booked by Ana.\nJoin: https://meet.example.com/x",
		start, end,
		[]string{"prof@example.edu", "ana@example.edu"},
	)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Meeting: Prof. Rao / Ana Scholar", q.Get("text"))
	assert.Equal(t, "20250301T090000Z/20250301T100000Z", q.Get("dates"))
	assert.Equal(t, []string{"prof@example.edu", "ana@example.edu"}, q["add"])
	assert.Contains(t, q.Get("details"), "Join: https://meet.example.com/x")
}
