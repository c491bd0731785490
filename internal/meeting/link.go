package meeting

import (
	"math/rand"
	"net/url"
	"strings"
	"time"
)

const linkLetters = "abcdefghijklmnopqrstuvwxyz"

// FallbackLink generates a placeholder join link of the form
// https://<host>/xxx-xxxx-xxx with lowercase-letter segments of
// length 3, 4 and 3. It is used when the conferencing API fails so a
// booking never fails merely because provisioning did. The random
// source is injected so tests can pin the output.
func FallbackLink(host string, rnd *rand.Rand) string {
	var b strings.Builder
	for i, n := range []int{3, 4, 3} {
		if i > 0 {
			b.WriteByte('-')
		}
		for j := 0; j < n; j++ {
			b.WriteByte(linkLetters[rnd.Intn(len(linkLetters))])
		}
	}
	return "https://" + host + "/" + b.String()
}

// calendarTimeLayout is the basic ISO-8601 UTC form used in
// calendar-template date ranges.
const calendarTimeLayout = "20060102T150405Z"

// CalendarEventURL builds an add-to-calendar deep link embedding the
// event title, description, UTC date range and attendee emails. Pure
// derived data for client convenience; nothing is persisted.
func CalendarEventURL(title, details string, startUTC, endUTC time.Time, attendees []string) string {
	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", title)
	v.Set("details", details)
	v.Set("dates", startUTC.Format(calendarTimeLayout)+"/"+endUTC.Format(calendarTimeLayout))
	for _, a := range attendees {
		v.Add("add", a)
	}
	return "https://calendar.google.com/calendar/render?" + v.Encode()
}
