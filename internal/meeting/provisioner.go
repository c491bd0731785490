// Package meeting integrates with the external conferencing API that
// provisions video-meeting links for booked slots, and provides the
// local fallback used when that API is unreachable.
package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Request describes the calendar event to provision. Times are UTC.
type Request struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	StartUTC    time.Time `json:"start"`
	EndUTC      time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
}

// Event is the provisioned calendar event. MeetingLink is the join
// URL consumed by the booking flow; EventID and EventLink identify
// the event on the provider side.
type Event struct {
	EventID     string `json:"event_id"`
	MeetingLink string `json:"meeting_link"`
	EventLink   string `json:"event_link"`
}

// Provisioner creates a calendar event with an attached video
// meeting. Implementations must respect the context deadline; the
// booking engine bounds each call so a slow provider cannot stall a
// booking past the fallback path.
type Provisioner interface {
	CreateMeeting(ctx context.Context, req Request) (Event, error)
}

// CalendarClient calls the conferencing HTTP API. The zero value is
// not usable; construct with NewCalendarClient.
type CalendarClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewCalendarClient returns a client posting to baseURL with the
// given bearer key. timeout bounds the whole HTTP exchange and acts
// as a second line of defence behind the caller's context deadline.
func NewCalendarClient(baseURL, apiKey string, timeout time.Duration) *CalendarClient {
	return &CalendarClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateMeeting posts the event to the provider and decodes the
// created event. Any non-2xx status is an error; the caller decides
// whether to fall back.
func (c *CalendarClient) CreateMeeting(ctx context.Context, req Request) (Event, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Event{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/events", bytes.NewReader(body))
	if err != nil {
		return Event{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Event{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Event{}, fmt.Errorf("conferencing api returned status %d", resp.StatusCode)
	}
	var ev Event
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return Event{}, err
	}
	if ev.MeetingLink == "" {
		return Event{}, fmt.Errorf("conferencing api returned no meeting link")
	}
	return ev, nil
}
