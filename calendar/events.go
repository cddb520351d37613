// Package calendar provides typed request builders for the Google Calendar
// API's events resource. Each entry point returns a mode-specific builder
// exposing only the operations valid for that mode; list filters cannot be
// set on an insert, and vice versa.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/transport"
)

const eventsBaseURL = "https://www.googleapis.com/calendar/v3/calendars"

// ErrEventNotInitialized is returned when an insert or patch request is
// issued without an event payload.
var ErrEventNotInitialized = errors.New("calendar: event payload not initialized")

// Events is the entry point for event requests on behalf of one
// authenticated client.
type Events struct {
	mgr *auth.Client
}

// NewEvents creates an events request factory bound to the given client.
func NewEvents(mgr *auth.Client) *Events {
	return &Events{mgr: mgr}
}

func (e *Events) newRequest(method, url string) transport.Request {
	req := transport.NewRequest()
	req.Method = method
	req.URL = url
	req.Limiter = limiter
	return req
}

// Package-level limiter shared by all event requests.
var limiter = transport.NewRateLimiter(transport.ServiceCalendar)

// List starts a listing of events on the given calendar.
func (e *Events) List(calendarID string) *ListBuilder {
	return &ListBuilder{
		mgr: e.mgr,
		req: e.newRequest(http.MethodGet, fmt.Sprintf("%s/%s/events", eventsBaseURL, calendarID)),
	}
}

// Get fetches a single event by id.
func (e *Events) Get(calendarID, eventID string) *GetBuilder {
	return &GetBuilder{
		mgr: e.mgr,
		req: e.newRequest(http.MethodGet, fmt.Sprintf("%s/%s/events/%s", eventsBaseURL, calendarID, eventID)),
	}
}

// Insert starts creation of an event with the mandatory start and end.
func (e *Events) Insert(calendarID string, start, end EventDateTime) *InsertBuilder {
	return &InsertBuilder{
		mgr:   e.mgr,
		req:   e.newRequest(http.MethodPost, fmt.Sprintf("%s/%s/events", eventsBaseURL, calendarID)),
		event: &eventPayload{Start: &start, End: &end},
	}
}

// Patch starts a partial update of an existing event.
func (e *Events) Patch(calendarID, eventID string) *PatchBuilder {
	return &PatchBuilder{
		mgr:   e.mgr,
		req:   e.newRequest(http.MethodPatch, fmt.Sprintf("%s/%s/events/%s", eventsBaseURL, calendarID, eventID)),
		event: &eventPayload{},
	}
}

// ListBuilder lists events; only listing filters are available here.
type ListBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// MaxResults caps the number of events per page.
func (b *ListBuilder) MaxResults(max int64) *ListBuilder {
	b.req.SetParam("maxResults", strconv.FormatInt(max, 10))
	return b
}

// PageToken resumes a listing from a previous page.
func (b *ListBuilder) PageToken(token string) *ListBuilder {
	b.req.SetParam("pageToken", token)
	return b
}

// TimeMin filters out events ending before the given instant.
func (b *ListBuilder) TimeMin(t time.Time) *ListBuilder {
	b.req.SetParam("timeMin", t.Format(time.RFC3339))
	return b
}

// TimeMax filters out events starting after the given instant.
func (b *ListBuilder) TimeMax(t time.Time) *ListBuilder {
	b.req.SetParam("timeMax", t.Format(time.RFC3339))
	return b
}

// OrderBy sets the sort order of returned events.
func (b *ListBuilder) OrderBy(by OrderBy) *ListBuilder {
	b.req.SetParam("orderBy", string(by))
	return b
}

// EventType restricts the listing to one event type.
func (b *ListBuilder) EventType(t EventType) *ListBuilder {
	b.req.SetParam("eventTypes", string(t))
	return b
}

// MaxAttendees caps the number of attendees included per event.
func (b *ListBuilder) MaxAttendees(max int64) *ListBuilder {
	b.req.SetParam("maxAttendees", strconv.FormatInt(max, 10))
	return b
}

// SingleEvents expands recurring events into instances.
func (b *ListBuilder) SingleEvents(single bool) *ListBuilder {
	b.req.SetParam("singleEvents", strconv.FormatBool(single))
	return b
}

// ShowHiddenInvitations includes hidden invitations in the listing.
func (b *ListBuilder) ShowHiddenInvitations(show bool) *ListBuilder {
	b.req.SetParam("showHiddenInvitations", strconv.FormatBool(show))
	return b
}

// Query filters events by free-text search.
func (b *ListBuilder) Query(q string) *ListBuilder {
	b.req.SetParam("q", q)
	return b
}

// Request issues the listing. The token refresh check runs first, so an
// expired token is renewed before the call when auto-refresh is on.
func (b *ListBuilder) Request(ctx context.Context) (*EventList, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[EventList](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// GetBuilder fetches a single event; it has no filters.
type GetBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// Request issues the fetch.
func (b *GetBuilder) Request(ctx context.Context) (*Event, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Event](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// InsertBuilder creates an event; only payload setters are available.
type InsertBuilder struct {
	mgr   *auth.Client
	req   transport.Request
	event *eventPayload
}

// Summary sets the event title.
func (b *InsertBuilder) Summary(s string) *InsertBuilder {
	b.event.Summary = s
	return b
}

// Description sets the event description.
func (b *InsertBuilder) Description(s string) *InsertBuilder {
	b.event.Description = s
	return b
}

// Location sets the event location.
func (b *InsertBuilder) Location(s string) *InsertBuilder {
	b.event.Location = s
	return b
}

// Attendees sets the attendee list.
func (b *InsertBuilder) Attendees(attendees []EventAttendee) *InsertBuilder {
	b.event.Attendees = attendees
	return b
}

// EventType sets the event type.
func (b *InsertBuilder) EventType(t EventType) *InsertBuilder {
	b.event.EventType = string(t)
	return b
}

// ColorID sets the display colour.
func (b *InsertBuilder) ColorID(id string) *InsertBuilder {
	b.event.ColorID = id
	return b
}

// Recurrence sets the RRULE/RDATE/EXDATE lines.
func (b *InsertBuilder) Recurrence(rules []string) *InsertBuilder {
	b.event.Recurrence = rules
	return b
}

// Request issues the insert and returns the created event.
func (b *InsertBuilder) Request(ctx context.Context) (*Event, error) {
	if b.event == nil {
		return nil, ErrEventNotInitialized
	}
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Event](ctx, b.mgr.HTTPClient(), b.req, b.event)
}

// PatchBuilder partially updates an event: payload setters plus the query
// parameters the patch endpoint accepts.
type PatchBuilder struct {
	mgr   *auth.Client
	req   transport.Request
	event *eventPayload
}

// ID overwrites the event id.
func (b *PatchBuilder) ID(id string) *PatchBuilder {
	b.event.ID = id
	return b
}

// Summary sets the event title.
func (b *PatchBuilder) Summary(s string) *PatchBuilder {
	b.event.Summary = s
	return b
}

// Description sets the event description.
func (b *PatchBuilder) Description(s string) *PatchBuilder {
	b.event.Description = s
	return b
}

// Location sets the event location.
func (b *PatchBuilder) Location(s string) *PatchBuilder {
	b.event.Location = s
	return b
}

// ColorID sets the display colour.
func (b *PatchBuilder) ColorID(id string) *PatchBuilder {
	b.event.ColorID = id
	return b
}

// Start replaces the event start.
func (b *PatchBuilder) Start(dt EventDateTime) *PatchBuilder {
	b.event.Start = &dt
	return b
}

// End replaces the event end.
func (b *PatchBuilder) End(dt EventDateTime) *PatchBuilder {
	b.event.End = &dt
	return b
}

// EventType sets the event type.
func (b *PatchBuilder) EventType(t EventType) *PatchBuilder {
	b.event.EventType = string(t)
	return b
}

// GuestsCanInviteOthers toggles whether guests may invite others.
func (b *PatchBuilder) GuestsCanInviteOthers(v bool) *PatchBuilder {
	b.event.GuestsCanInviteOthers = &v
	return b
}

// GuestsCanModify toggles whether guests may modify the event.
func (b *PatchBuilder) GuestsCanModify(v bool) *PatchBuilder {
	b.event.GuestsCanModify = &v
	return b
}

// GuestsCanSeeOtherGuests toggles guest list visibility.
func (b *PatchBuilder) GuestsCanSeeOtherGuests(v bool) *PatchBuilder {
	b.event.GuestsCanSeeOtherGuests = &v
	return b
}

// Recurrence replaces the recurrence rules.
func (b *PatchBuilder) Recurrence(rules []string) *PatchBuilder {
	b.event.Recurrence = rules
	return b
}

// Sequence sets the iCalendar sequence number.
func (b *PatchBuilder) Sequence(n int64) *PatchBuilder {
	b.event.Sequence = &n
	return b
}

// Status sets the event status (confirmed, tentative, cancelled).
func (b *PatchBuilder) Status(s string) *PatchBuilder {
	b.event.Status = s
	return b
}

// Transparency sets whether the event blocks time (opaque, transparent).
func (b *PatchBuilder) Transparency(s string) *PatchBuilder {
	b.event.Transparency = s
	return b
}

// Visibility sets the event visibility.
func (b *PatchBuilder) Visibility(s string) *PatchBuilder {
	b.event.Visibility = s
	return b
}

// SendUpdates controls which attendees receive update notifications.
func (b *PatchBuilder) SendUpdates(mode string) *PatchBuilder {
	b.req.SetParam("sendUpdates", mode)
	return b
}

// ConferenceDataVersion sets the supported conference data version.
func (b *PatchBuilder) ConferenceDataVersion(v int64) *PatchBuilder {
	b.req.SetParam("conferenceDataVersion", strconv.FormatInt(v, 10))
	return b
}

// SupportsAttachments declares that the caller handles event attachments.
func (b *PatchBuilder) SupportsAttachments(v bool) *PatchBuilder {
	b.req.SetParam("supportsAttachments", strconv.FormatBool(v))
	return b
}

// MaxAttendees caps the attendees included in the response.
func (b *PatchBuilder) MaxAttendees(max int64) *PatchBuilder {
	b.req.SetParam("maxAttendees", strconv.FormatInt(max, 10))
	return b
}

// Request issues the patch and returns the updated event.
func (b *PatchBuilder) Request(ctx context.Context) (*Event, error) {
	if b.event == nil {
		return nil, ErrEventNotInitialized
	}
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Event](ctx, b.mgr.HTTPClient(), b.req, b.event)
}
