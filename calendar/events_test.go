package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/transport"
)

func testClient() *auth.Client {
	return auth.NewClient(auth.Credentials{ClientID: "id"},
		auth.AccessToken{Token: "t", ExpiresIn: 3600, RefreshToken: "r"}, false)
}

func TestListBuilderRequest(t *testing.T) {
	timeMin := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	timeMax := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	b := NewEvents(testClient()).List("primary").
		MaxResults(50).
		PageToken("next-page").
		TimeMin(timeMin).
		TimeMax(timeMax).
		OrderBy(OrderByStartTime).
		EventType(EventTypeDefault).
		MaxAttendees(10).
		SingleEvents(true).
		ShowHiddenInvitations(false).
		Query("standup")

	assert.Equal(t, http.MethodGet, b.req.Method)
	assert.Equal(t, "https://www.googleapis.com/calendar/v3/calendars/primary/events", b.req.URL)

	assert.Equal(t, "50", b.req.Params.Get("maxResults"))
	assert.Equal(t, "next-page", b.req.Params.Get("pageToken"))
	assert.Equal(t, "2025-06-01T00:00:00Z", b.req.Params.Get("timeMin"))
	assert.Equal(t, "2025-06-08T00:00:00Z", b.req.Params.Get("timeMax"))
	assert.Equal(t, "startTime", b.req.Params.Get("orderBy"))
	assert.Equal(t, "default", b.req.Params.Get("eventTypes"))
	assert.Equal(t, "10", b.req.Params.Get("maxAttendees"))
	assert.Equal(t, "true", b.req.Params.Get("singleEvents"))
	assert.Equal(t, "false", b.req.Params.Get("showHiddenInvitations"))
	assert.Equal(t, "standup", b.req.Params.Get("q"))
}

func TestGetBuilderRequest(t *testing.T) {
	b := NewEvents(testClient()).Get("primary", "evt-123")

	assert.Equal(t, http.MethodGet, b.req.Method)
	assert.Equal(t, "https://www.googleapis.com/calendar/v3/calendars/primary/events/evt-123", b.req.URL)
	assert.Empty(t, b.req.Params)
}

func TestInsertBuilderPayload(t *testing.T) {
	start := EventDateTime{DateTime: "2025-06-01T10:00:00Z"}
	end := EventDateTime{DateTime: "2025-06-01T11:00:00Z"}

	b := NewEvents(testClient()).Insert("primary", start, end).
		Summary("Team sync").
		Description("Weekly planning").
		Location("Room 4").
		Attendees([]EventAttendee{{Email: "a@example.com"}}).
		EventType(EventTypeDefault).
		ColorID("5").
		Recurrence([]string{"RRULE:FREQ=WEEKLY"})

	assert.Equal(t, http.MethodPost, b.req.Method)
	assert.Equal(t, "https://www.googleapis.com/calendar/v3/calendars/primary/events", b.req.URL)

	raw, err := json.Marshal(b.event)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Team sync", got["summary"])
	assert.Equal(t, "Weekly planning", got["description"])
	assert.Equal(t, "Room 4", got["location"])
	assert.Equal(t, "5", got["colorId"])
	assert.Equal(t, map[string]any{"dateTime": "2025-06-01T10:00:00Z"}, got["start"])
	assert.Equal(t, map[string]any{"dateTime": "2025-06-01T11:00:00Z"}, got["end"])
	assert.Equal(t, []any{"RRULE:FREQ=WEEKLY"}, got["recurrence"])
}

func TestPatchBuilderPayloadAndParams(t *testing.T) {
	b := NewEvents(testClient()).Patch("primary", "evt-123").
		Summary("Renamed").
		GuestsCanModify(false).
		Sequence(3).
		Status("confirmed").
		SendUpdates("all").
		ConferenceDataVersion(1).
		SupportsAttachments(true).
		MaxAttendees(5)

	assert.Equal(t, http.MethodPatch, b.req.Method)
	assert.Equal(t, "https://www.googleapis.com/calendar/v3/calendars/primary/events/evt-123", b.req.URL)
	assert.Equal(t, "all", b.req.Params.Get("sendUpdates"))
	assert.Equal(t, "1", b.req.Params.Get("conferenceDataVersion"))
	assert.Equal(t, "true", b.req.Params.Get("supportsAttachments"))
	assert.Equal(t, "5", b.req.Params.Get("maxAttendees"))

	raw, err := json.Marshal(b.event)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Renamed", got["summary"])
	assert.Equal(t, "confirmed", got["status"])
	assert.Equal(t, float64(3), got["sequence"])
	// Explicit false survives serialization; the field is a pointer.
	assert.Equal(t, false, got["guestsCanModify"])
	// Unset pointer fields are omitted entirely.
	assert.NotContains(t, got, "guestsCanInviteOthers")
	assert.NotContains(t, got, "start")
}

func TestInsertBuilderNilPayload(t *testing.T) {
	b := &InsertBuilder{mgr: testClient(), req: transport.NewRequest()}

	_, err := b.Request(context.Background())
	assert.ErrorIs(t, err, ErrEventNotInitialized)
}

func TestPatchBuilderNilPayload(t *testing.T) {
	b := &PatchBuilder{mgr: testClient(), req: transport.NewRequest()}

	_, err := b.Request(context.Background())
	assert.ErrorIs(t, err, ErrEventNotInitialized)
}

func TestListRequestRefreshesExpiredToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type": "Bearer", "access_token": "ya29.fresh", "expires_in": 3600}`))
	}))
	defer tokenSrv.Close()

	var gotAuth string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items": [{"id": "evt-1", "summary": "Standup"}]}`))
	}))
	defer apiSrv.Close()

	// Expired token with auto-refresh on: the request must refresh first.
	mgr := auth.NewClient(auth.Credentials{ClientID: "id", ClientSecret: "s"},
		auth.AccessToken{Token: "ya29.stale", ExpiresIn: -1, RefreshToken: "1//r"},
		true, auth.WithTokenURL(tokenSrv.URL))

	b := NewEvents(mgr).List("primary")
	b.req.URL = apiSrv.URL

	list, err := b.Request(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Standup", list.Items[0].Summary)
	assert.Equal(t, "Bearer ya29.fresh", gotAuth)
}
