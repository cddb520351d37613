package calendar

// EventDateTime is the start or end of an event: either an all-day date
// (YYYY-MM-DD) or an RFC3339 timestamp with optional time zone.
type EventDateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventAttendee is a participant on an event.
type EventAttendee struct {
	ID               string `json:"id,omitempty"`
	Email            string `json:"email,omitempty"`
	DisplayName      string `json:"displayName,omitempty"`
	Organizer        bool   `json:"organizer,omitempty"`
	Self             bool   `json:"self,omitempty"`
	Resource         bool   `json:"resource,omitempty"`
	Optional         bool   `json:"optional,omitempty"`
	ResponseStatus   string `json:"responseStatus,omitempty"`
	Comment          string `json:"comment,omitempty"`
	AdditionalGuests int64  `json:"additionalGuests,omitempty"`
}

// EventPerson identifies the creator or organizer of an event.
type EventPerson struct {
	ID          string `json:"id,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Self        bool   `json:"self,omitempty"`
}

// Event is a calendar event as returned by the Calendar API.
type Event struct {
	Kind        string          `json:"kind,omitempty"`
	ID          string          `json:"id,omitempty"`
	Etag        string          `json:"etag,omitempty"`
	Status      string          `json:"status,omitempty"`
	HTMLLink    string          `json:"htmlLink,omitempty"`
	Created     string          `json:"created,omitempty"`
	Updated     string          `json:"updated,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	ColorID     string          `json:"colorId,omitempty"`
	Creator     *EventPerson    `json:"creator,omitempty"`
	Organizer   *EventPerson    `json:"organizer,omitempty"`
	Start       *EventDateTime  `json:"start,omitempty"`
	End         *EventDateTime  `json:"end,omitempty"`
	Recurrence  []string        `json:"recurrence,omitempty"`
	Attendees   []EventAttendee `json:"attendees,omitempty"`
	EventType   string          `json:"eventType,omitempty"`
	Sequence    int64           `json:"sequence,omitempty"`
	Visibility  string          `json:"visibility,omitempty"`
}

// EventList is one page of events from a calendar.
type EventList struct {
	Kind          string  `json:"kind,omitempty"`
	Etag          string  `json:"etag,omitempty"`
	Summary       string  `json:"summary,omitempty"`
	Description   string  `json:"description,omitempty"`
	Updated       string  `json:"updated,omitempty"`
	TimeZone      string  `json:"timeZone,omitempty"`
	AccessRole    string  `json:"accessRole,omitempty"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	NextSyncToken string  `json:"nextSyncToken,omitempty"`
	Items         []Event `json:"items,omitempty"`
}

// eventPayload is the JSON body for insert and patch requests. Pointer
// fields distinguish "unset" from explicit false on a patch.
type eventPayload struct {
	ID                      string          `json:"id,omitempty"`
	Summary                 string          `json:"summary,omitempty"`
	Description             string          `json:"description,omitempty"`
	Location                string          `json:"location,omitempty"`
	ColorID                 string          `json:"colorId,omitempty"`
	Start                   *EventDateTime  `json:"start,omitempty"`
	End                     *EventDateTime  `json:"end,omitempty"`
	Attendees               []EventAttendee `json:"attendees,omitempty"`
	Recurrence              []string        `json:"recurrence,omitempty"`
	EventType               string          `json:"eventType,omitempty"`
	GuestsCanInviteOthers   *bool           `json:"guestsCanInviteOthers,omitempty"`
	GuestsCanModify         *bool           `json:"guestsCanModify,omitempty"`
	GuestsCanSeeOtherGuests *bool           `json:"guestsCanSeeOtherGuests,omitempty"`
	Sequence                *int64          `json:"sequence,omitempty"`
	Status                  string          `json:"status,omitempty"`
	Transparency            string          `json:"transparency,omitempty"`
	Visibility              string          `json:"visibility,omitempty"`
}

// OrderBy is the sort order for event listings.
type OrderBy string

const (
	// OrderByStartTime sorts by event start time.
	OrderByStartTime OrderBy = "startTime"
	// OrderByUpdated sorts by last modification time.
	OrderByUpdated OrderBy = "updated"
)

// EventType classifies an event for filtering and creation.
type EventType string

const (
	EventTypeBirthday        EventType = "birthday"
	EventTypeDefault         EventType = "default"
	EventTypeFocusTime       EventType = "focusTime"
	EventTypeFromGmail       EventType = "fromGmail"
	EventTypeOutOfOffice     EventType = "outOfOffice"
	EventTypeWorkingLocation EventType = "workingLocation"
)
