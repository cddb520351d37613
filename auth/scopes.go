package auth

import "strings"

// Scope is a Google Workspace permission identifier requested during
// authorization. Each constant carries the canonical scope string defined
// by Google, so callers never spell the URLs by hand.
type Scope string

const (
	// Calendar scopes.

	// ScopeCalendar grants full read/write access to calendars.
	ScopeCalendar Scope = "https://www.googleapis.com/auth/calendar"
	// ScopeCalendarReadOnly grants read-only access to calendars.
	ScopeCalendarReadOnly Scope = "https://www.googleapis.com/auth/calendar.readonly"
	// ScopeCalendarEvents grants read/write access to events.
	ScopeCalendarEvents Scope = "https://www.googleapis.com/auth/calendar.events"
	// ScopeCalendarEventsReadOnly grants read-only access to events.
	ScopeCalendarEventsReadOnly Scope = "https://www.googleapis.com/auth/calendar.events.readonly"
	// ScopeCalendarAppCreated grants access to secondary calendars created by the app.
	ScopeCalendarAppCreated Scope = "https://www.googleapis.com/auth/calendar.app.created"
	// ScopeCalendarEventsFreeBusy grants access to free/busy event information.
	ScopeCalendarEventsFreeBusy Scope = "https://www.googleapis.com/auth/calendar.events.freebusy"
	// ScopeCalendarEventsOwned grants read/write access to events the user owns.
	ScopeCalendarEventsOwned Scope = "https://www.googleapis.com/auth/calendar.events.owned"
	// ScopeCalendarEventsOwnedReadOnly grants read-only access to events the user owns.
	ScopeCalendarEventsOwnedReadOnly Scope = "https://www.googleapis.com/auth/calendar.events.owned.readonly"
	// ScopeCalendarEventsPublicReadOnly grants read-only access to public events.
	ScopeCalendarEventsPublicReadOnly Scope = "https://www.googleapis.com/auth/calendar.events.public.readonly"

	// Tasks scopes.

	// ScopeTasks grants read/write access to tasks.
	ScopeTasks Scope = "https://www.googleapis.com/auth/tasks"
	// ScopeTasksReadOnly grants read-only access to tasks.
	ScopeTasksReadOnly Scope = "https://www.googleapis.com/auth/tasks.readonly"

	// Gmail scopes.

	// ScopeMail grants full access to the Gmail mailbox.
	ScopeMail Scope = "https://mail.google.com/"
	// ScopeMailModify grants read/write access to mail except permanent deletion.
	ScopeMailModify Scope = "https://www.googleapis.com/auth/gmail.modify"
	// ScopeMailReadOnly grants read-only access to mail.
	ScopeMailReadOnly Scope = "https://www.googleapis.com/auth/gmail.readonly"
	// ScopeMailMetadata grants access to message metadata only.
	ScopeMailMetadata Scope = "https://www.googleapis.com/auth/gmail.metadata"
)

// String returns the canonical scope string.
func (s Scope) String() string {
	return string(s)
}

// JoinScopes renders scopes as the space-separated string expected by the
// authorization endpoint's scope parameter.
func JoinScopes(scopes []Scope) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
