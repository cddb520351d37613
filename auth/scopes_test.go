package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeStrings(t *testing.T) {
	tests := []struct {
		scope Scope
		want  string
	}{
		{ScopeCalendar, "https://www.googleapis.com/auth/calendar"},
		{ScopeCalendarReadOnly, "https://www.googleapis.com/auth/calendar.readonly"},
		{ScopeCalendarEvents, "https://www.googleapis.com/auth/calendar.events"},
		{ScopeCalendarEventsFreeBusy, "https://www.googleapis.com/auth/calendar.events.freebusy"},
		{ScopeTasks, "https://www.googleapis.com/auth/tasks"},
		{ScopeTasksReadOnly, "https://www.googleapis.com/auth/tasks.readonly"},
		{ScopeMail, "https://mail.google.com/"},
		{ScopeMailModify, "https://www.googleapis.com/auth/gmail.modify"},
		{ScopeMailReadOnly, "https://www.googleapis.com/auth/gmail.readonly"},
		{ScopeMailMetadata, "https://www.googleapis.com/auth/gmail.metadata"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.scope.String())
	}
}

func TestJoinScopes(t *testing.T) {
	assert.Equal(t, "", JoinScopes(nil))
	assert.Equal(t, "https://www.googleapis.com/auth/tasks", JoinScopes([]Scope{ScopeTasks}))
	assert.Equal(t,
		"https://www.googleapis.com/auth/tasks https://mail.google.com/",
		JoinScopes([]Scope{ScopeTasks, ScopeMail}))
}
