// Package gmail provides typed request builders for the Gmail API's
// messages resource: listing a mailbox, fetching one message, and
// modifying its labels. Builders are mode-specific; listing filters are
// not reachable from a get or modify.
package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/transport"
)

const gmailBaseURL = "https://gmail.googleapis.com/gmail/v1/users"

// ErrModifyNotInitialized is returned when a modify request is issued
// without a label change payload.
var ErrModifyNotInitialized = errors.New("gmail: modify payload not initialized")

var limiter = transport.NewRateLimiter(transport.ServiceGmail)

// Messages is the entry point for message requests on behalf of one
// authenticated client.
type Messages struct {
	mgr *auth.Client
}

// NewMessages creates a messages request factory bound to the given client.
func NewMessages(mgr *auth.Client) *Messages {
	return &Messages{mgr: mgr}
}

func newRequest(method, url string) transport.Request {
	req := transport.NewRequest()
	req.Method = method
	req.URL = url
	req.Limiter = limiter
	return req
}

// List starts a mailbox listing for the given user ("me" for the
// authenticated account).
func (m *Messages) List(userID string) *ListBuilder {
	return &ListBuilder{
		mgr: m.mgr,
		req: newRequest(http.MethodGet, fmt.Sprintf("%s/%s/messages", gmailBaseURL, userID)),
	}
}

// Get fetches one message by id.
func (m *Messages) Get(userID, messageID string) *GetBuilder {
	return &GetBuilder{
		mgr: m.mgr,
		req: newRequest(http.MethodGet, fmt.Sprintf("%s/%s/messages/%s", gmailBaseURL, userID, messageID)),
	}
}

// Modify starts a label modification on one message.
func (m *Messages) Modify(userID, messageID string) *ModifyBuilder {
	return &ModifyBuilder{
		mgr:  m.mgr,
		req:  newRequest(http.MethodPost, fmt.Sprintf("%s/%s/messages/%s/modify", gmailBaseURL, userID, messageID)),
		body: &modifyRequest{},
	}
}

// ListBuilder lists messages in a mailbox.
type ListBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// IncludeSpamTrash includes SPAM and TRASH messages in the results.
func (b *ListBuilder) IncludeSpamTrash(include bool) *ListBuilder {
	b.req.SetParam("includeSpamTrash", strconv.FormatBool(include))
	return b
}

// PageToken resumes a listing from a previous page.
func (b *ListBuilder) PageToken(token string) *ListBuilder {
	b.req.SetParam("pageToken", token)
	return b
}

// MaxResults caps the number of messages per page.
func (b *ListBuilder) MaxResults(max int64) *ListBuilder {
	b.req.SetParam("maxResults", strconv.FormatInt(max, 10))
	return b
}

// Query filters messages with Gmail search syntax, e.g. "from:someone".
func (b *ListBuilder) Query(q string) *ListBuilder {
	b.req.SetParam("q", q)
	return b
}

// LabelIDs restricts the listing to messages carrying all given labels.
// labelIds is a repeated query parameter on the wire, one value per label.
func (b *ListBuilder) LabelIDs(ids ...string) *ListBuilder {
	for _, id := range ids {
		b.req.Params.Add("labelIds", id)
	}
	return b
}

// Request issues the listing. The token refresh check runs first.
func (b *ListBuilder) Request(ctx context.Context) (*MessageList, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[MessageList](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// GetBuilder fetches one message.
type GetBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// Format selects how much of the message is returned.
func (b *GetBuilder) Format(f Format) *GetBuilder {
	b.req.SetParam("format", string(f))
	return b
}

// MetadataHeaders restricts metadata format responses to these headers.
func (b *GetBuilder) MetadataHeaders(names ...string) *GetBuilder {
	b.req.SetParam("metadataHeaders", strings.Join(names, ","))
	return b
}

// Request issues the fetch.
func (b *GetBuilder) Request(ctx context.Context) (*Message, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Message](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// ModifyBuilder changes the labels on one message.
type ModifyBuilder struct {
	mgr  *auth.Client
	req  transport.Request
	body *modifyRequest
}

// AddLabelIDs adds labels to the message.
func (b *ModifyBuilder) AddLabelIDs(ids ...string) *ModifyBuilder {
	b.body.AddLabelIDs = append(b.body.AddLabelIDs, ids...)
	return b
}

// RemoveLabelIDs removes labels from the message.
func (b *ModifyBuilder) RemoveLabelIDs(ids ...string) *ModifyBuilder {
	b.body.RemoveLabelIDs = append(b.body.RemoveLabelIDs, ids...)
	return b
}

// Request issues the modification and returns the updated message.
func (b *ModifyBuilder) Request(ctx context.Context) (*Message, error) {
	if b.body == nil {
		return nil, ErrModifyNotInitialized
	}
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Message](ctx, b.mgr.HTTPClient(), b.req, b.body)
}
