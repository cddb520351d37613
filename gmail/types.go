package gmail

// Message is a Gmail message. List responses populate only ID and
// ThreadID; Get returns the full resource.
type Message struct {
	// ID is the immutable ID of the message.
	ID string `json:"id,omitempty"`
	// ThreadID is the ID of the thread the message belongs to.
	ThreadID string `json:"threadId,omitempty"`
	// LabelIDs lists the labels applied to this message.
	LabelIDs []string `json:"labelIds,omitempty"`
	// Snippet is a short part of the message text.
	Snippet string `json:"snippet,omitempty"`
	// HistoryID is the last history record that modified this message.
	HistoryID string `json:"historyId,omitempty"`
	// InternalDate is the internal creation timestamp in epoch ms,
	// which determines ordering in the inbox.
	InternalDate string `json:"internalDate,omitempty"`
	// Payload is the parsed email structure.
	Payload *MessagePart `json:"payload,omitempty"`
	// SizeEstimate is the estimated size of the message in bytes.
	SizeEstimate int64 `json:"sizeEstimate,omitempty"`
	// Raw is the entire message, RFC 2822 formatted and base64url encoded.
	Raw string `json:"raw,omitempty"`
}

// MessagePart is one MIME part of a message.
type MessagePart struct {
	PartID   string           `json:"partId,omitempty"`
	MimeType string           `json:"mimeType,omitempty"`
	Filename string           `json:"filename,omitempty"`
	Headers  []Header         `json:"headers,omitempty"`
	Body     *MessagePartBody `json:"body,omitempty"`
	Parts    []MessagePart    `json:"parts,omitempty"`
}

// Header is a single RFC 2822 header on a message part.
type Header struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// MessagePartBody carries the body data of a message part.
type MessagePartBody struct {
	// Data is the body as a base64url encoded string.
	Data string `json:"data,omitempty"`
	// Size is the size of the body data in bytes.
	Size int64 `json:"size,omitempty"`
	// AttachmentID is set when the body is stored as an attachment.
	AttachmentID string `json:"attachmentId,omitempty"`
}

// MessageList is one page of a mailbox listing.
type MessageList struct {
	Messages           []Message `json:"messages,omitempty"`
	NextPageToken      string    `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64     `json:"resultSizeEstimate,omitempty"`
}

// modifyRequest is the JSON body for the messages.modify endpoint.
type modifyRequest struct {
	AddLabelIDs    []string `json:"addLabelIds,omitempty"`
	RemoveLabelIDs []string `json:"removeLabelIds,omitempty"`
}

// Format selects how much of a message the get endpoint returns.
type Format string

const (
	// FormatFull returns the parsed payload.
	FormatFull Format = "full"
	// FormatMetadata returns headers and metadata only.
	FormatMetadata Format = "metadata"
	// FormatMinimal returns ids and labels only.
	FormatMinimal Format = "minimal"
	// FormatRaw returns the base64url-encoded RFC 2822 message.
	FormatRaw Format = "raw"
)
