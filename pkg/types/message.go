package types

import "time"

// FetchedMessage is one email pulled from the mailbox, parsed into the
// fields the pipeline needs. Instances are read-only after the fetch.
type FetchedMessage struct {
	UID         uint32    `json:"uid"`
	MessageID   string    `json:"message_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Subject     string    `json:"subject"`
	BodyText    string    `json:"body_text"`
	Date        time.Time `json:"date"`

	// Threading headers from the original message, carried so a reply
	// draft can chain References correctly.
	InReplyTo  string `json:"in_reply_to,omitempty"`
	References string `json:"references,omitempty"`
}

// Urgency classifies how quickly a message needs a response.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// AnalysisResult is the structured output of the email reader agent for a
// single fetched message.
type AnalysisResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Intent    string   `json:"intent"`
	Urgency   Urgency  `json:"urgency"`
}

// DraftMessage is a composed reply ready to be written to the drafts
// folder. Once persisted the remote mailbox owns it; the pipeline keeps
// no copy.
type DraftMessage struct {
	InReplyTo  string `json:"in_reply_to,omitempty"`
	References string `json:"references,omitempty"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}
