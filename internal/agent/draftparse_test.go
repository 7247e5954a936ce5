package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

func TestExtractEmailAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe <jane@example.com>", "jane@example.com"},
		{"jane@example.com", "jane@example.com"},
		{"reply to jane.doe-2@mail.example.co.uk please", "jane.doe-2@mail.example.co.uk"},
		{"no address here", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractEmailAddress(tt.in), "input %q", tt.in)
	}
}

func TestParseDraftSubjectFromModelOutput(t *testing.T) {
	original := types.FetchedMessage{
		MessageID:   "<orig@example.com>",
		References:  "<earlier@example.com>",
		SenderEmail: "jane@example.com",
		Subject:     "Project timeline",
	}
	text := "Subject: Updated project timeline\n\nHi Jane,\n\nHere is the update.\n\nBest,\nMe"

	draft := ParseDraft(text, original)

	assert.Equal(t, "jane@example.com", draft.To)
	assert.Equal(t, "Re: Updated project timeline", draft.Subject)
	assert.Equal(t, "<orig@example.com>", draft.InReplyTo)
	assert.Equal(t, "<earlier@example.com>", draft.References)
	assert.NotContains(t, draft.Body, "Subject:")
	assert.Contains(t, draft.Body, "Hi Jane,")
}

func TestParseDraftDefaultsToOriginalSubject(t *testing.T) {
	original := types.FetchedMessage{
		SenderEmail: "jane@example.com",
		Subject:     "Project timeline",
	}

	draft := ParseDraft("Hi Jane,\n\nSounds good.", original)

	assert.Equal(t, "Re: Project timeline", draft.Subject)
}

func TestParseDraftKeepsExistingRePrefix(t *testing.T) {
	original := types.FetchedMessage{
		SenderEmail: "jane@example.com",
		Subject:     "Re: Project timeline",
	}

	draft := ParseDraft("Subject: RE: Project timeline\n\nAgreed.", original)

	assert.Equal(t, "RE: Project timeline", draft.Subject)
}

func TestParseDraftStripsHeaderLines(t *testing.T) {
	original := types.FetchedMessage{SenderEmail: "jane@example.com", Subject: "Hello"}
	text := "To: jane@example.com\nFrom: me@example.com\nDate: today\nSubject: Re: Hello\n\nHi Jane,\nThanks."

	draft := ParseDraft(text, original)

	assert.Equal(t, "Hi Jane,\nThanks.", draft.Body)
}

func TestParseDraftRecipientFromSenderName(t *testing.T) {
	original := types.FetchedMessage{
		SenderName: "Jane Doe <jane@example.com>",
		Subject:    "Hello",
	}

	draft := ParseDraft("Hi.", original)

	assert.Equal(t, "jane@example.com", draft.To)
}
