package email

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"

	"github.com/dushyant4342/crewai-email-automation/internal/config"
)

func testClient() *Client {
	return NewClient(&config.Config{}, nil)
}

// imapMessage builds a message the way a server response to a BODY.PEEK
// fetch parses: the body map is keyed by the non-peek section name, which
// a lookup with the peek section still matches.
func imapMessage(raw string) *imap.Message {
	respSection := &imap.BodySectionName{}
	return &imap.Message{
		Uid: 42,
		Envelope: &imap.Envelope{
			Date:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
			Subject: "Hello",
			From: []*imap.Address{
				{PersonalName: "Jane Doe", MailboxName: "jane", HostName: "example.com"},
			},
			MessageId: "<m1@example.com>",
		},
		Body: map[*imap.BodySectionName]imap.Literal{
			respSection: bytes.NewBufferString(raw),
		},
	}
}

func TestParseMessage(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	raw := "Message-ID: <m1@example.com>\r\n" +
		"In-Reply-To: <prev@example.com>\r\n" +
		"References: <root@example.com> <prev@example.com>\r\n" +
		"Subject: Hello\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Body text here.\r\n"

	fetched := testClient().parseMessage(imapMessage(raw), section)

	assert.Equal(t, uint32(42), fetched.UID)
	assert.Equal(t, "<m1@example.com>", fetched.MessageID)
	assert.Equal(t, "Hello", fetched.Subject)
	assert.Equal(t, "Jane Doe", fetched.SenderName)
	assert.Equal(t, "jane@example.com", fetched.SenderEmail)
	assert.Equal(t, "<prev@example.com>", fetched.InReplyTo)
	assert.Equal(t, "<root@example.com> <prev@example.com>", fetched.References)
	assert.Equal(t, "Body text here.", fetched.BodyText)
	assert.Equal(t, 2026, fetched.Date.Year())
}

func TestParseMessageMultipart(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	raw := "From: jane@example.com\r\n" +
		"Subject: Hello\r\n" +
		"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
		"\r\n" +
		"--b1\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Plain body.\r\n" +
		"--b1\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>HTML body.</p>\r\n" +
		"--b1--\r\n"

	fetched := testClient().parseMessage(imapMessage(raw), section)

	assert.Contains(t, fetched.BodyText, "Plain body.")
	assert.NotContains(t, fetched.BodyText, "<p>")
}

// A peek-section lookup must reach the body a server response stores
// under the non-peek section key.
func TestParseMessagePeekSectionFindsBody(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	raw := "Subject: Hello\r\nContent-Type: text/plain\r\n\r\nStill readable."

	msg := imapMessage(raw)
	assert.NotNil(t, msg.GetBody(section))

	fetched := testClient().parseMessage(msg, section)
	assert.Contains(t, fetched.BodyText, "Still readable.")
}

func TestParseMessageMissingBody(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	msg := imapMessage("")
	msg.Body = nil

	fetched := testClient().parseMessage(msg, section)

	assert.Empty(t, fetched.BodyText)
	assert.Equal(t, "<m1@example.com>", fetched.MessageID)
}
