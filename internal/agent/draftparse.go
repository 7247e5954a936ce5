package agent

import (
	"regexp"
	"strings"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

var (
	angleAddrPattern = regexp.MustCompile(`<([^>]+)>`)
	bareAddrPattern  = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	subjectLine      = regexp.MustCompile(`(?im)^subject:\s*(.+?)\s*$`)
	headerLine       = regexp.MustCompile(`(?im)^(subject|to|from|date):\s*.*$`)
)

// ExtractEmailAddress pulls an email address out of text like
// "Name <user@example.com>" or a bare address. Returns "" when no
// address is found.
func ExtractEmailAddress(text string) string {
	if m := angleAddrPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return bareAddrPattern.FindString(text)
}

// ParseDraft turns the draft agent's free-form output into a DraftMessage
// addressed back to the original sender. A "Subject:" line in the output
// wins; otherwise the reply subject is "Re: <original subject>". The
// subject always carries the Re: prefix so basic threading works even
// without headers.
func ParseDraft(text string, original types.FetchedMessage) types.DraftMessage {
	to := original.SenderEmail
	if to == "" {
		to = ExtractEmailAddress(original.SenderName)
	}

	subject := ""
	if m := subjectLine.FindStringSubmatch(text); m != nil {
		subject = strings.TrimSpace(m[1])
	}
	if subject == "" {
		subject = original.Subject
	}
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	// Strip any header-looking lines the model emitted; the wire headers
	// are built by the draft writer.
	body := headerLine.ReplaceAllString(text, "")
	body = strings.TrimSpace(body)

	return types.DraftMessage{
		InReplyTo:  original.MessageID,
		References: original.References,
		To:         to,
		Subject:    subject,
		Body:       body,
	}
}
