package email

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// DraftWriter stores composed replies in the account's drafts folder over
// the shared IMAP session. Creating the same draft twice stores two
// separate drafts; the server does not deduplicate.
type DraftWriter struct {
	client *Client
	logger *logrus.Logger
}

// NewDraftWriter creates a draft writer on top of an existing client.
func NewDraftWriter(c *Client, logger *logrus.Logger) *DraftWriter {
	if logger == nil {
		logger = logrus.New()
	}
	return &DraftWriter{
		client: c,
		logger: logger,
	}
}

// CreateDraft serializes the draft and appends it to the drafts folder
// with the \Draft flag. It returns the Message-ID generated for the
// draft, which serves as its identifier.
func (w *DraftWriter) CreateDraft(draft types.DraftMessage) (string, error) {
	if err := w.client.Connect(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), w.client.config.IMAPHost)
	raw := BuildDraftMessage(w.client.config.EmailAddress, draft, messageID, time.Now())

	var folder string
	var appendErr error
	for _, candidate := range draftFolderCandidates(w.client.config.DraftsFolder) {
		if appendErr = w.append(candidate, raw); appendErr == nil {
			folder = candidate
			break
		}
		w.logger.WithError(appendErr).WithField("folder", candidate).Warn("Append to drafts folder failed")
	}

	if folder == "" {
		discovered, findErr := w.findDraftsFolder()
		if findErr != nil {
			return "", findErr
		}
		if discovered == "" {
			return "", &ProtocolError{Op: "append", Err: fmt.Errorf("no drafts folder found: %w", appendErr)}
		}
		if err := w.append(discovered, raw); err != nil {
			return "", &ProtocolError{Op: "append", Err: err}
		}
		folder = discovered
	}

	w.logger.WithFields(logrus.Fields{
		"folder":   folder,
		"to":       draft.To,
		"draft_id": messageID,
	}).Info("Draft created")

	return messageID, nil
}

// draftFolderCandidates returns the folders to try appending to, in
// order: the configured folder, then the conventional "Drafts" name
// when it differs. A folder is never tried twice.
func draftFolderCandidates(configured string) []string {
	if configured == "" || configured == "Drafts" {
		return []string{"Drafts"}
	}
	return []string{configured, "Drafts"}
}

func (w *DraftWriter) append(folder string, raw []byte) error {
	return w.client.client.Append(folder, []string{imap.DraftFlag}, time.Now(), bytes.NewBuffer(raw))
}

// findDraftsFolder lists mailboxes and returns the first one whose name
// contains "draft", matching how Gmail variants name the folder.
func (w *DraftWriter) findDraftsFolder() (string, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- w.client.client.List("", "*", mailboxes)
	}()

	var found string
	for m := range mailboxes {
		if found == "" && strings.Contains(strings.ToLower(m.Name), "draft") {
			found = m.Name
		}
	}

	if err := <-done; err != nil {
		return "", &ProtocolError{Op: "list", Err: err}
	}
	return found, nil
}

// BuildDraftMessage serializes a draft into RFC822 wire format. When the
// draft replies to an existing message it carries In-Reply-To and a
// References chain ending in the original Message-ID so mail clients
// thread the draft under the original.
func BuildDraftMessage(from string, draft types.DraftMessage, messageID string, date time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", draft.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", draft.Subject))
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", date.Format(time.RFC1123Z)))
	buf.WriteString(fmt.Sprintf("Message-ID: %s\r\n", messageID))

	if draft.InReplyTo != "" {
		buf.WriteString(fmt.Sprintf("In-Reply-To: %s\r\n", draft.InReplyTo))
		if refs := referencesChain(draft.References, draft.InReplyTo); refs != "" {
			buf.WriteString(fmt.Sprintf("References: %s\r\n", refs))
		}
	}

	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(draft.Body)

	return buf.Bytes()
}

// referencesChain builds the References header for a reply: the original
// message's References followed by its Message-ID, without duplicates.
func referencesChain(references, inReplyTo string) string {
	var parts []string
	seen := make(map[string]bool)

	for _, ref := range strings.Fields(references) {
		if !seen[ref] {
			parts = append(parts, ref)
			seen[ref] = true
		}
	}
	if inReplyTo != "" && !seen[inReplyTo] {
		parts = append(parts, inReplyTo)
	}

	return strings.Join(parts, " ")
}
