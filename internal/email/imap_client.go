package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"
	"github.com/sirupsen/logrus"

	"github.com/dushyant4342/crewai-email-automation/internal/config"
	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// Client wraps an IMAP client connection for one account. The same
// session serves both message fetching and draft creation.
type Client struct {
	config    *config.Config
	client    *client.Client
	logger    *logrus.Logger
	connected bool
}

// NewClient creates a new IMAP client (does not connect immediately)
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		config: cfg,
		logger: logger,
	}
}

// Connect establishes a connection to the IMAP server and authenticates.
func (c *Client) Connect() error {
	if c.connected && c.client != nil {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", c.config.IMAPHost, c.config.IMAPPort)

	cl, err := client.DialTLS(addr, &tls.Config{
		ServerName: c.config.IMAPHost,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return &ConnectivityError{Addr: addr, Err: err}
	}

	c.client = cl

	if err := c.client.Login(c.config.EmailAddress, c.config.EmailPassword); err != nil {
		c.logger.WithError(err).Error("Failed to login to IMAP server")
		c.client.Logout() //nolint:errcheck
		c.client = nil
		return &AuthError{Account: c.config.EmailAddress, Err: err}
	}

	c.connected = true
	c.logger.WithField("account", c.config.EmailAddress).Info("Connected to IMAP server")
	return nil
}

// Close closes the IMAP connection
func (c *Client) Close() error {
	if c.client != nil {
		if err := c.client.Logout(); err != nil {
			return err
		}
		c.client = nil
		c.connected = false
	}
	return nil
}

// FetchUnread fetches up to limit unread messages from the folder, in
// server order. Bodies are fetched with BODY.PEEK so the fetch does not
// set the \Seen flag on anything.
func (c *Client) FetchUnread(folder string, limit int) ([]types.FetchedMessage, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}

	if _, err := c.client.Select(folder, true); err != nil {
		return nil, &ProtocolError{Op: "select", Err: err}
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	ids, err := c.client.Search(criteria)
	if err != nil {
		return nil, &ProtocolError{Op: "search", Err: err}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Search results come back in mailbox order; keep the first limit.
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid, imap.FetchInternalDate, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	go func() {
		done <- c.client.Fetch(seqSet, items, messages)
	}()

	var fetched []types.FetchedMessage
	for msg := range messages {
		fetched = append(fetched, c.parseMessage(msg, section))
	}

	if err := <-done; err != nil {
		return nil, &ProtocolError{Op: "fetch", Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"folder": folder,
		"count":  len(fetched),
	}).Info("Fetched unread messages")

	return fetched, nil
}

// parseMessage parses an IMAP message into a FetchedMessage
func (c *Client) parseMessage(msg *imap.Message, section *imap.BodySectionName) types.FetchedMessage {
	fetched := types.FetchedMessage{
		UID: msg.Uid,
	}

	if msg.Envelope != nil {
		fetched.MessageID = msg.Envelope.MessageId
		fetched.Subject = msg.Envelope.Subject
		fetched.Date = msg.Envelope.Date
		fetched.InReplyTo = msg.Envelope.InReplyTo
		if len(msg.Envelope.From) > 0 {
			addr := msg.Envelope.From[0]
			fetched.SenderName = addr.PersonalName
			fetched.SenderEmail = addr.Address()
		}
	}
	if fetched.Date.IsZero() {
		fetched.Date = msg.InternalDate
	}

	literal := msg.GetBody(section)
	if literal == nil {
		c.logger.WithField("uid", msg.Uid).Error("Message body is nil")
		return fetched
	}

	bodyBytes, err := io.ReadAll(literal)
	if err != nil {
		c.logger.WithError(err).WithField("uid", msg.Uid).Error("Error reading message literal")
		return fetched
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(bodyBytes))
	if err != nil {
		// Fallback: use the raw bytes as body text
		c.logger.WithError(err).Debug("Failed to parse message with enmime, using raw body")
		fetched.BodyText = string(bodyBytes)
		return fetched
	}

	fetched.BodyText = env.Text
	fetched.References = env.GetHeader("References")
	if fetched.InReplyTo == "" {
		fetched.InReplyTo = env.GetHeader("In-Reply-To")
	}
	if fetched.MessageID == "" {
		fetched.MessageID = env.GetHeader("Message-ID")
	}

	return fetched
}
