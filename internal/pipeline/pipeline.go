// Package pipeline drives one batch run: fetch unread messages, analyze
// and draft each one through the agent crew, and persist the replies as
// drafts. Messages are processed sequentially and independently; a
// per-message failure never blocks the rest of the batch.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// State is a message's position in the per-message state machine.
type State string

const (
	StateFetched   State = "fetched"
	StateAnalyzed  State = "analyzed"
	StateDrafted   State = "drafted"
	StatePersisted State = "persisted"
	StateFailed    State = "failed"
)

// Fetcher retrieves a bounded batch of unread messages from a folder.
type Fetcher interface {
	FetchUnread(folder string, limit int) ([]types.FetchedMessage, error)
}

// Processor turns one fetched message into a reply draft in two steps.
type Processor interface {
	Analyze(ctx context.Context, msg types.FetchedMessage) (types.AnalysisResult, error)
	Draft(ctx context.Context, msg types.FetchedMessage, analysis types.AnalysisResult) (types.DraftMessage, error)
}

// DraftStore persists a composed draft and returns its id.
type DraftStore interface {
	CreateDraft(draft types.DraftMessage) (string, error)
}

// Failure records why one message did not make it to the drafts folder.
type Failure struct {
	MessageID string
	Stage     State
	Err       error
}

// Report is the final tally for one run.
type Report struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Pipeline sequences fetch, analysis, drafting, and persistence.
type Pipeline struct {
	fetcher   Fetcher
	processor Processor
	store     DraftStore
	folder    string
	limit     int
	logger    *logrus.Logger
}

// New creates a pipeline over the given collaborators.
func New(fetcher Fetcher, processor Processor, store DraftStore, folder string, limit int, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		fetcher:   fetcher,
		processor: processor,
		store:     store,
		folder:    folder,
		limit:     limit,
		logger:    logger,
	}
}

// Run executes one batch. A fetch failure aborts the whole run and is
// returned as the error; failures after the fetch are recorded in the
// report and processing continues with the next message.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	messages, err := p.fetcher.FetchUnread(p.folder, p.limit)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if len(messages) == 0 {
		p.logger.Info("No unread messages to process")
		return report, nil
	}

	for i, msg := range messages {
		log := p.logger.WithFields(logrus.Fields{
			"message_id": msg.MessageID,
			"from":       msg.SenderEmail,
			"subject":    msg.Subject,
			"index":      i + 1,
			"total":      len(messages),
		})
		log.Info("Processing message")

		if err := p.process(ctx, msg, report); err != nil {
			log.WithError(err).Warn("Message failed")
			continue
		}
		log.Info("Draft persisted")
	}

	report.Succeeded = len(messages) - report.Failed
	return report, nil
}

// process walks one message through fetched -> analyzed -> drafted ->
// persisted, recording the failed stage on the first error.
func (p *Pipeline) process(ctx context.Context, msg types.FetchedMessage, report *Report) error {
	state := StateFetched

	analysis, err := p.processor.Analyze(ctx, msg)
	if err != nil {
		return p.fail(report, msg, state, err)
	}
	state = StateAnalyzed

	draft, err := p.processor.Draft(ctx, msg, analysis)
	if err != nil {
		return p.fail(report, msg, state, err)
	}
	state = StateDrafted

	if _, err := p.store.CreateDraft(draft); err != nil {
		return p.fail(report, msg, state, err)
	}

	return nil
}

func (p *Pipeline) fail(report *Report, msg types.FetchedMessage, stage State, err error) error {
	report.Failed++
	report.Failures = append(report.Failures, Failure{
		MessageID: msg.MessageID,
		Stage:     stage,
		Err:       err,
	})
	return err
}
