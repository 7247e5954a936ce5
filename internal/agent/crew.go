package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// Crew sequences the two agents for one message: the reader analyzes the
// email, then the draft writer turns that analysis into a reply. Tasks
// run sequentially; the first failure aborts processing for that message.
type Crew struct {
	runtime Runtime
	reader  Config
	drafter Config
	logger  *logrus.Logger
}

// NewCrew creates a crew backed by the given runtime.
func NewCrew(runtime Runtime, logger *logrus.Logger) *Crew {
	if logger == nil {
		logger = logrus.New()
	}
	return &Crew{
		runtime: runtime,
		reader:  EmailReader(),
		drafter: DraftGenerator(),
		logger:  logger,
	}
}

// Analyze runs the reader agent on one message and parses its output.
func (c *Crew) Analyze(ctx context.Context, msg types.FetchedMessage) (types.AnalysisResult, error) {
	out, err := c.runtime.Run(ctx, c.reader, AnalysisTask(msg))
	if err != nil {
		return types.AnalysisResult{}, err
	}

	analysis := ParseAnalysis(out)
	c.logger.WithFields(logrus.Fields{
		"message_id": msg.MessageID,
		"urgency":    analysis.Urgency,
		"key_points": len(analysis.KeyPoints),
	}).Debug("Email analyzed")

	return analysis, nil
}

// Draft runs the draft writer agent on a completed analysis and shapes
// the output into a reply to the original message.
func (c *Crew) Draft(ctx context.Context, msg types.FetchedMessage, analysis types.AnalysisResult) (types.DraftMessage, error) {
	out, err := c.runtime.Run(ctx, c.drafter, DraftingTask(analysis))
	if err != nil {
		return types.DraftMessage{}, err
	}
	return ParseDraft(out, msg), nil
}
