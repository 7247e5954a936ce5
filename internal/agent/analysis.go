package agent

import (
	"strings"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// ParseAnalysis extracts a structured AnalysisResult from the reader
// agent's labeled output. The parser is tolerant: an unlabeled response
// still yields a usable result with the whole text as the summary and
// normal urgency.
func ParseAnalysis(text string) types.AnalysisResult {
	result := types.AnalysisResult{
		Urgency: types.UrgencyNormal,
	}

	inKeyPoints := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		switch {
		case strings.HasPrefix(lower, "summary:"):
			inKeyPoints = false
			result.Summary = strings.TrimSpace(trimmed[len("summary:"):])
		case strings.HasPrefix(lower, "sender intent:"):
			inKeyPoints = false
			result.Intent = strings.TrimSpace(trimmed[len("sender intent:"):])
		case strings.HasPrefix(lower, "intent:"):
			inKeyPoints = false
			result.Intent = strings.TrimSpace(trimmed[len("intent:"):])
		case strings.HasPrefix(lower, "urgency:"):
			inKeyPoints = false
			result.Urgency = parseUrgency(trimmed[len("urgency:"):])
		case strings.HasPrefix(lower, "key points:"):
			inKeyPoints = true
			// Points may also follow inline on the same line.
			if rest := strings.TrimSpace(trimmed[len("key points:"):]); rest != "" {
				result.KeyPoints = append(result.KeyPoints, rest)
			}
		case inKeyPoints && isBullet(trimmed):
			result.KeyPoints = append(result.KeyPoints, stripBullet(trimmed))
		default:
			inKeyPoints = false
		}
	}

	if result.Summary == "" {
		result.Summary = strings.TrimSpace(text)
	}

	return result
}

func parseUrgency(s string) types.Urgency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return types.UrgencyLow
	case "high":
		return types.UrgencyHigh
	default:
		return types.UrgencyNormal
	}
}

func isBullet(s string) bool {
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*") || strings.HasPrefix(s, "•")
}

func stripBullet(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, "-*• "))
}
