package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/dushyant4342/crewai-email-automation/pkg/types"
)

// AnalysisTask builds the task description for the email reader agent.
// The labeled output format is what ParseAnalysis expects back.
func AnalysisTask(msg types.FetchedMessage) string {
	var b strings.Builder

	b.WriteString("Read and analyze the following email:\n\n")
	b.WriteString(fmt.Sprintf("From: %s\n", formatSender(msg)))
	b.WriteString(fmt.Sprintf("Subject: %s\n", orDefault(msg.Subject, "No Subject")))
	b.WriteString(fmt.Sprintf("Date: %s\n\n", formatDate(msg.Date)))
	b.WriteString("Content:\n")
	b.WriteString(orDefault(msg.BodyText, "No content"))
	b.WriteString("\n\n")
	b.WriteString("Extract and summarize:\n")
	b.WriteString("1. Who is the sender?\n")
	b.WriteString("2. What is the main purpose of this email?\n")
	b.WriteString("3. What are the key points that need to be addressed?\n")
	b.WriteString("4. What is the tone and urgency level?\n")
	b.WriteString("5. What information is needed to craft an appropriate response?\n\n")
	b.WriteString("Respond using exactly this format:\n")
	b.WriteString("Summary: <one paragraph summary>\n")
	b.WriteString("Intent: <the sender's main purpose>\n")
	b.WriteString("Key Points:\n")
	b.WriteString("- <point to address>\n")
	b.WriteString("Urgency: <low, normal, or high>\n")

	return b.String()
}

// DraftingTask builds the task description for the draft writer agent
// from a completed analysis.
func DraftingTask(analysis types.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("Based on the following email analysis, generate a professional email draft response:\n\n")
	b.WriteString(fmt.Sprintf("Summary: %s\n", analysis.Summary))
	b.WriteString(fmt.Sprintf("Sender intent: %s\n", analysis.Intent))
	if len(analysis.KeyPoints) > 0 {
		b.WriteString("Key points to address:\n")
		for _, point := range analysis.KeyPoints {
			b.WriteString(fmt.Sprintf("- %s\n", point))
		}
	}
	b.WriteString(fmt.Sprintf("Urgency: %s\n\n", analysis.Urgency))
	b.WriteString("The draft should:\n")
	b.WriteString("1. Be professional and appropriate in tone\n")
	b.WriteString("2. Address all key points from the original email\n")
	b.WriteString("3. Be clear and concise\n")
	b.WriteString("4. Include a proper greeting and closing\n")
	b.WriteString("5. Match the urgency level of the original email\n\n")
	b.WriteString("Start your response with a \"Subject:\" line, followed by the body of the reply.\n")

	return b.String()
}

func formatSender(msg types.FetchedMessage) string {
	if msg.SenderName != "" && msg.SenderEmail != "" {
		return fmt.Sprintf("%s <%s>", msg.SenderName, msg.SenderEmail)
	}
	return orDefault(msg.SenderEmail, "Unknown")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format(time.RFC1123Z)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
