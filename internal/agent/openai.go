package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultModel       = "gpt-4"
	defaultTemperature = 0.7
	apiURL             = "https://api.openai.com/v1/chat/completions"
)

// OpenAIRuntime runs agent tasks against the OpenAI chat completions API.
type OpenAIRuntime struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	client      *http.Client
}

// NewOpenAIRuntime creates a runtime with the given API key.
func NewOpenAIRuntime(apiKey string) *OpenAIRuntime {
	return &OpenAIRuntime{
		apiKey:      apiKey,
		model:       defaultModel,
		temperature: defaultTemperature,
		baseURL:     apiURL,
		client:      &http.Client{},
	}
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model       string       `json:"model"`
	Temperature float64      `json:"temperature"`
	Messages    []apiMessage `json:"messages"`
}

type apiResponse struct {
	Choices []struct {
		Message apiMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Run executes one agent task. The agent config becomes the system
// prompt; the task description becomes the user prompt.
func (r *OpenAIRuntime) Run(ctx context.Context, cfg Config, task string) (string, error) {
	reqBody := apiRequest{
		Model:       r.model,
		Temperature: r.temperature,
		Messages: []apiMessage{
			{Role: "system", Content: systemPrompt(cfg)},
			{Role: "user", Content: task},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ModelError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ModelError{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &ModelError{Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ModelError{Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", &ModelError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("provider error")
		if parsed.Error != nil {
			apiErr = fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &QuotaError{Err: apiErr}
		}
		return "", &ModelError{Status: resp.StatusCode, Err: apiErr}
	}

	if len(parsed.Choices) == 0 {
		return "", &ModelError{Status: resp.StatusCode, Err: fmt.Errorf("response contained no choices")}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// systemPrompt composes the agent's role, goal, and backstory into one
// system message, the way the orchestration framework frames its agents.
func systemPrompt(cfg Config) string {
	return fmt.Sprintf("You are %s. %s\n\nYour goal: %s", cfg.Role, cfg.Backstory, cfg.Goal)
}
