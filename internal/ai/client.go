package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"mindline/internal/config"
	"mindline/internal/models"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client talks to one language-model provider. DeepSeek and OpenAI share the
// chat-completions wire shape and differ only in base URL; Gemini goes
// through the official SDK.
type Client struct {
	provider     string
	apiKey       string
	model        string
	baseURL      string
	httpClient   *http.Client
	geminiClient *genai.Client
}

// Default models per provider, used when AI_MODEL is unset.
const (
	defaultDeepSeekModel = "deepseek-chat"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// NewClient builds a client for cfg's provider. It returns an error only for
// misconfiguration that no later call could recover from; transient provider
// failures surface per-call instead.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	c := &Client{
		provider:   cfg.AIProvider,
		apiKey:     cfg.AIAPIKey,
		model:      cfg.AIModel,
		baseURL:    cfg.AIBaseURL,
		httpClient: &http.Client{Timeout: cfg.AITimeout},
	}

	switch cfg.AIProvider {
	case "deepseek":
		if c.baseURL == "" {
			c.baseURL = "https://api.deepseek.com/v1"
		}
		if c.model == "" {
			c.model = defaultDeepSeekModel
		}
		if c.apiKey == "" {
			return nil, fmt.Errorf("ai: deepseek provider configured without API key")
		}
	case "openai":
		if c.baseURL == "" {
			c.baseURL = "https://api.openai.com/v1"
		}
		if c.model == "" {
			c.model = defaultOpenAIModel
		}
		if c.apiKey == "" {
			return nil, fmt.Errorf("ai: openai provider configured without API key")
		}
	case "gemini":
		if c.model == "" {
			c.model = defaultGeminiModel
		}
		// Empty APIKey falls back to Application Default Credentials.
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.AIAPIKey})
		if err != nil {
			return nil, fmt.Errorf("ai: init gemini client: %w", err)
		}
		c.geminiClient = gc
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.AIProvider)
	}

	return c, nil
}

// Endpoint returns the URL probed by the reachability job.
func (c *Client) Endpoint() string {
	if c.provider == "gemini" {
		return "https://generativelanguage.googleapis.com"
	}
	return c.baseURL
}

// AskPrompt sends a raw prompt and returns the provider's text response.
func (c *Client) AskPrompt(ctx context.Context, prompt string) (string, error) {
	if c.provider == "gemini" {
		return c.askGemini(ctx, prompt)
	}
	return c.askChatCompletions(ctx, prompt)
}

func (c *Client) askChatCompletions(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: provider returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("ai: unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai: empty response from provider")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) askGemini(ctx context.Context, prompt string) (string, error) {
	if c.geminiClient == nil {
		return "", fmt.Errorf("ai: gemini client not initialized")
	}

	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := c.geminiClient.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("ai: no response candidates")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}
	return result.String(), nil
}

// contextualWire mirrors the JSON shape the prompt asks for. Level and
// urgency arrive as free-form strings and are normalized after decoding.
type contextualWire struct {
	RiskAssessment struct {
		Level            string  `json:"level"`
		Score            float64 `json:"score"`
		Confidence       float64 `json:"confidence"`
		NeedsAppointment bool    `json:"needsAppointment"`
	} `json:"riskAssessment"`
	EmotionalContext string   `json:"emotionalContext"`
	KeyConcerns      []string `json:"keyConcerns"`
	Recommendations  []string `json:"recommendations"`
	Urgency          string   `json:"urgency"`
}

// Assess sends the contextual prompt and parses the structured assessment
// out of the response. The response is untrusted: values are clamped and
// normalized, and anything unparsable is an error rather than a guess.
func (c *Client) Assess(ctx context.Context, prompt string) (*models.ContextualAssessment, error) {
	raw, err := c.AskPrompt(ctx, prompt)
	if err != nil {
		return nil, err
	}

	extracted := ExtractJSON(raw)
	if extracted == "" {
		return nil, fmt.Errorf("ai: no JSON object in response")
	}

	var wire contextualWire
	if err := json.Unmarshal([]byte(extracted), &wire); err != nil {
		return nil, fmt.Errorf("ai: decode assessment: %w", err)
	}

	level, ok := models.ParseRiskLevel(wire.RiskAssessment.Level)
	if !ok {
		return nil, fmt.Errorf("ai: unknown risk level %q", wire.RiskAssessment.Level)
	}

	score := int(wire.RiskAssessment.Score)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	confidence := wire.RiskAssessment.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &models.ContextualAssessment{
		Level:            level,
		Score:            score,
		Confidence:       confidence,
		NeedsAppointment: wire.RiskAssessment.NeedsAppointment,
		EmotionalContext: strings.TrimSpace(wire.EmotionalContext),
		KeyConcerns:      wire.KeyConcerns,
		Recommendations:  wire.Recommendations,
		Urgency:          models.NormalizeUrgency(wire.Urgency),
	}, nil
}

func stripMarkdownCodeFences(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "```") {
			continue
		}
		out = append(out, ln)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// ExtractJSON pulls the first valid JSON value out of an LLM response. It is
// robust against markdown code fences and prose surrounding the object.
func ExtractJSON(response string) string {
	s := stripMarkdownCodeFences(strings.TrimSpace(response))
	if s == "" {
		return ""
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '{' && ch != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		dec.UseNumber()
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
