// Package research looks up company and contact data through an online
// LLM search API (Perplexity). Results are best effort: every field may
// come back as "not found".
package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"leadscout/internal/model"
)

// DefaultBaseURL targets the public Perplexity API.
const DefaultBaseURL = "https://api.perplexity.ai"

const systemPrompt = "You are a research assistant for B2B sales. Research company data and " +
	"return it in structured form. Only report verified information; answer NOT_FOUND for " +
	"anything you cannot verify."

// PerplexityClient implements model.Researcher against the Perplexity
// chat-completions endpoint.
type PerplexityClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure PerplexityClient implements model.Researcher.
var _ model.Researcher = (*PerplexityClient)(nil)

// NewPerplexityClient creates a research client. An empty apiKey is
// allowed at construction time; Research then fails with ErrNotConfigured.
func NewPerplexityClient(baseURL, apiKey, modelName string, httpClient *http.Client, logger *slog.Logger) *PerplexityClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PerplexityClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      modelName,
		httpClient: httpClient,
		logger:     logger,
	}
}

// chatRequest mirrors the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the relevant fields of the API response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawResearch is the JSON shape the prompt asks the model for.
type rawResearch struct {
	Website           *string `json:"website"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	ContactName       *string `json:"contact_name"`
	ContactRole       *string `json:"contact_role"`
	ContactProfileURL *string `json:"contact_profile_url"`
}

// Research looks up company data. Fields the model could not verify come
// back nil. Returns ErrNotConfigured when no API key is set.
func (c *PerplexityClient) Research(ctx context.Context, req model.ResearchRequest) (*model.CompanyResearch, error) {
	if c.apiKey == "" {
		return nil, model.ErrNotConfigured
	}

	prompt, err := c.renderPrompt(req)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(content)
	if err != nil {
		c.logger.Warn("research reply had no parsable JSON", "company", req.CompanyName, "error", err)
		// An unparsable reply means "nothing found", not a hard failure.
		return &model.CompanyResearch{}, nil
	}

	return cleanResearch(raw), nil
}

func (c *PerplexityClient) renderPrompt(req model.ResearchRequest) (string, error) {
	parts := []string{"Company: " + req.CompanyName}
	if req.Location != "" {
		parts = append(parts, "Location: "+req.Location)
	}
	if req.JobTitle != "" {
		parts = append(parts, "Job posting: "+req.JobTitle)
	}

	var buf bytes.Buffer
	err := companyResearchTemplate.Execute(&buf, struct{ Context string }{
		Context: strings.Join(parts, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("render research prompt: %w", err)
	}
	return buf.String(), nil
}

// complete sends the prompt to the chat-completions endpoint and returns
// the first choice's content.
func (c *PerplexityClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("marshal research request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create research request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("research request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read research response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("research API: %s", strings.TrimSpace(string(respBytes))),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse research response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("research API returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// jsonObjectRegex finds the first flat JSON object in free-form model output.
var jsonObjectRegex = regexp.MustCompile(`(?s)\{[^{}]*\}`)

// extractJSON pulls the JSON object out of the model reply, tolerating
// surrounding prose or code fences.
func extractJSON(content string) (*rawResearch, error) {
	match := jsonObjectRegex.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}
	var raw rawResearch
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal research JSON: %w", err)
	}
	return &raw, nil
}

// cleanResearch drops not-found sentinels so they read as nil fields.
func cleanResearch(raw *rawResearch) *model.CompanyResearch {
	return &model.CompanyResearch{
		Website:           cleanField(raw.Website),
		Address:           cleanField(raw.Address),
		Email:             cleanField(raw.Email),
		ContactName:       cleanField(raw.ContactName),
		ContactRole:       cleanField(raw.ContactRole),
		ContactProfileURL: cleanField(raw.ContactProfileURL),
	}
}

// cleanField normalizes empty strings and NOT_FOUND markers to nil.
func cleanField(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	if strings.Contains(strings.ToUpper(s), "NOT_FOUND") || strings.EqualFold(s, "not found") {
		return nil
	}
	return &s
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
