// Package classify is the LLM-backed content classifier used by the
// harmonizer for page-level categories. Any OpenAI-compatible endpoint works.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"jobhunt-readme/internal/domain"
)

var (
	ErrNoClient      = errors.New("classify: no chat client configured")
	ErrEmptyResponse = errors.New("classify: empty model response")
)

// ChatClient is the subset of *openai.Client we use.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Classifier struct {
	Client ChatClient
	Model  string
	// SystemPrompt, when non-empty, replaces the default instructions.
	SystemPrompt string
}

// NewOpenAI builds a Classifier for baseURL (empty means api.openai.com).
func NewOpenAI(apiKey, baseURL, model string) *Classifier {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &Classifier{Client: openai.NewClientWithConfig(cfg), Model: model}
}

type response struct {
	Category           string  `json:"category"`
	IsAggregatorSource bool    `json:"isAggregatorSource"`
	AggregatorName     string  `json:"aggregatorName"`
	Confidence         float64 `json:"confidence"`
}

// ClassifyContent asks the model for the page's job category.
func (c *Classifier) ClassifyContent(ctx context.Context, page domain.Page) (domain.ContentMetadata, error) {
	if c == nil || c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return domain.ContentMetadata{}, ErrNoClient
	}
	sys := buildSystemMessage()
	if strings.TrimSpace(c.SystemPrompt) != "" {
		sys = c.SystemPrompt
	}
	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(page)},
		},
		Temperature: 0.0,
		N:           1,
	}
	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.ContentMetadata{}, fmt.Errorf("classify: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.ContentMetadata{}, ErrEmptyResponse
	}
	return parseResponse(resp.Choices[0].Message.Content)
}

func parseResponse(raw string) (domain.ContentMetadata, error) {
	raw = strings.TrimSpace(raw)
	// models like to wrap JSON in a code fence
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ContentMetadata{}, ErrEmptyResponse
	}

	var r response
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return domain.ContentMetadata{}, fmt.Errorf("classify: decode response: %w", err)
	}
	if strings.TrimSpace(r.Category) == "" {
		return domain.ContentMetadata{}, ErrEmptyResponse
	}
	return domain.ContentMetadata{
		Category:           strings.TrimSpace(r.Category),
		IsAggregatorSource: r.IsAggregatorSource,
		AggregatorName:     strings.TrimSpace(r.AggregatorName),
		Confidence:         min(max(r.Confidence, 0), 1),
	}, nil
}

func buildSystemMessage() string {
	return "You classify job-listing pages. Respond with strict JSON only: " +
		`{"category":string,"isAggregatorSource":bool,"aggregatorName":string,"confidence":number}. ` +
		"category is a short job family such as \"Software Engineering\", \"Data Science\", \"Quantitative Finance\" " +
		"or \"Product Management\"; never a generic label like \"Jobs\" or \"Daily List\". " +
		"isAggregatorSource is true when the page itself is a job board rather than a curated list. " +
		"confidence is between 0 and 1."
}

func buildUserMessage(page domain.Page) string {
	var sb strings.Builder
	sb.WriteString("Title: ")
	sb.WriteString(page.Title)
	sb.WriteString("\nURL: ")
	sb.WriteString(page.URL)
	if d := strings.TrimSpace(page.Description); d != "" {
		sb.WriteString("\nDescription: ")
		sb.WriteString(d)
	}
	if len(page.SampleHeaders) > 0 {
		sb.WriteString("\nTable headers: ")
		sb.WriteString(strings.Join(page.SampleHeaders, " | "))
	}
	return sb.String()
}
