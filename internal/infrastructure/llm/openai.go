// Package llm implements the classification merge against an OpenAI chat
// model under a structured-output contract.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
	"github.com/ayaStable/news-tweets-scraper/internal/retry"
)

// Classifier submits one request per run and parses the JSON-object reply.
type Classifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	policy  retry.Policy
	logger  *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

// NewClassifier builds a client from configuration.
func NewClassifier(cfg config.OpenAIConfig, logger *slog.Logger) *Classifier {
	policy := retry.DefaultPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}

	return &Classifier{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: cfg.Timeout(),
		policy:  policy,
		logger:  logger,
	}
}

// Classify sends the corpus plus taxonomy and returns the parsed result
// along with the verbatim response bytes. The raw bytes are returned even
// when the response violates the schema, so callers can persist them.
func (c *Classifier) Classify(ctx context.Context, corpus []byte, categories []domain.Category) (domain.Classification, []byte, error) {
	catJSON, err := json.Marshal(categories)
	if err != nil {
		return domain.Classification{}, nil, fmt.Errorf("marshal categories: %w", err)
	}
	prompt := fmt.Sprintf(userPromptTemplate, corpus, catJSON)

	var content string
	err = retry.Do(ctx, c.policy, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.model,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("model call failed", "error", err)
			}
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("model returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return domain.Classification{}, nil, fmt.Errorf("model call: %w", err)
	}

	raw := []byte(content)
	classification, err := parseResponse(raw)
	if err != nil {
		return domain.Classification{}, raw, err
	}
	return classification, raw, nil
}
