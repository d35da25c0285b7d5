package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/tienganhkids/megatest/internal/megatest"
	"github.com/tienganhkids/megatest/internal/storage"
)

// DefaultModels is the fallback order: each model is tried in turn until one
// returns a usable document.
var DefaultModels = []string{
	openai.GPT4o,
	openai.GPT4oMini,
	openai.GPT4Turbo,
}

// OpenAIProvider generates tests through an OpenAI-compatible chat endpoint.
type OpenAIProvider struct {
	client    *openai.Client
	models    []string
	blueprint megatest.Blueprint
	archive   storage.BlobStore
	log       *logrus.Logger
}

// NewOpenAI builds a provider. baseURL may be empty for the public API; any
// OpenAI-compatible endpoint works. archive may be nil to skip transcript
// archiving.
func NewOpenAI(apiKey, baseURL string, models []string, bp megatest.Blueprint, archive storage.BlobStore, log *logrus.Logger) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if len(models) == 0 {
		models = DefaultModels
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(cfg),
		models:    models,
		blueprint: bp,
		archive:   archive,
		log:       log,
	}
}

// GenerateTest asks each model in order until one yields parseable JSON.
func (p *OpenAIProvider) GenerateTest(ctx context.Context, req Request) (json.RawMessage, error) {
	prompt := BuildPrompt(req, p.blueprint)

	var lastErr error
	for _, model := range p.models {
		doc, err := p.callModel(ctx, model, prompt)
		if err == nil {
			p.archiveTranscript(model, prompt, doc)
			return doc, nil
		}
		lastErr = err
		p.log.WithFields(logrus.Fields{
			"model": model,
			"level": req.Level,
		}).WithError(err).Warn("model failed, trying next")
	}
	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return nil, fmt.Errorf("all models failed: %w", lastErr)
}

func (p *OpenAIProvider) callModel(ctx context.Context, model, prompt string) (json.RawMessage, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You write English exercises for Vietnamese learners. Respond with a single JSON object.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty completion")
	}
	return ExtractJSON(resp.Choices[0].Message.Content)
}

// archiveTranscript stores prompt and reply for later review. Failures are
// logged, not surfaced: archiving never blocks generation.
func (p *OpenAIProvider) archiveTranscript(model, prompt string, doc json.RawMessage) {
	if p.archive == nil {
		return
	}
	rec := struct {
		Model     string          `json:"model"`
		CreatedAt time.Time       `json:"createdAt"`
		Prompt    string          `json:"prompt"`
		Document  json.RawMessage `json:"document"`
	}{model, time.Now().UTC(), prompt, doc}

	buf, err := json.Marshal(rec)
	if err != nil {
		return
	}
	key := fmt.Sprintf("transcripts/%s/%d.json", time.Now().UTC().Format("2006-01-02"), time.Now().UnixNano())
	if _, err := p.archive.Put(key, bytes.NewReader(buf)); err != nil {
		p.log.WithError(err).Warn("transcript archive failed")
	}
}
