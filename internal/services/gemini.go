package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type GeminiService interface {
	StructuredGenerator
	Embedder
}

// Embedder turns text into a vector for the resume index.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// GeminiOptions configures the Gemini client. BaseURL is only set in tests.
type GeminiOptions struct {
	APIKey     string
	Model      string
	EmbedModel string
	BaseURL    string
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

const maxEmbeddingChars = 40000

func NewGeminiService(ctx context.Context, opts GeminiOptions) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-3-flash-preview"
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = "text-embedding-004"
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logrus.WithField("model", opts.Model).Info("🔑 Gemini client configured")

	return &geminiService{
		client:     client,
		modelName:  opts.Model,
		embedModel: opts.EmbedModel,
	}, nil
}

// GenerateStructured implements StructuredGenerator.
func (g *geminiService) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.WithSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		text = resp.Text()
	}
	if text == "" {
		reason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("%w (finish reason: %s)", ErrEmptyCompletion, reason)
	}

	logrus.WithFields(logrus.Fields{
		"op":            req.Op,
		"model":         g.modelName,
		"response_size": len(text),
	}).Debug("📊 Gemini response received")

	return text, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbeddingChars)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, errors.New("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
