package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OpenAIConfig defines configuration options for the OpenAI draft generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIDraftGenerator implements DraftGenerator against the OpenAI chat
// completion API.
type OpenAIDraftGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIDraftGenerator builds a generator using the provided configuration.
func NewOpenAIDraftGenerator(cfg OpenAIConfig) (*OpenAIDraftGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	return &OpenAIDraftGenerator{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/noah-isme/tuition-go-api/pkg/ai/openai"),
		logger: cfg.Logger.With().Str("component", "ai_draft_generator").Logger(),
	}, nil
}

// GenerateDraft sends the draft request to OpenAI and returns the text.
func (g *OpenAIDraftGenerator) GenerateDraft(parent context.Context, input DraftInput) (DraftResult, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate_draft", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
		attribute.Int("class_grade", input.ClassGrade),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: draftSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildDraftPrompt(input),
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return DraftResult{}, fmt.Errorf("openai generate draft: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return DraftResult{}, err
	}

	g.logger.Debug().
		Str("model", g.cfg.Model).
		Dur("duration", time.Since(start)).
		Msg("assignment draft generated")

	return DraftResult{Content: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

func draftSystemPrompt() string {
	return "You are an experienced tuition-center teacher. Produce a homework " +
		"assignment draft with a short title, a description, and five to ten " +
		"questions appropriate for the given class grade. Respond in plain text."
}

func buildDraftPrompt(input DraftInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Class grade: %d\n", input.ClassGrade)
	if input.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	}
	return b.String()
}
