package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/deckraid/deckraid-api/internal/config"
	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/generation"
)

// promptTemplateText asks the model for strictly-JSON flashcards. The
// response MIME type is also pinned to JSON in the request config, but the
// instruction keeps weaker models honest.
const promptTemplateText = `You are a flashcard author. Write {{.Count}} flashcards about the topic below.

Topic: {{.Topic}}

Respond with JSON only, in this exact shape:
{"cards": [{"front": "...", "back": "...", "tags": ["..."]}]}

Each front is a single clear question or prompt. Each back is the answer,
kept short enough to grade at a glance. Tags are optional lowercase labels.`

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed card generator. It validates the
// LLM configuration and establishes the API client.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("flashcard").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.Model,
	}, nil
}

// GenerateCards asks the model for count flashcards about topic and maps
// the reply onto validated domain cards for the given deck.
func (g *Generator) GenerateCards(ctx context.Context, topic string, deckID uuid.UUID, count int) ([]*domain.Card, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if deckID == uuid.Nil {
		return nil, errors.New("deck ID cannot be empty")
	}
	if count <= 0 {
		count = 5
	}

	prompt, err := g.createPrompt(topic, count)
	if err != nil {
		return nil, err
	}

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response, deckID)
}

func (g *Generator) createPrompt(topic string, count int) (string, error) {
	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{Topic: topic, Count: count}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Permanent errors (blocked content, malformed replies) return immediately;
// everything else is assumed transient and retried up to MaxRetries times.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		response, err := g.callOnce(ctx, prompt)
		if err == nil {
			g.logger.InfoContext(ctx, "gemini call succeeded", slog.Int("attempt", attempt+1))
			return response, nil
		}

		g.logger.ErrorContext(ctx, "gemini call failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return nil, err
		}
		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *Generator) callOnce(ctx context.Context, prompt string) (*responseSchema, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	return &parsed, nil
}

// parseResponse converts the model's reply into domain cards, rejecting the
// whole batch if any card is missing a face.
func (g *Generator) parseResponse(ctx context.Context, response *responseSchema, deckID uuid.UUID) ([]*domain.Card, error) {
	if response == nil || len(response.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", generation.ErrInvalidResponse)
	}

	cards := make([]*domain.Card, 0, len(response.Cards))
	for i, cs := range response.Cards {
		if cs.Front == "" {
			return nil, fmt.Errorf("%w: card %d missing front side", generation.ErrInvalidResponse, i)
		}
		if cs.Back == "" {
			return nil, fmt.Errorf("%w: card %d missing back side", generation.ErrInvalidResponse, i)
		}
		card, err := domain.NewCard(deckID, cs.Front, cs.Back, cs.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to create card: %w", err)
		}
		cards = append(cards, card)
	}

	g.logger.InfoContext(ctx, "parsed gemini response",
		slog.Int("cards", len(cards)),
		slog.String("deck_id", deckID.String()))
	return cards, nil
}
