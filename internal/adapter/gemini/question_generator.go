package gemini

import (
	"context"
	"fmt"
	"time"

	"versora/internal/config"
	"versora/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// Generation parameters favor diversity across a batch: quiz content must
// not repeat sub-concepts, so randomness is cranked up and the token ceiling
// is wide enough for 50 questions with explanations.
const (
	generationTemperature = 1.2
	generationTopP        = 0.98
	generationTopK        = 50
	generationMaxTokens   = 8192
)

// QuestionGenerator implements domain.QuestionGenerator against the Gemini
// generative-language API through langchaingo.
type QuestionGenerator struct {
	llm     *googleai.GoogleAI
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewQuestionGenerator creates a new Gemini-backed generator. The API key
// comes from injected configuration; an empty key is a constructor error,
// never a fallback.
func NewQuestionGenerator(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*QuestionGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("Initialized Gemini question generator", zap.String("model", cfg.Model))
	return &QuestionGenerator{
		llm:     llm,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// GenerateContent submits the prompt and returns the raw text reply. One
// bounded round-trip, no retry; the caller owns all parsing.
func (g *QuestionGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(generationTemperature),
		llms.WithTopP(generationTopP),
		llms.WithTopK(generationTopK),
		llms.WithMaxTokens(generationMaxTokens),
	)
	if err != nil {
		g.logger.Error("Gemini call failed",
			zap.Error(err),
			zap.String("model", g.model),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	g.logger.Debug("Gemini call completed",
		zap.String("model", g.model),
		zap.Int("reply_length", len(reply)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return reply, nil
}

var _ domain.QuestionGenerator = (*QuestionGenerator)(nil)
