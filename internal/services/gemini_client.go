package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/studypulse-backend/internal/logger"
)

// TextGenerator is the narrow contract the analysis engine needs from a
// text-generation provider. Implementations must treat the call as a
// single blocking operation; callers handle all failure recovery.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (*TextResult, error)
	Model() string
}

type TextResult struct {
	Text  string
	Usage TokenUsage
}

type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type geminiClient struct {
	log     *logger.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient builds the Gemini-backed TextGenerator. The API key is
// read once here; a missing key fails process startup rather than the
// first dashboard request.
func NewGeminiClient(ctx context.Context, log *logger.Logger) (TextGenerator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	timeoutSec := 10
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &geminiClient{
		log:     log.With("service", "GeminiClient"),
		client:  client,
		model:   model,
		timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (*TextResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	result, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty response")
	}

	res := &TextResult{Text: text}
	if result.UsageMetadata != nil {
		res.Usage = TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return res, nil
}

func (c *geminiClient) Model() string {
	return c.model
}
