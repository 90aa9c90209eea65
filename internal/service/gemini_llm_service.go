package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrLLMUnavailable is returned when no API key was configured.
var ErrLLMUnavailable = errors.New("gemini client not initialized")

// Attachment is an inline document sent along with a prompt.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// GeminiLLMService sends one prompt to the model and returns its reply as a
// cleaned JSON document.
type GeminiLLMService interface {
	GenerateJSON(ctx context.Context, operation, prompt string, attachments ...Attachment) ([]byte, error)
}

type geminiLLMService struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.GeminiModel)
	model.ResponseMIMEType = "application/json"
	return &geminiLLMService{client: client, model: model, cfg: cfg}, nil
}

func (s *geminiLLMService) GenerateJSON(ctx context.Context, operation, prompt string, attachments ...Attachment) ([]byte, error) {
	if s.model == nil {
		return nil, apperror.Upstream(operation, ErrLLMUnavailable)
	}

	parts := make([]genai.Part, 0, len(attachments)+1)
	parts = append(parts, genai.Text(prompt))
	for _, a := range attachments {
		parts = append(parts, genai.Blob{MIMEType: a.MIMEType, Data: a.Data})
	}

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		metrics.ObserveAICall(operation, "error", time.Since(start))
		log.Error().Err(err).Str("operation", operation).Msg("Gemini API error")
		return nil, apperror.Upstream(operation, err)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	if text.Len() == 0 {
		metrics.ObserveAICall(operation, "malformed", time.Since(start))
		log.Warn().Str("operation", operation).Msg("Gemini returned no candidates or parts in response.")
		return nil, apperror.Malformed("model returned no text content", nil)
	}

	metrics.ObserveAICall(operation, "success", time.Since(start))
	log.Debug().Str("operation", operation).Dur("latency", time.Since(start)).Msg("Gemini call completed")
	return []byte(CleanJSON(text.String())), nil
}

// Close releases the underlying client.
func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
