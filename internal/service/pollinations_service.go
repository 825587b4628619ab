package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	config "github.com/postforge/postforge/configs"
)

const textModel = "gpt-3.5-turbo"

// AIService wraps the Pollinations text and image generation endpoints.
// Every call is best-effort: failures are logged and reported as "nothing
// produced", never as errors.
type AIService interface {
	GenerateText(ctx context.Context, prompt string) (string, bool)
	GenerateImage(ctx context.Context, prompt string) (string, bool)
	ListTextModels(ctx context.Context) []json.RawMessage
	ListImageModels(ctx context.Context) []json.RawMessage
}

type pollinationsService struct {
	cfg         config.AIGateway
	client      *http.Client
	modelClient *http.Client
	now         func() time.Time
}

func NewPollinationsService(cfg config.AIGateway) AIService {
	return &pollinationsService{
		cfg:         cfg,
		client:      &http.Client{Timeout: cfg.Timeout},
		modelClient: &http.Client{Timeout: cfg.ModelTimeout},
		now:         time.Now,
	}
}

func (s *pollinationsService) GenerateText(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(map[string]any{
		"model": textModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  500,
		"temperature": 0.7,
	})
	if err != nil {
		slog.Error("failed to encode text generation request", "error", err)
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TextBaseURL+"/openai", bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to build text generation request", "error", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("text generation request failed", "prompt", prompt, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("text generation returned non-success status",
			"prompt", prompt, "status", resp.StatusCode, "response", string(detail))
		return "", false
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Error("failed to decode text generation response", "prompt", prompt, "error", err)
		return "", false
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == nil {
		return "", false
	}

	return *result.Choices[0].Message.Content, true
}

// GenerateImage builds the addressable image URL for the prompt and issues a
// GET purely to confirm the service can render it. The URL itself, not the
// image bytes, is the stored resource.
func (s *pollinationsService) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	imageURL := fmt.Sprintf("%s/prompt/%s?model=flux&v=%d",
		s.cfg.ImageBaseURL, url.QueryEscape(prompt), s.now().Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		slog.Error("failed to build image generation request", "error", err)
		return "", false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("image generation request failed", "prompt", prompt, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("image generation returned non-success status",
			"prompt", prompt, "status", resp.StatusCode, "response", string(detail))
		return "", false
	}

	return imageURL, true
}

func (s *pollinationsService) ListTextModels(ctx context.Context) []json.RawMessage {
	return s.listModels(ctx, s.cfg.TextBaseURL+"/models")
}

func (s *pollinationsService) ListImageModels(ctx context.Context) []json.RawMessage {
	return s.listModels(ctx, s.cfg.ImageBaseURL+"/models")
}

func (s *pollinationsService) listModels(ctx context.Context, endpoint string) []json.RawMessage {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("failed to build model listing request", "error", err)
		return []json.RawMessage{}
	}

	resp, err := s.modelClient.Do(req)
	if err != nil {
		slog.Error("model listing request failed", "endpoint", endpoint, "error", err)
		return []json.RawMessage{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("model listing returned non-success status",
			"endpoint", endpoint, "status", resp.StatusCode)
		return []json.RawMessage{}
	}

	var models []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		slog.Error("failed to decode model listing response", "endpoint", endpoint, "error", err)
		return []json.RawMessage{}
	}

	return models
}
