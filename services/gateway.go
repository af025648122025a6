package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brisaweb/marketing-site-backend/config"
	"github.com/brisaweb/marketing-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AIGateway talks to the external generation service. The service speaks
// the OpenAI chat-completions dialect: text generation goes through the
// langchaingo client with a JSON response format, image generation posts
// a chat request with an image modality and returns the image embedded
// as a base64 data URL.
type AIGateway struct {
	llm        *openai.LLM
	baseURL    string
	apiKey     string
	imageModel string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAIGateway builds a gateway client from configuration. Required
// keys: AI_GATEWAY_URL, AI_GATEWAY_API_KEY. Optional: AI_TEXT_MODEL,
// AI_IMAGE_MODEL.
func NewAIGateway(cfg map[string]string) (*AIGateway, error) {
	baseURL := config.GetString(cfg, "AI_GATEWAY_URL", "")
	apiKey := config.GetString(cfg, "AI_GATEWAY_API_KEY", "")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("AI_GATEWAY_URL and AI_GATEWAY_API_KEY are required")
	}

	textModel := config.GetString(cfg, "AI_TEXT_MODEL", "google/gemini-3-flash-preview")
	imageModel := config.GetString(cfg, "AI_IMAGE_MODEL", "google/gemini-2.5-flash-image")

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(textModel),
		openai.WithResponseFormat(openai.ResponseFormatJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway client: %w", err)
	}

	timeout := time.Duration(config.GetInt(cfg, "AI_GATEWAY_TIMEOUT_SECONDS", 120)) * time.Second

	return &AIGateway{
		llm:        llm,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		imageModel: imageModel,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With().Str("serviceName", "aiGateway").Logger(),
	}, nil
}

// GenerateStructured sends a system+user instruction pair and returns
// the raw JSON text of the first choice.
func (g *AIGateway) GenerateStructured(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	})
	if err != nil {
		if isRateLimitErr(err) {
			return "", errs.NewRateLimitedError()
		}
		return "", fmt.Errorf("gateway text generation failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", errs.NewMalformedResponseError(fmt.Errorf("no content returned"))
	}
	return resp.Choices[0].Content, nil
}

// chatImageRequest is the image-modality variant of a chat completion.
// langchaingo has no surface for image outputs, so this one call keeps a
// hand-built client.
type chatImageRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatImageResponse struct {
	Choices []struct {
		Message struct {
			Images []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateImage requests a single image and returns its decoded bytes.
func (g *AIGateway) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	payload := chatImageRequest{
		Model:      g.imageModel,
		Messages:   []chatMessage{{Role: "user", Content: prompt}},
		Modalities: []string{"image", "text"},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errs.NewRateLimitedError()
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("gateway image error")
		return nil, fmt.Errorf("gateway image generation returned status %d", resp.StatusCode)
	}

	var parsed chatImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errs.NewMalformedResponseError(err)
	}

	if len(parsed.Choices) == 0 || len(parsed.Choices[0].Message.Images) == 0 {
		return nil, errs.NewMalformedResponseError(fmt.Errorf("no image returned"))
	}

	dataURL := parsed.Choices[0].Message.Images[0].ImageURL.URL
	return decodeImageDataURL(dataURL)
}

// decodeImageDataURL strips a data:image/...;base64, prefix and decodes
// the remainder.
func decodeImageDataURL(dataURL string) ([]byte, error) {
	raw := dataURL
	if idx := strings.Index(raw, "base64,"); idx >= 0 {
		raw = raw[idx+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errs.NewMalformedResponseError(fmt.Errorf("invalid image data: %w", err))
	}
	return decoded, nil
}

// isRateLimitErr detects throttling surfaced by the langchaingo client,
// which folds the HTTP status into the error string.
func isRateLimitErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "rate limit")
}
