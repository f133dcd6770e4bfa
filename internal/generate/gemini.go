package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiBackend drives one Gemini model.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiBackend{client: client, model: model}, nil
}

func (b *GeminiBackend) Name() string { return "gemini/" + b.model }

func (b *GeminiBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	model := b.client.GenerativeModel(b.model)
	model.SetTemperature(opts.Temperature)
	if opts.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGoogle(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &BackendError{Kind: FailTransient, Err: errors.New("empty Gemini response")}
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

func classifyGoogle(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests:
			return &BackendError{Kind: FailQuota, Err: err}
		case gerr.Code >= 500:
			return &BackendError{Kind: FailTransient, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Kind: FailTransient, Err: err}
	}
	return &BackendError{Kind: FailFatal, Err: err}
}
