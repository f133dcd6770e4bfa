package generate

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend drives one OpenAI chat model.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	return &OpenAIBackend{client: openai.NewClient(apiKey), model: model}
}

func (b *OpenAIBackend) Name() string { return "openai/" + b.model }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: opts.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts.JSONResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAI(err)
	}
	if len(resp.Choices) == 0 {
		return "", &BackendError{Kind: FailTransient, Err: errors.New("empty OpenAI response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &BackendError{Kind: FailQuota, Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &BackendError{Kind: FailTransient, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Kind: FailTransient, Err: err}
	}
	return &BackendError{Kind: FailFatal, Err: err}
}
