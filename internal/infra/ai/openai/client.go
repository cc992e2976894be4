package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/contract-sentinel/internal/domain/ai"
)

const maxTokens = 2048

// Client implements the domain ai.Client port on top of the OpenAI API.
// Configure rebuilds the underlying SDK client with a new key; the invoker
// serializes Configure/Generate pairs, so no lock is needed here.
type Client struct {
	cli *openai.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Configure(apiKey string) {
	c.cli = openai.NewClient(strings.TrimSpace(apiKey))
}

func (c *Client) Generate(ctx context.Context, req domai.Request) (string, error) {
	if c.cli == nil {
		return "", errors.New("openai client not configured")
	}

	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Image) > 0 {
		// Vision-style multipart: the image travels as a data URL next to the prompt.
		msg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.Image),
				},
			},
		}
	} else {
		msg.Content = req.Prompt
	}

	creq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: []openai.ChatCompletionMessage{msg},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(req.Model, "o1") || strings.HasPrefix(req.Model, "o3") || strings.HasPrefix(req.Model, "o4") || strings.HasPrefix(req.Model, "gpt-5") {
		creq.MaxCompletionTokens = maxTokens
	} else {
		creq.MaxTokens = maxTokens
	}

	resp, err := c.cli.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps SDK errors onto the domain sentinels so the invoker can
// decide retry vs fallback without importing this package.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", domai.ErrRateLimited, err)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", domai.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
