// Package gateway wraps the external text-generation call.
//
// Failures stay ordinary error values inside the gateway so callers can
// branch on them; the pipeline converts them to inline annotation text at its
// outer edge. A failing call is always local to one unit.
package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shrynx/docullim/internal/logging"
)

// DefaultTimeout bounds one generation round-trip.
const DefaultTimeout = 120 * time.Second

// Request carries one unit's generation input.
type Request struct {
	Source string // canonicalized unit source
	Model  string
	Prompt string // prompt template, prepended to the source
}

// Generator produces annotation text for a request. Implementations must not
// panic; they report problems as errors.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// OpenAI is a Generator backed by the OpenAI chat-completion API.
type OpenAI struct {
	client  *openai.Client
	timeout time.Duration
}

// NewOpenAI builds a client from the OPENAI_API_KEY environment variable.
// A missing key is not fatal here; it surfaces as a per-call error so a run
// can still complete on cache hits alone.
func NewOpenAI() *OpenAI {
	g := &OpenAI{timeout: DefaultTimeout}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logging.Debug("OPENAI_API_KEY not set; generation calls will fail until it is")
		return g
	}
	g.client = openai.NewClient(apiKey)
	return g
}

// Generate sends the prompt template and source to the model and returns the
// trimmed completion text.
func (g *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logging.Debug("generating annotation", "model", req.Model)
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt + "\n" + req.Source,
			},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
