package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const Temperature = 0.2

// Unavailable is sent when the model cannot answer.
const Unavailable = "AI service temporarily unavailable."

var ErrEmptyReply = errors.New("model returned an empty reply")

// Responder produces an assistant reply for one user message.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

type GeminiResponder struct {
	client *genai.Client
	model  string
	prompt *Prompt
	log    *zap.Logger
}

func NewGeminiResponder(ctx context.Context, apiKey, model string, prompt *Prompt, log *zap.Logger) (*GeminiResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiResponder{client: client, model: model, prompt: prompt, log: log}, nil
}

func (g *GeminiResponder) Respond(ctx context.Context, message string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.prompt.String(), genai.RoleUser),
		Temperature:       genai.Ptr[float32](Temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		g.log.Warn("model request failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, message string) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}
