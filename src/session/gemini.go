package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// Gemini streams chats from the Gemini API.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Open(_ context.Context, cfg Config) (Chat, error) {
	if cfg.Model == "" {
		return nil, ErrNoModel
	}
	history := make([]*genai.Content, 0, len(cfg.History))
	for _, t := range cfg.History {
		history = append(history, geminiContent(t))
	}
	gc := &genai.GenerateContentConfig{}
	if cfg.SystemInstruction != "" {
		gc.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(cfg.SystemInstruction)},
		}
	}
	return &geminiChat{client: g.client, model: cfg.Model, config: gc, history: history}, nil
}

func geminiContent(t Turn) *genai.Content {
	if t.Role == RoleModel {
		return genai.NewContentFromText(t.Text, genai.RoleModel)
	}
	return genai.NewContentFromText(t.Text, genai.RoleUser)
}

// geminiChat keeps the conversation history itself and appends a turn pair
// only after a stream completes.
type geminiChat struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig

	mu      sync.Mutex
	history []*genai.Content
}

func (c *geminiChat) SendStream(ctx context.Context, text string, onChunk func(string)) error {
	c.mu.Lock()
	contents := append(append([]*genai.Content(nil), c.history...), genai.NewContentFromText(text, genai.RoleUser))
	c.mu.Unlock()

	var reply strings.Builder
	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, c.config) {
		if err != nil {
			return err
		}
		chunk := responseText(resp)
		if chunk == "" {
			continue
		}
		reply.WriteString(chunk)
		onChunk(chunk)
	}

	c.mu.Lock()
	c.history = append(c.history,
		genai.NewContentFromText(text, genai.RoleUser),
		genai.NewContentFromText(reply.String(), genai.RoleModel),
	)
	c.mu.Unlock()
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
