package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI streams chats from any OpenAI-compatible endpoint.
type OpenAI struct {
	client *openai.Client
}

func NewOpenAI(apiKey, baseURL string) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg)}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Open(_ context.Context, cfg Config) (Chat, error) {
	if cfg.Model == "" {
		return nil, ErrNoModel
	}
	var msgs []openai.ChatCompletionMessage
	if cfg.SystemInstruction != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: cfg.SystemInstruction})
	}
	for _, t := range cfg.History {
		role := openai.ChatMessageRoleUser
		if t.Role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	return &openaiChat{client: o.client, model: cfg.Model, messages: msgs}, nil
}

type openaiChat struct {
	client *openai.Client
	model  string

	mu       sync.Mutex
	messages []openai.ChatCompletionMessage
}

func (c *openaiChat) SendStream(ctx context.Context, text string, onChunk func(string)) error {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text}
	c.mu.Lock()
	msgs := append(append([]openai.ChatCompletionMessage(nil), c.messages...), user)
	c.mu.Unlock()

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   true,
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		chunk := resp.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		reply.WriteString(chunk)
		onChunk(chunk)
	}

	c.mu.Lock()
	c.messages = append(c.messages, user, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply.String()})
	c.mu.Unlock()
	return nil
}
