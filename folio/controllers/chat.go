// folio/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"strings"

	"folio/folio/services/llm"
	"folio/folio/services/persona"
	"folio/folio/utils/types"
)

// ErrEmptyTranscript maps to a 400 at the route layer. Everything else a
// Chat call returns maps to a generic 500.
var ErrEmptyTranscript = errors.New("messages must be a non-empty list")

// FallbackReply is returned whenever the backend produces empty content, so
// the contract never yields an empty reply.
const FallbackReply = "Sorry, I don't have a good answer for that right now. Try the contact form and Shaun will get back to you."

type ChatController struct {
	client   llm.Client
	preamble string
}

func NewChatController(client llm.Client, doc persona.Document) *ChatController {
	return &ChatController{client: client, preamble: doc.Preamble()}
}

// Chat validates the transcript, grounds it with the persona preamble, and
// asks the backend for the next assistant turn. The transcript is never
// persisted here.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrEmptyTranscript
	}
	prompt := persona.BuildPrompt(c.preamble, req.Messages)
	reply, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackReply, nil
	}
	return reply, nil
}

// ChatStream is the websocket variant: same validation and grounding, reply
// delivered as chunks.
func (c *ChatController) ChatStream(ctx context.Context, req types.ChatRequest) (<-chan string, error) {
	if len(req.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}
	prompt := persona.BuildPrompt(c.preamble, req.Messages)
	return c.client.GenerateStream(ctx, prompt)
}
