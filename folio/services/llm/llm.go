// folio/services/llm/llm.go
package llm

import "context"

// Client is a generative-language backend. Generate returns the full reply
// text; GenerateStream delivers it as incremental chunks on the returned
// channel, which is closed when the reply is complete.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string) (<-chan string, error)
}
