// folio/utils/types/chat.go
package types

// Message is one conversation turn. Roles other than "user"/"assistant" are
// tolerated and passed through unmodified.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of POST /api/chat: the running transcript,
// oldest turn first.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// APIError is the error payload shape for every non-2xx response.
type APIError struct {
	Error string `json:"error"`
}
