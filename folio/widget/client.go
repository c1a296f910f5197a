package widget

import (
	"context"
	"strings"

	httputils "folio/folio/utils/http"
	"folio/folio/utils/types"
)

// ProxyClient is the widget's view of the chat proxy: one transcript in,
// one reply out. Implementations must not leak backend error details.
type ProxyClient interface {
	SendChat(ctx context.Context, msgs []types.Message) (string, error)
}

// HTTPProxyClient talks to POST /api/chat.
type HTTPProxyClient struct {
	baseURL string
}

func NewHTTPProxyClient(baseURL string) *HTTPProxyClient {
	return &HTTPProxyClient{baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *HTTPProxyClient) SendChat(ctx context.Context, msgs []types.Message) (string, error) {
	var reply types.ChatReply
	err := httputils.PostJSON(ctx, c.baseURL+"/api/chat", types.ChatRequest{Messages: msgs}, &reply)
	if err != nil {
		return "", err
	}
	return reply.Reply, nil
}
