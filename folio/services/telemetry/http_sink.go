package telemetry

import (
	"context"
	"strings"

	httputils "folio/folio/utils/http"
	"folio/folio/utils/types"
)

// HTTPSink posts events to the analytics ingest endpoints.
type HTTPSink struct {
	baseURL string
}

func NewHTTPSink(baseURL string) *HTTPSink {
	return &HTTPSink{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *HTTPSink) Send(ctx context.Context, ev Event) error {
	if ev.Session != nil {
		return httputils.PostJSON(ctx, s.baseURL+"/api/analytics/sessions", ev.Session, nil)
	}
	req := types.EventRequest{
		Type:      "chat_event",
		Event:     ev.Name,
		SessionID: ev.SessionID,
		Data:      ev.Data,
	}
	return httputils.PostJSON(ctx, s.baseURL+"/api/analytics/events", req, nil)
}
