package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"folio/folio/config"
	httputils "folio/folio/utils/http"
	"folio/folio/utils/logging"

	"go.uber.org/zap"
)

// GeminiClient talks to the Gemini generateContent API. Model and endpoint
// are fixed at construction; no caller-supplied generation parameters are
// accepted.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
}

func NewGeminiClient(cfg config.Config) *GeminiClient {
	if cfg.GenAIAPIKey == "" {
		logging.ErrorLogger.Fatal("Missing GENAI_API_KEY environment variable")
	}
	return &GeminiClient{
		apiKey:  cfg.GenAIAPIKey,
		baseURL: strings.TrimRight(cfg.GenAIBaseURL, "/"),
		model:   cfg.GenAIModel,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generateURL(verb, extra string) string {
	return fmt.Sprintf("%s/models/%s:%s?%skey=%s", c.baseURL, c.model, verb, extra, c.apiKey)
}

func newGeminiRequest(prompt string) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
}

func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Generate executes a single non-streaming completion.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	var resp geminiResponse
	if err := httputils.PostJSON(ctx, c.generateURL("generateContent", ""), newGeminiRequest(prompt), &resp); err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return resp.text(), nil
}

// GenerateStream reads the SSE form of the same endpoint and forwards each
// candidate chunk's text.
func (c *GeminiClient) GenerateStream(ctx context.Context, prompt string) (<-chan string, error) {
	defer logging.LogDuration(ctx, "gemini_generate_stream")()

	body, err := httputils.PostStream(ctx, c.generateURL("streamGenerateContent", "alt=sse&"), newGeminiRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini stream request failed: %w", err)
	}

	ch := make(chan string)

	go func() {
		defer func() {
			close(ch)
			body.Close()
		}()

		reader := bufio.NewReader(body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("gemini stream context cancelled")
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("gemini stream read error", zap.Error(err))
				return
			}

			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "[DONE]" {
				return
			}

			var chunk geminiResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				logging.ErrorLogger.Error("gemini stream JSON parse error",
					zap.Error(err), zap.String("raw_line", data))
				continue
			}
			if text := chunk.text(); text != "" {
				select {
				case ch <- text:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
