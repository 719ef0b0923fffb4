package openrouter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StreamChatCompletion sends a streaming completion request and invokes
// onChunk with the cumulative content and thinking text after every
// incremental unit received. It returns the final pair once the stream
// completes. Cancellation through ctx is reported as ctx.Err() so callers
// can distinguish it from transport failures.
//
// Streaming requests are not retried: a failure mid-stream cannot be
// resumed without replaying chunks the caller has already observed.
func (c *Client) StreamChatCompletion(ctx context.Context, model string, messages []Message, opts StreamOptions, onChunk ChunkFunc) (*Completion, error) {
	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}
	if opts.Reasoning {
		reqBody.Reasoning = &Reasoning{Effort: "high"}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("openrouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s", errorMessage(resp.StatusCode, respBody))
	}

	var content, thinking strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip invalid chunks; the stream interleaves keep-alive noise.
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta
		grew := false
		if delta.Reasoning != "" {
			thinking.WriteString(delta.Reasoning)
			grew = true
		}
		if delta.Content != "" {
			content.WriteString(delta.Content)
			grew = true
		}
		if grew && onChunk != nil {
			onChunk(content.String(), thinking.String())
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("openrouter: reading stream: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &Completion{Content: content.String(), Thinking: thinking.String()}, nil
}
