package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// StreamEvent is one item from a chat completion stream. Exactly one of
// Chunk and Err is set. A decode failure on a single frame is delivered as
// an Err event and the stream keeps going; a transport failure is
// delivered as a final Err event before the channel closes.
type StreamEvent struct {
	Chunk *ChatCompletionChunk
	Err   error
}

// ChatCompletionStream is a live streaming chat completion. Read events
// from Events until the channel closes, and call Close when abandoning the
// stream early.
type ChatCompletionStream struct {
	events <-chan StreamEvent
	cancel context.CancelFunc
}

// Events returns the stream's event channel. The channel closes when the
// server signals completion, the transport fails, or the stream is closed.
func (s *ChatCompletionStream) Events() <-chan StreamEvent {
	return s.events
}

// Close releases the stream's resources. It is safe to call more than once
// and safe to call while another goroutine reads Events.
func (s *ChatCompletionStream) Close() {
	s.cancel()
}

// Collect drains the stream into a single ChatCompletionResponse,
// concatenating content deltas. It returns the first error event
// encountered; a decode error therefore aborts collection even though the
// underlying stream would continue past it.
func (s *ChatCompletionStream) Collect(ctx context.Context) (*ChatCompletionResponse, error) {
	defer s.Close()

	resp := &ChatCompletionResponse{Object: "chat.completion"}
	var content strings.Builder
	var finishReason string

	for {
		select {
		case <-ctx.Done():
			return nil, classifyTransport(ctx.Err())
		case ev, ok := <-s.events:
			if !ok {
				resp.Choices = []ChatChoice{{
					Message:      AssistantMessage(content.String()),
					FinishReason: finishReason,
				}}
				return resp, nil
			}
			if ev.Err != nil {
				return nil, ev.Err
			}
			chunk := ev.Chunk
			if chunk.ID != "" {
				resp.ID = chunk.ID
			}
			if chunk.Model != "" {
				resp.Model = chunk.Model
			}
			if chunk.Created != 0 {
				resp.Created = chunk.Created
			}
			if chunk.Usage != nil {
				resp.Usage = chunk.Usage
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content != nil {
					content.WriteString(*choice.Delta.Content)
				}
				if choice.FinishReason != nil {
					finishReason = *choice.FinishReason
				}
			}
		}
	}
}

// CreateChatCompletionStream starts a streaming chat completion. Stream is
// forced on regardless of req.Stream. The returned stream's rate-limiter
// admission and error classification match the non-streaming path; the
// stream itself is never retried.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionStream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	headers, err := c.config.buildHeaders()
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, classifyTransport(err)
		}
	}

	streamReq := *req
	streamReq.Stream = Ptr(true)

	body, err := json.Marshal(&streamReq)
	if err != nil {
		return nil, newDecodeError(err)
	}

	url := c.config.BaseURL + apiPrefix + chatCompletionsPath
	streamCtx, cancel := context.WithCancel(ctx)

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, &APIError{Message: err.Error(), Err: ErrInvalidRequest}
	}
	httpReq.Header = headers.Clone()
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		cancel()
		return nil, classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		cancel()
		return nil, classifyResponse(resp.StatusCode, respBody, resp.Header.Get("x-request-id"))
	}

	events := make(chan StreamEvent, 16)
	go decodeSSE(streamCtx, resp.Body, events)

	return &ChatCompletionStream{events: events, cancel: cancel}, nil
}

// decodeSSE reads server-sent events from body and emits one StreamEvent
// per data frame. Partial lines are buffered until their newline arrives.
// The "[DONE]" sentinel ends the stream cleanly.
func decodeSSE(ctx context.Context, body io.ReadCloser, events chan<- StreamEvent) {
	defer body.Close()
	defer close(events)

	reader := bufio.NewReader(body)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return
			}
			// One terminal event for the broken connection, unless the
			// consumer already walked away.
			if ctx.Err() != nil {
				return
			}
			select {
			case events <- StreamEvent{Err: classifyTransport(err)}:
			case <-ctx.Done():
			}
			return
		}

		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return
		}

		var chunk ChatCompletionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// A malformed frame does not kill the stream; later frames may
			// still be well-formed.
			select {
			case events <- StreamEvent{Err: newDecodeError(err)}:
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case events <- StreamEvent{Chunk: &chunk}:
		case <-ctx.Done():
			return
		}
	}
}
