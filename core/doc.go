// Package core provides the Rainy SDK client for the Rainy API by Enosis Labs.
//
// The Rainy API unifies multiple AI providers (OpenAI, Google, Groq, Cerebras,
// Enosis Labs) behind a single OpenAI-compatible HTTP surface. This package
// implements the authenticated request pipeline every endpoint call passes
// through: credential and header construction, optional client-side rate
// limiting, error classification, bounded exponential-backoff retry, and
// Server-Sent-Events decoding for streaming chat responses.
//
// # Client
//
// The primary entry point is [Client], constructed from a [Config]:
//
//	client, err := core.NewClient(core.NewConfig("ra-your-api-key"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.CreateChatCompletion(ctx, &core.ChatCompletionRequest{
//	    Model:    core.ModelGemini25Flash,
//	    Messages: []core.ChatMessage{core.UserMessage("Hello!")},
//	})
//
// Client is safe for concurrent use. Configuration is immutable once the
// client is built; per-request state lives on the stack of each call.
//
// # Streaming
//
// Streaming responses are consumed as a lazy, finite event sequence:
//
//	stream, err := client.CreateChatCompletionStream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for ev := range stream.Events() {
//	    if ev.Err != nil {
//	        // a decode failure is reported here and the stream continues
//	        continue
//	    }
//	    fmt.Print(ev.Chunk.Delta())
//	}
//
// The stream terminates on the [DONE] sentinel, on a connection failure
// (surfaced as a single Network error event), or when the caller cancels
// the context or calls Close.
//
// # Error Handling
//
// Every failure is reported as exactly one *[APIError] wrapping one of the
// kind sentinels:
//   - [ErrAuthentication]: invalid, expired, or insufficiently privileged key
//   - [ErrInvalidRequest]: the request is malformed or rejected by validation
//   - [ErrProvider]: a downstream model provider failed
//   - [ErrRateLimited]: the API rate limit was hit
//   - [ErrInsufficientCredits]: the account's credit balance is exhausted
//   - [ErrNetwork]: connect, DNS, or other transport failure
//   - [ErrTimeout]: the per-call deadline elapsed
//   - [ErrDecode]: the response body did not match the expected shape
//   - [ErrAPI]: any other API-level failure
//
// Use errors.Is to branch on kind and errors.As to reach the structured
// fields:
//
//	var apiErr *core.APIError
//	if errors.As(err, &apiErr) && errors.Is(err, core.ErrRateLimited) {
//	    time.Sleep(apiErr.RetryAfter)
//	}
//
// The pipeline never panics on external input; malformed bodies, network
// failures, and rate limits all surface as *APIError values.
//
// # Retry and Rate Limiting
//
// Transient failures (rate limits, 5xx, connect errors, timeouts) are
// retried with exponential backoff and jitter up to Config.MaxRetries.
// Retries for one call are strictly sequential: an attempt never starts
// before the previous attempt's failure is classified and the backoff
// delay has elapsed. An optional [RateLimiter] throttles outbound calls;
// see [NewFixedWindowLimiter] and [NewTokenBucketLimiter].
//
// # Telemetry
//
// Implement [TelemetryHook] to observe request lifecycle events. Events
// carry operational metadata and never include API keys, prompts, or
// response content.
package core
