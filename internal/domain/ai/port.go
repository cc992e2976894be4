package ai

import "context"

// Request is one generation attempt against a concrete model.
// Image is an opaque payload forwarded as-is; this layer never decodes it.
type Request struct {
	Model  string
	Prompt string
	Image  []byte
}

// Client is the port for the external LLM provider. Configure swaps the
// process-wide credential, so callers must serialize Configure+Generate
// behind a single lock (the invoker owns that lock).
type Client interface {
	Configure(apiKey string)
	Generate(ctx context.Context, req Request) (string, error)
}
