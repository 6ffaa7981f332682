package provider

import "context"

// Request carries one judgment-source call.
type Request struct {
	System      string // role instruction for the model
	Prompt      string // user-facing evaluation prompt
	Model       string // model identifier; empty means the client default
	Schema      string // JSON schema the structured response must match
	Temperature float64
}

// Provider is the judgment source every critic calls through.
// Implementations handle auth, transport, and model specifics; callers
// only need to distinguish success from failure.
type Provider interface {
	// Complete returns the model's raw text response.
	Complete(ctx context.Context, req Request) (string, error)

	// CompleteJSON requests structured output matching req.Schema and
	// returns the parsed object. A response that cannot be parsed is an
	// error, same as a failed call.
	CompleteJSON(ctx context.Context, req Request) (map[string]any, error)
}
