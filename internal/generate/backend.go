package generate

import "context"

// Options are mandatory generation parameters. Temperature stays low so the
// model sticks to the verified text it was given.
type Options struct {
	Temperature  float32
	JSONResponse bool
}

// Backend is one generative model in the cascade.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
