package generation

import "context"

// Generator produces free-text output from a prompt via an external language
// model. Transport and quota failures are reported wrapped in
// domain.ErrGenerationService so the service layer can apply its retry policy.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
