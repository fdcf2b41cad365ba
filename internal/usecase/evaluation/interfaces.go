package evaluation

import "context"

type LLMConnector interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
