package embedding

import "context"

// Provider converts text into an embedding vector using the given model.
// Callers in the retrieval path must treat any error (or an empty vector)
// as "no embedding" rather than failing the request.
type Provider interface {
	Embed(ctx context.Context, text string, model string) ([]float64, error)
}
