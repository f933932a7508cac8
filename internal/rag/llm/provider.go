package llm

import "context"

// Provider generates an answer from an already-assembled prompt pair.
// Prompt construction lives in the prompt package so providers stay
// interchangeable.
type Provider interface {
	Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error)
	CheckAvailability(ctx context.Context) bool
}
