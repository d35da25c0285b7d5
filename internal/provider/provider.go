// Package provider generates mega test content from an LLM backend.
package provider

import (
	"context"
	"encoding/json"

	"github.com/tienganhkids/megatest/internal/megatest"
)

// Request describes the content to generate.
type Request struct {
	Level megatest.Level
	Topic string
	// Vocabulary and grammar notes lifted from the lesson source material.
	Vocabulary []string
	Grammar    []string
}

// ContentProvider produces the raw JSON document of a mega test. The output
// is unvalidated: callers run it through megatest.ValidateTest before use.
type ContentProvider interface {
	GenerateTest(ctx context.Context, req Request) (json.RawMessage, error)
}
