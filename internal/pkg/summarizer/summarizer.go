// Package summarizer talks to hosted text summarization models.
package summarizer

import (
	"context"
	"errors"
)

// DefaultChunkSize is the number of characters submitted per request
const DefaultChunkSize = 1000

// ErrInvalidResponse is returned when a model answer lacks a summary
var ErrInvalidResponse = errors.New("invalid summarization response")

// Client summarizes one piece of text
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ChunkText splits text into consecutive chunks of size characters; the last
// chunk may be shorter. Empty text yields no chunks.
func ChunkText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
