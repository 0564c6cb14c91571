// Package retrieval is the boundary to the external vector-index
// service that ingests papers and answers similarity searches. The core
// never sees embeddings; it exchanges queries for ranked passages.
package retrieval

import (
	"context"
	"io"
)

// Passage is one retrieved text fragment with its source identifier.
// Produced fresh per query; never persisted here.
type Passage struct {
	Text     string  `json:"text"`
	SourceID string  `json:"source_id"`
	Rank     int     `json:"rank"`
	Score    float64 `json:"score,omitempty"`
}

// Retriever performs nearest-neighbor retrieval over the ingested
// corpus.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]Passage, error)
}

// Ingestor manages the corpus behind the retriever.
type Ingestor interface {
	Upload(ctx context.Context, filename string, content io.Reader) error
	Remove(ctx context.Context, filename string) error
	List(ctx context.Context) ([]string, error)
}
