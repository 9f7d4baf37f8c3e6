package service

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/liliang-cn/ragshop/internal/config"
)

// Chunker splits knowledge content into retrieval chunks on sentence boundaries
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. Size and overlap are measured in characters.
func NewChunker(cfg config.RAGConfig) *Chunker {
	size := cfg.ChunkSize
	if size <= 0 {
		size = 200
	}
	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk groups consecutive sentences into chunks of at most size characters.
// A single sentence longer than size becomes its own chunk. Up to overlap
// characters of trailing sentences are repeated at the start of the next chunk
// when they fit beside its first new sentence.
func (c *Chunker) Chunk(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return nil, err
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			sentences = append(sentences, s)
		}
	}

	chunks := []string{}
	var current []string
	length, fresh := 0, 0
	for _, s := range sentences {
		if fresh > 0 && length+len(s) > c.size {
			chunks = append(chunks, strings.Join(current, " "))
			current, length, fresh = c.carry(current), 0, 0
			for _, carried := range current {
				length += len(carried) + 1
			}
		}
		// The carried overlap never pushes a chunk past size
		if fresh == 0 && length+len(s) > c.size {
			current, length = nil, 0
		}
		current = append(current, s)
		length += len(s) + 1
		fresh++
	}
	if fresh > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks, nil
}

// carry returns the trailing sentences that fit in the overlap window
func (c *Chunker) carry(sentences []string) []string {
	if c.overlap == 0 {
		return nil
	}
	total := 0
	i := len(sentences)
	for i > 0 && total+len(sentences[i-1]) <= c.overlap {
		total += len(sentences[i-1]) + 1
		i--
	}
	if i == len(sentences) {
		return nil
	}
	return append([]string(nil), sentences[i:]...)
}
