package domain

import (
	"strings"
	"time"
)

// KnowledgeType classifies a knowledge base entry
type KnowledgeType string

const (
	KnowledgeTypeFAQ       KnowledgeType = "faq"
	KnowledgeTypePolicy    KnowledgeType = "policy"
	KnowledgeTypePromotion KnowledgeType = "promotion"
	KnowledgeTypeManual    KnowledgeType = "manual"
)

// EmbeddingStatus tracks where an entry is in the embedding pipeline
type EmbeddingStatus string

const (
	EmbeddingStatusPending    EmbeddingStatus = "pending"
	EmbeddingStatusProcessing EmbeddingStatus = "processing"
	EmbeddingStatusCompleted  EmbeddingStatus = "completed"
	EmbeddingStatusFailed     EmbeddingStatus = "failed"
)

// KnowledgeEntry represents a knowledge base document
type KnowledgeEntry struct {
	ID              string          `json:"id"`
	Type            KnowledgeType   `json:"type"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	Chunks          []string        `json:"chunks"`
	EmbeddingStatus EmbeddingStatus `json:"embeddingStatus"`
	Enabled         bool            `json:"enabled"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy
func (e KnowledgeEntry) Clone() KnowledgeEntry {
	e.Chunks = append([]string(nil), e.Chunks...)
	return e
}

// KnowledgeVersion is a snapshot of an entry's content at a given version
type KnowledgeVersion struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entryId"`
	Version   int       `json:"version"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// KnowledgeFilters narrows a knowledge listing
type KnowledgeFilters struct {
	Type    string `form:"type"`
	Enabled *bool  `form:"enabled"`
	Search  string `form:"search"`
}

// Match reports whether an entry satisfies every filter
func (f KnowledgeFilters) Match(e *KnowledgeEntry) bool {
	if f.Type != "" && string(e.Type) != f.Type {
		return false
	}
	if f.Enabled != nil && e.Enabled != *f.Enabled {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Content), search) {
			return false
		}
	}
	return true
}

// CreateKnowledgeRequest is the request to create an entry.
// Version defaults to 1 when omitted.
type CreateKnowledgeRequest struct {
	Type    KnowledgeType `json:"type" binding:"required" validate:"required,oneof=faq policy promotion manual"`
	Title   string        `json:"title" binding:"required" validate:"required"`
	Content string        `json:"content" binding:"required" validate:"required"`
	Enabled *bool         `json:"enabled,omitempty"`
	Version int           `json:"version,omitempty" validate:"gte=0"`
}

// UpdateKnowledgeRequest is a partial entry update
type UpdateKnowledgeRequest struct {
	Type    *KnowledgeType `json:"type,omitempty" validate:"omitempty,oneof=faq policy promotion manual"`
	Title   *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string        `json:"content,omitempty" validate:"omitempty,min=1"`
	Enabled *bool          `json:"enabled,omitempty"`
}

// Apply merges the request into e and reports whether title or content changed
func (r *UpdateKnowledgeRequest) Apply(e *KnowledgeEntry) bool {
	changed := false
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Title != nil && *r.Title != e.Title {
		e.Title = *r.Title
		changed = true
	}
	if r.Content != nil && *r.Content != e.Content {
		e.Content = *r.Content
		changed = true
	}
	if r.Enabled != nil {
		e.Enabled = *r.Enabled
	}
	return changed
}

// ReindexResult summarises a reindex run
type ReindexResult struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
