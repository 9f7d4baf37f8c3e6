package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/ragshop/internal/domain"
)

// KnowledgeVersionRepository persists knowledge entry history
type KnowledgeVersionRepository struct {
	db *DB
}

// NewKnowledgeVersionRepository creates a new knowledge version repository
func NewKnowledgeVersionRepository(db *DB) *KnowledgeVersionRepository {
	return &KnowledgeVersionRepository{db: db}
}

// Create records a snapshot. Recording the same entry version twice replaces the snapshot.
func (r *KnowledgeVersionRepository) Create(ctx context.Context, v *domain.KnowledgeVersion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO knowledge_versions (id, entry_id, version, title, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entry_id, version) DO UPDATE SET
			title = excluded.title, content = excluded.content, created_at = excluded.created_at
	`, v.ID, v.EntryID, v.Version, v.Title, v.Content, v.CreatedAt)

	return err
}

// ListByEntry retrieves an entry's history, newest version first
func (r *KnowledgeVersionRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.KnowledgeVersion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_id, version, title, content, created_at
		FROM knowledge_versions WHERE entry_id = ?
		ORDER BY version DESC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := []*domain.KnowledgeVersion{}
	for rows.Next() {
		v := &domain.KnowledgeVersion{}
		if err := rows.Scan(&v.ID, &v.EntryID, &v.Version, &v.Title, &v.Content, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

// DeleteByEntry removes an entry's history
func (r *KnowledgeVersionRepository) DeleteByEntry(ctx context.Context, entryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_versions WHERE entry_id = ?`, entryID)
	return err
}

// DeleteAll clears every entry's history
func (r *KnowledgeVersionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_versions`)
	return err
}
