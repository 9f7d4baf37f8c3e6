package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
	"go.uber.org/zap"
)

// KnowledgeService manages knowledge base entries and their version history
type KnowledgeService struct {
	store    *repository.Store
	versions *repository.KnowledgeVersionRepository
	chunker  *Chunker
	latency  *Latency
	logger   *zap.Logger
}

// NewKnowledgeService creates a new knowledge service
func NewKnowledgeService(
	store *repository.Store,
	versions *repository.KnowledgeVersionRepository,
	chunker *Chunker,
	latency *Latency,
	logger *zap.Logger,
) *KnowledgeService {
	return &KnowledgeService{
		store:    store,
		versions: versions,
		chunker:  chunker,
		latency:  latency,
		logger:   logger,
	}
}

// List returns the entries matching every set filter
func (s *KnowledgeService) List(ctx context.Context, filters domain.KnowledgeFilters) (*domain.PaginatedResponse[domain.KnowledgeEntry], error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	return domain.NewPaginatedResponse(s.store.Knowledge.Filter(filters.Match)), nil
}

// Get returns a single entry
func (s *KnowledgeService) Get(ctx context.Context, id string) (*domain.KnowledgeEntry, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	e, ok := s.store.Knowledge.Get(id)
	if !ok {
		return nil, notFound("knowledge entry", id)
	}
	return &e, nil
}

// Create adds an entry pending embedding
func (s *KnowledgeService) Create(ctx context.Context, req *domain.CreateKnowledgeRequest) (*domain.KnowledgeEntry, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	version := req.Version
	if version == 0 {
		version = 1
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	now := time.Now()
	e := domain.KnowledgeEntry{
		ID:              uuid.New().String(),
		Type:            req.Type,
		Title:           req.Title,
		Content:         req.Content,
		Chunks:          []string{},
		EmbeddingStatus: domain.EmbeddingStatusPending,
		Enabled:         enabled,
		Version:         version,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Knowledge.Insert(e); err != nil {
		return nil, err
	}

	s.recordVersion(ctx, &e)
	return &e, nil
}

// Update merges req into the stored entry. The version is bumped on every
// successful update; a title or content change also resets embedding.
func (s *KnowledgeService) Update(ctx context.Context, id string, req *domain.UpdateKnowledgeRequest) (*domain.KnowledgeEntry, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var changed bool
	e, err := s.store.Knowledge.Update(id, func(e *domain.KnowledgeEntry) error {
		changed = req.Apply(e)
		if changed {
			e.EmbeddingStatus = domain.EmbeddingStatusPending
			e.Chunks = []string{}
		}
		e.Version++
		e.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.recordVersion(ctx, &e)
	}
	return &e, nil
}

// Delete removes an entry and its history. Deleting an unknown ID is not an error.
func (s *KnowledgeService) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return err
	}
	s.store.Knowledge.Delete(id)
	if err := s.versions.DeleteByEntry(ctx, id); err != nil {
		s.logger.Warn("Failed to delete knowledge history", zap.String("entry_id", id), zap.Error(err))
	}
	return nil
}

// Versions returns the content history of an entry, newest first
func (s *KnowledgeService) Versions(ctx context.Context, id string) ([]*domain.KnowledgeVersion, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	if _, ok := s.store.Knowledge.Get(id); !ok {
		return nil, notFound("knowledge entry", id)
	}
	versions, err := s.versions.ListByEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []*domain.KnowledgeVersion{}
	}
	return versions, nil
}

// SnapshotAll replaces any stored history with the current version of every
// entry. Used at startup so seeded entries have a history baseline.
func (s *KnowledgeService) SnapshotAll(ctx context.Context) error {
	if err := s.versions.DeleteAll(ctx); err != nil {
		return err
	}
	for _, e := range s.store.Knowledge.List() {
		if err := s.versions.Create(ctx, snapshotOf(&e)); err != nil {
			return err
		}
	}
	return nil
}

// Reindex re-derives chunks for every enabled entry. Entries move to processing,
// and after the reindex delay to completed, or failed when no chunk can be
// derived. Disabled entries are left as they are.
func (s *KnowledgeService) Reindex(ctx context.Context) (*domain.ReindexResult, error) {
	result := &domain.ReindexResult{}

	var ids []string
	previous := make(map[string]domain.EmbeddingStatus)
	for _, e := range s.store.Knowledge.List() {
		if !e.Enabled {
			result.Skipped++
			continue
		}
		_, err := s.store.Knowledge.Update(e.ID, func(e *domain.KnowledgeEntry) error {
			previous[e.ID] = e.EmbeddingStatus
			e.EmbeddingStatus = domain.EmbeddingStatusProcessing
			return nil
		})
		if err == nil {
			ids = append(ids, e.ID)
		}
	}

	if err := s.latency.Wait(ctx, WeightReindex); err != nil {
		s.restoreStatus(previous)
		return nil, err
	}

	for _, id := range ids {
		var status domain.EmbeddingStatus
		_, err := s.store.Knowledge.Update(id, func(e *domain.KnowledgeEntry) error {
			// Edited while the run was in progress
			if e.EmbeddingStatus != domain.EmbeddingStatusProcessing {
				return errSkipReindex
			}
			chunks, err := s.chunker.Chunk(e.Content)
			if err != nil || len(chunks) == 0 {
				if err != nil {
					s.logger.Warn("Failed to chunk knowledge entry", zap.String("entry_id", e.ID), zap.Error(err))
				}
				e.Chunks = []string{}
				e.EmbeddingStatus = domain.EmbeddingStatusFailed
			} else {
				e.Chunks = chunks
				e.EmbeddingStatus = domain.EmbeddingStatusCompleted
			}
			e.UpdatedAt = time.Now()
			status = e.EmbeddingStatus
			return nil
		})

		switch {
		case err != nil:
			result.Skipped++
		case status == domain.EmbeddingStatusCompleted:
			result.Completed++
		default:
			result.Failed++
		}
	}

	s.logger.Info("Knowledge reindexed",
		zap.Int("completed", result.Completed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

var errSkipReindex = errors.New("entry changed during reindex")

// restoreStatus undoes the processing mark of an abandoned run on entries
// nobody edited in the meantime
func (s *KnowledgeService) restoreStatus(previous map[string]domain.EmbeddingStatus) {
	for id, status := range previous {
		_, _ = s.store.Knowledge.Update(id, func(e *domain.KnowledgeEntry) error {
			if e.EmbeddingStatus != domain.EmbeddingStatusProcessing {
				return errSkipReindex
			}
			e.EmbeddingStatus = status
			return nil
		})
	}
}

func (s *KnowledgeService) recordVersion(ctx context.Context, e *domain.KnowledgeEntry) {
	if err := s.versions.Create(ctx, snapshotOf(e)); err != nil {
		s.logger.Warn("Failed to record knowledge version",
			zap.String("entry_id", e.ID),
			zap.Int("version", e.Version),
			zap.Error(err),
		)
	}
}

func snapshotOf(e *domain.KnowledgeEntry) *domain.KnowledgeVersion {
	return &domain.KnowledgeVersion{
		EntryID:   e.ID,
		Version:   e.Version,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.UpdatedAt,
	}
}
