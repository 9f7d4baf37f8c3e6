package service

import (
	"testing"
	"time"

	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/liliang-cn/ragshop/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var seedNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewSeededStore(seedNow)
}

func newTestKnowledgeService(t *testing.T, store *repository.Store) *KnowledgeService {
	t.Helper()
	db, err := repository.NewDB(repository.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewKnowledgeService(
		store,
		repository.NewKnowledgeVersionRepository(db),
		NewChunker(config.RAGConfig{ChunkSize: 80}),
		NoLatency(),
		zaptest.NewLogger(t),
	)
}

func ptr[T any](v T) *T {
	return &v
}
