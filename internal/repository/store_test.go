package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertPreservesOrder(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, s.Users.Insert(domain.User{ID: id}))
	}

	var ids []string
	for _, u := range s.Users.List() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestTable_InsertDuplicateFails(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Users.Insert(domain.User{ID: "1"}))

	err := s.Users.Insert(domain.User{ID: "1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestTable_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Products.Insert(domain.Product{
		ID:             "p1",
		Specifications: map[string]string{"Chip": "A17"},
		Variants:       []domain.ProductVariant{{ID: "v1", Attributes: map[string]string{"Color": "Blue"}}},
	}))

	p, ok := s.Products.Get("p1")
	require.True(t, ok)
	p.Specifications["Chip"] = "changed"
	p.Variants[0].Attributes["Color"] = "changed"

	again, _ := s.Products.Get("p1")
	assert.Equal(t, "A17", again.Specifications["Chip"])
	assert.Equal(t, "Blue", again.Variants[0].Attributes["Color"])
}

func TestTable_Update(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Users.Insert(domain.User{ID: "1", Name: "Alex"}))

	t.Run("applies change", func(t *testing.T) {
		u, err := s.Users.Update("1", func(u *domain.User) error {
			u.Name = "Sam"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Sam", u.Name)
	})

	t.Run("error leaves item untouched", func(t *testing.T) {
		_, err := s.Users.Update("1", func(u *domain.User) error {
			u.Name = "broken"
			return errors.New("boom")
		})
		assert.Error(t, err)
		u, _ := s.Users.Get("1")
		assert.Equal(t, "Sam", u.Name)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := s.Users.Update("missing", func(*domain.User) error { return nil })
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTable_Delete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Users.Insert(domain.User{ID: "1"}))
	require.NoError(t, s.Users.Insert(domain.User{ID: "2"}))

	assert.True(t, s.Users.Delete("1"))
	assert.False(t, s.Users.Delete("1"))
	assert.Equal(t, 1, s.Users.Len())

	_, ok := s.Users.Get("1")
	assert.False(t, ok)
}

func TestTable_ConcurrentUpdatesAreSerialized(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Knowledge.Insert(domain.KnowledgeEntry{ID: "k1", Version: 1}))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Knowledge.Update("k1", func(e *domain.KnowledgeEntry) error {
				e.Version++
				e.Title = fmt.Sprintf("writer %d", i)
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	e, _ := s.Knowledge.Get("k1")
	assert.Equal(t, 1+writers, e.Version)
}

func TestStore_UpdateSettings(t *testing.T) {
	s := NewStore()

	_, err := s.UpdateSettings(func(a *domain.AISettings) error {
		a.Model = "other"
		return errors.New("invalid")
	})
	assert.Error(t, err)
	assert.Equal(t, domain.DefaultAISettings().Model, s.Settings().Model)

	updated, err := s.UpdateSettings(func(a *domain.AISettings) error {
		a.Temperature = 0.2
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0.2, updated.Temperature)
	assert.Equal(t, 0.2, s.Settings().Temperature)
}

func TestNewSeededStore(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s := NewSeededStore(now)

	assert.Equal(t, 3, s.Users.Len())
	assert.Equal(t, 5, s.Products.Len())
	assert.Equal(t, 5, s.Knowledge.Len())
	assert.Equal(t, 4, s.Conversations.Len())
	assert.Equal(t, 2, s.Orders.Len())

	analytics := s.Analytics()
	require.Len(t, analytics.DailyStats, 30)
	assert.Equal(t, "2025-01-15", analytics.DailyStats[29].Date)
	assert.Equal(t, "2024-12-17", analytics.DailyStats[0].Date)

	order, ok := s.Orders.Get("2")
	require.True(t, ok)
	assert.Equal(t, 3417.0, order.Subtotal)
	assert.Equal(t, 273.36, order.Tax)
	assert.Equal(t, 3705.36, order.Total)
}
