package repository

import (
	"fmt"
	"sync"

	"github.com/liliang-cn/ragshop/internal/domain"
)

// Table is an ordered, in-memory entity collection.
// Every method holds the table lock for its whole duration and never blocks on I/O,
// so each mutation is atomic with respect to every other call.
type Table[T any] struct {
	mu    sync.RWMutex
	name  string
	items []T
	id    func(*T) string
	clone func(T) T
}

// NewTable creates an empty table
func NewTable[T any](name string, id func(*T) string, clone func(T) T) *Table[T] {
	return &Table[T]{name: name, id: id, clone: clone}
}

// List returns copies of all items in insertion order
func (t *Table[T]) List() []T {
	return t.Filter(nil)
}

// Filter returns copies of the items match accepts, in insertion order.
// A nil match accepts everything.
func (t *Table[T]) Filter(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.items))
	for i := range t.items {
		if match == nil || match(&t.items[i]) {
			out = append(out, t.clone(t.items[i]))
		}
	}
	return out
}

// Get returns a copy of the item with the given ID
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i := t.indexOf(id); i >= 0 {
		return t.clone(t.items[i]), true
	}
	var zero T
	return zero, false
}

// Insert appends an item. IDs must be unique within the table.
func (t *Table[T]) Insert(item T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(&item)
	if t.indexOf(id) >= 0 {
		return fmt.Errorf("%s %s already exists", t.name, id)
	}
	t.items = append(t.items, t.clone(item))
	return nil
}

// Update applies fn to the stored item under the write lock and returns a copy of
// the result. If fn returns an error the stored item is left untouched.
func (t *Table[T]) Update(id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	i := t.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %s: %w", t.name, id, domain.ErrNotFound)
	}

	working := t.clone(t.items[i])
	if err := fn(&working); err != nil {
		return zero, err
	}
	t.items[i] = working
	return t.clone(working), nil
}

// Delete removes the item with the given ID and reports whether it existed
func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return true
}

// Len returns the number of items
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *Table[T]) indexOf(id string) int {
	for i := range t.items {
		if t.id(&t.items[i]) == id {
			return i
		}
	}
	return -1
}

// Store is the in-memory system of record for one process
type Store struct {
	Products      *Table[domain.Product]
	Knowledge     *Table[domain.KnowledgeEntry]
	Conversations *Table[domain.Conversation]
	Users         *Table[domain.User]
	Orders        *Table[domain.Order]

	mu        sync.RWMutex
	settings  domain.AISettings
	analytics domain.AnalyticsData
	kpis      domain.DashboardKPIs
}

// NewStore creates an empty store with default AI settings
func NewStore() *Store {
	return &Store{
		Products: NewTable("product",
			func(p *domain.Product) string { return p.ID },
			domain.Product.Clone),
		Knowledge: NewTable("knowledge entry",
			func(e *domain.KnowledgeEntry) string { return e.ID },
			domain.KnowledgeEntry.Clone),
		Conversations: NewTable("conversation",
			func(c *domain.Conversation) string { return c.ID },
			domain.Conversation.Clone),
		Users: NewTable("user",
			func(u *domain.User) string { return u.ID },
			domain.User.Clone),
		Orders: NewTable("order",
			func(o *domain.Order) string { return o.ID },
			domain.Order.Clone),
		settings: domain.DefaultAISettings(),
	}
}

// Settings returns the AI settings
func (s *Store) Settings() domain.AISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings applies fn to a copy of the settings and stores it if fn succeeds
func (s *Store) UpdateSettings(fn func(*domain.AISettings) error) (domain.AISettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.settings
	if err := fn(&working); err != nil {
		return domain.AISettings{}, err
	}
	s.settings = working
	return working, nil
}

// Analytics returns the analytics snapshot
func (s *Store) Analytics() domain.AnalyticsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analytics.Clone()
}

// SetAnalytics replaces the analytics snapshot
func (s *Store) SetAnalytics(a domain.AnalyticsData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics = a.Clone()
}

// KPIs returns the dashboard KPI snapshot
func (s *Store) KPIs() domain.DashboardKPIs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kpis := s.kpis
	kpis.TopSearchedPhones = append([]domain.SearchedPhone(nil), s.kpis.TopSearchedPhones...)
	return kpis
}

// SetKPIs replaces the dashboard KPI snapshot
func (s *Store) SetKPIs(k domain.DashboardKPIs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k.TopSearchedPhones = append([]domain.SearchedPhone(nil), k.TopSearchedPhones...)
	s.kpis = k
}
