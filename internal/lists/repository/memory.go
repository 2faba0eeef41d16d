package repository

import (
	"context"
	"sync"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// MemoryRepository keeps lists and items in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	lastListID int64
	lastItemID int64
	lists      map[int64]struct{}
	items      map[int64][]domain.Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lists: make(map[int64]struct{}),
		items: make(map[int64][]domain.Item),
	}
}

func (r *MemoryRepository) CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastListID++
	list := domain.List{ID: r.lastListID}
	r.lists[list.ID] = struct{}{}

	item := r.appendLocked(list.ID, firstItemText)
	return &list, &item, nil
}

func (r *MemoryRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.lists[id]; !ok {
		return nil, domain.ErrListNotFound
	}
	return &domain.List{ID: id}, nil
}

func (r *MemoryRepository) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[listID]; !ok {
		return nil, domain.ErrListNotFound
	}
	item := r.appendLocked(listID, text)
	return &item, nil
}

func (r *MemoryRepository) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, len(r.items[listID]))
	copy(out, r.items[listID])
	return out, nil
}

func (r *MemoryRepository) Stats(ctx context.Context) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var items int64
	for _, list := range r.items {
		items += int64(len(list))
	}
	return domain.Stats{Lists: int64(len(r.lists)), Items: items}, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) appendLocked(listID int64, text string) domain.Item {
	r.lastItemID++
	item := domain.Item{ID: r.lastItemID, ListID: listID, Text: text}
	r.items[listID] = append(r.items[listID], item)
	return item
}
