package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimryndin/superlists/internal/lists/domain"
	"github.com/maksimryndin/superlists/internal/lists/repository"
)

// failingRepo wraps a memory repository and fails selected calls.
type failingRepo struct {
	*repository.MemoryRepository
	createErr error
	addErr    error
	itemsErr  error
}

func (f *failingRepo) CreateList(ctx context.Context, text string) (*domain.List, *domain.Item, error) {
	if f.createErr != nil {
		return nil, nil, f.createErr
	}
	return f.MemoryRepository.CreateList(ctx, text)
}

func (f *failingRepo) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.MemoryRepository.AddItem(ctx, listID, text)
}

func (f *failingRepo) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.MemoryRepository.ListItems(ctx, listID)
}

func TestCreateList(t *testing.T) {
	ctx := context.Background()

	t.Run("stores list with one item", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())

		list, err := svc.CreateList(ctx, "Buy milk")
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.ID)

		view, err := svc.GetList(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Buy milk", view.Items[0].Text)
	})

	for _, text := range []string{"", " ", "\t\n"} {
		t.Run("blank text stores nothing "+quote(text), func(t *testing.T) {
			svc := NewListService(repository.NewMemoryRepository())

			list, err := svc.CreateList(ctx, text)
			assert.ErrorIs(t, err, domain.ErrEmptyItem)
			assert.Nil(t, list)

			stats, err := svc.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.Stats{}, stats)
		})
	}

	t.Run("wraps store errors", func(t *testing.T) {
		boom := errors.New("disk full")
		svc := NewListService(&failingRepo{MemoryRepository: repository.NewMemoryRepository(), createErr: boom})

		_, err := svc.CreateList(ctx, "x")
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "create list")
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to the right list only", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())
		correct, err := svc.CreateList(ctx, "first")
		require.NoError(t, err)
		other, err := svc.CreateList(ctx, "other")
		require.NoError(t, err)

		item, err := svc.AddItem(ctx, correct.ID, "A new item for an existing list")
		require.NoError(t, err)
		assert.Equal(t, correct.ID, item.ListID)

		view, err := svc.GetList(ctx, correct.ID)
		require.NoError(t, err)
		assert.Len(t, view.Items, 2)

		otherView, err := svc.GetList(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, otherView.Items, 1)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Stats{Lists: 2, Items: 3}, stats)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())
		list, err := svc.CreateList(ctx, "first")
		require.NoError(t, err)

		_, err = svc.AddItem(ctx, list.ID, "  ")
		assert.ErrorIs(t, err, domain.ErrEmptyItem)

		view, err := svc.GetList(ctx, list.ID)
		require.NoError(t, err)
		assert.Len(t, view.Items, 1)
	})

	t.Run("unknown list wins over blank text", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())
		_, err := svc.AddItem(ctx, 5, "")
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		boom := errors.New("timeout")
		repo := &failingRepo{MemoryRepository: repository.NewMemoryRepository()}
		svc := NewListService(repo)
		list, err := svc.CreateList(ctx, "first")
		require.NoError(t, err)

		repo.addErr = boom
		_, err = svc.AddItem(ctx, list.ID, "second")
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetList(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown list", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())
		_, err := svc.GetList(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	t.Run("repeated reads match", func(t *testing.T) {
		svc := NewListService(repository.NewMemoryRepository())
		list, err := svc.CreateList(ctx, "a")
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, list.ID, "b")
		require.NoError(t, err)

		first, err := svc.GetList(ctx, list.ID)
		require.NoError(t, err)
		second, err := svc.GetList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("item read failure", func(t *testing.T) {
		boom := errors.New("read failed")
		repo := &failingRepo{MemoryRepository: repository.NewMemoryRepository()}
		svc := NewListService(repo)
		list, err := svc.CreateList(ctx, "a")
		require.NoError(t, err)

		repo.itemsErr = boom
		_, err = svc.GetList(ctx, list.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func quote(s string) string {
	return "[" + s + "]"
}
