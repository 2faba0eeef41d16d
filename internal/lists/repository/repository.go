package repository

import (
	"context"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// Repository is the persistence port for lists and items.
//
// CreateList must store the list and its first item atomically: after an error
// neither row exists. GetList and AddItem return domain.ErrListNotFound for an
// unknown list. ListItems returns items in insertion order.
type Repository interface {
	CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error)
	GetList(ctx context.Context, id int64) (*domain.List, error)
	AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error)
	ListItems(ctx context.Context, listID int64) ([]domain.Item, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Ping(ctx context.Context) error
	Close() error
}
