package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/maksimryndin/superlists/internal/lists/domain"
	"github.com/maksimryndin/superlists/internal/lists/repository"
	"github.com/maksimryndin/superlists/internal/logging"
)

// ListService applies the item validation rule in front of the repository.
type ListService struct {
	repo repository.Repository
}

// NewListService creates a new list service
func NewListService(repo repository.Repository) *ListService {
	return &ListService{repo: repo}
}

// ListView is a list together with its items.
type ListView struct {
	List  domain.List
	Items []domain.Item
}

// CreateList starts a new list with text as its first item.
// Blank text returns domain.ErrEmptyItem and stores nothing.
func (s *ListService) CreateList(ctx context.Context, text string) (*domain.List, error) {
	if err := domain.ValidateItemText(text); err != nil {
		return nil, err
	}

	list, item, err := s.repo.CreateList(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	logging.FromContext(ctx).WithFields(log.Fields{
		"list_id": list.ID,
		"item_id": item.ID,
	}).Info("list created")
	return list, nil
}

// AddItem appends text to an existing list.
func (s *ListService) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	if _, err := s.repo.GetList(ctx, listID); err != nil {
		return nil, err
	}
	if err := domain.ValidateItemText(text); err != nil {
		return nil, err
	}

	item, err := s.repo.AddItem(ctx, listID, text)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	logging.FromContext(ctx).WithFields(log.Fields{
		"list_id": listID,
		"item_id": item.ID,
	}).Info("item added")
	return item, nil
}

// GetList returns the list and its items in insertion order.
func (s *ListService) GetList(ctx context.Context, id int64) (*ListView, error) {
	list, err := s.repo.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return &ListView{List: *list, Items: items}, nil
}

// Stats returns row counts across the store.
func (s *ListService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Stats(ctx)
}

// Ping checks that the store is reachable.
func (s *ListService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
