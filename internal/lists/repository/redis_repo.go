package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

const (
	listSeqKey      = "superlists:seq:list"    // INCR counter for list ids
	itemSeqKey      = "superlists:seq:item"    // INCR counter for item ids
	listSetKey      = "superlists:lists"       // Set of all list ids
	itemTotalKey    = "superlists:items:total" // Number of stored items
	listItemsPrefix = "superlists:list:"       // Items of a list in insertion order: superlists:list:{id}:items
)

// RedisRepository stores lists in Redis. Item ids come from INCR counters and
// each list keeps its items as JSON values in a Redis list.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error) {
	listID, err := r.client.Incr(ctx, listSeqKey).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("next list id: %w", err)
	}
	itemID, err := r.client.Incr(ctx, itemSeqKey).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("next item id: %w", err)
	}

	item := domain.Item{ID: itemID, ListID: listID, Text: firstItemText}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	// MULTI/EXEC so the list never becomes visible without its first item
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, listSetKey, listID)
		pipe.RPush(ctx, r.listItemsKey(listID), data)
		pipe.Incr(ctx, itemTotalKey)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create list: %w", err)
	}

	return &domain.List{ID: listID}, &item, nil
}

func (r *RedisRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	ok, err := r.client.SIsMember(ctx, listSetKey, id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if !ok {
		return nil, domain.ErrListNotFound
	}
	return &domain.List{ID: id}, nil
}

func (r *RedisRepository) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	if _, err := r.GetList(ctx, listID); err != nil {
		return nil, err
	}

	itemID, err := r.client.Incr(ctx, itemSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next item id: %w", err)
	}

	item := domain.Item{ID: itemID, ListID: listID, Text: text}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.listItemsKey(listID), data)
		pipe.Incr(ctx, itemTotalKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return &item, nil
}

func (r *RedisRepository) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	raw, err := r.client.LRange(ctx, r.listItemsKey(listID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	out := make([]domain.Item, 0, len(raw))
	for _, s := range raw {
		var it domain.Item
		if err := json.Unmarshal([]byte(s), &it); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *RedisRepository) Stats(ctx context.Context) (domain.Stats, error) {
	lists, err := r.client.SCard(ctx, listSetKey).Result()
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to count lists: %w", err)
	}

	items, err := r.client.Get(ctx, itemTotalKey).Int64()
	if errors.Is(err, redis.Nil) {
		items = 0
	} else if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to count items: %w", err)
	}

	return domain.Stats{Lists: lists, Items: items}, nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) listItemsKey(listID int64) string {
	return listItemsPrefix + strconv.FormatInt(listID, 10) + ":items"
}
