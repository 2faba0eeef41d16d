package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/bolthold"
	bolt "go.etcd.io/bbolt"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

var (
	listSeqBucket = []byte("superlists_list_seq")
	itemSeqBucket = []byte("superlists_item_seq")
)

type listRecord struct {
	ID int64
}

type itemRecord struct {
	ID     int64
	ListID int64 `boltholdIndex:"ListID"`
	Text   string
}

// BoltRepository stores lists in an embedded bolthold file. Keys are uint64
// ids taken from bbolt bucket sequences inside the same write transaction.
type BoltRepository struct {
	store *bolthold.Store
}

func NewBoltRepository(store *bolthold.Store) *BoltRepository {
	return &BoltRepository{store: store}
}

func (r *BoltRepository) CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var list domain.List
	var item *domain.Item
	err := r.store.Bolt().Update(func(tx *bolt.Tx) error {
		id, err := nextSequence(tx, listSeqBucket)
		if err != nil {
			return err
		}
		if err := r.store.TxInsert(tx, uint64(id), &listRecord{ID: id}); err != nil {
			return fmt.Errorf("inserting list: %w", err)
		}
		list.ID = id

		item, err = r.insertItem(tx, id, firstItemText)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &list, item, nil
}

func (r *BoltRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec listRecord
	if err := r.store.Get(uint64(id), &rec); err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil, domain.ErrListNotFound
		}
		return nil, fmt.Errorf("getting list: %w", err)
	}
	return &domain.List{ID: rec.ID}, nil
}

func (r *BoltRepository) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item *domain.Item
	err := r.store.Bolt().Update(func(tx *bolt.Tx) error {
		var rec listRecord
		if err := r.store.TxGet(tx, uint64(listID), &rec); err != nil {
			if errors.Is(err, bolthold.ErrNotFound) {
				return domain.ErrListNotFound
			}
			return fmt.Errorf("getting list: %w", err)
		}

		var err error
		item, err = r.insertItem(tx, listID, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *BoltRepository) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []itemRecord
	if err := r.store.Find(&recs, bolthold.Where("ListID").Eq(listID).Index("ListID").SortBy("ID")); err != nil {
		return nil, fmt.Errorf("finding items: %w", err)
	}

	out := make([]domain.Item, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Item{ID: rec.ID, ListID: rec.ListID, Text: rec.Text})
	}
	return out, nil
}

func (r *BoltRepository) Stats(ctx context.Context) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}

	lists, err := r.store.Count(&listRecord{}, nil)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("counting lists: %w", err)
	}
	items, err := r.store.Count(&itemRecord{}, nil)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("counting items: %w", err)
	}
	return domain.Stats{Lists: int64(lists), Items: int64(items)}, nil
}

func (r *BoltRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Bolt().View(func(*bolt.Tx) error { return nil })
}

func (r *BoltRepository) Close() error {
	return r.store.Close()
}

func (r *BoltRepository) insertItem(tx *bolt.Tx, listID int64, text string) (*domain.Item, error) {
	id, err := nextSequence(tx, itemSeqBucket)
	if err != nil {
		return nil, err
	}
	rec := itemRecord{ID: id, ListID: listID, Text: text}
	if err := r.store.TxInsert(tx, uint64(id), &rec); err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	return &domain.Item{ID: id, ListID: listID, Text: text}, nil
}

func nextSequence(tx *bolt.Tx, bucket []byte) (int64, error) {
	b, err := tx.CreateBucketIfNotExists(bucket)
	if err != nil {
		return 0, fmt.Errorf("sequence bucket: %w", err)
	}
	seq, err := b.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return int64(seq), nil
}
