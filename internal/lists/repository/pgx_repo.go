package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// PgxRepository stores lists in Postgres through a pgx pool.
type PgxRepository struct {
	db *pgxpool.Pool
}

func NewPgxRepository(db *pgxpool.Pool) *PgxRepository {
	return &PgxRepository{db: db}
}

func (r *PgxRepository) CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin create list: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var list domain.List
	if err := tx.QueryRow(ctx, `insert into lists default values returning id;`).Scan(&list.ID); err != nil {
		return nil, nil, fmt.Errorf("insert list: %w", err)
	}

	item, err := pgxInsertItem(ctx, tx, list.ID, firstItemText)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit create list: %w", err)
	}
	return &list, item, nil
}

func (r *PgxRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	var list domain.List
	err := r.db.QueryRow(ctx, `select id from lists where id = $1;`, id).Scan(&list.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return &list, nil
}

func (r *PgxRepository) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	// a missing parent makes the insert select no row
	const q = `
insert into items (list_id, text)
select id, $2 from lists where id = $1
returning id, list_id, text;
`
	var it domain.Item
	err := r.db.QueryRow(ctx, q, listID, text).Scan(&it.ID, &it.ListID, &it.Text)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &it, nil
}

func (r *PgxRepository) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	const q = `
select id, list_id, text
from items
where list_id = $1
order by id;
`
	rows, err := r.db.Query(ctx, q, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Item, 0, 16)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.Text); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PgxRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRow(ctx, `select (select count(*) from lists), (select count(*) from items);`).
		Scan(&s.Lists, &s.Items)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count rows: %w", err)
	}
	return s, nil
}

func (r *PgxRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PgxRepository) Close() error {
	r.db.Close()
	return nil
}

func pgxInsertItem(ctx context.Context, tx pgx.Tx, listID int64, text string) (*domain.Item, error) {
	const q = `
insert into items (list_id, text)
values ($1, $2)
returning id, list_id, text;
`
	var it domain.Item
	if err := tx.QueryRow(ctx, q, listID, text).Scan(&it.ID, &it.ListID, &it.Text); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &it, nil
}
