package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// SQLRepository stores lists in a database/sql handle using "?" placeholders.
// It is used with the SQLite driver; the schema lives in internal/storage/sqlite.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a repository on an already migrated database.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) CreateList(ctx context.Context, firstItemText string) (*domain.List, *domain.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin create list: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO lists DEFAULT VALUES`)
	if err != nil {
		return nil, nil, fmt.Errorf("insert list: %w", err)
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("list id: %w", err)
	}

	item, err := insertItem(ctx, tx, listID, firstItemText)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit create list: %w", err)
	}
	return &domain.List{ID: listID}, item, nil
}

func (r *SQLRepository) GetList(ctx context.Context, id int64) (*domain.List, error) {
	var list domain.List
	err := r.db.QueryRowContext(ctx, `SELECT id FROM lists WHERE id = ?`, id).Scan(&list.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return &list, nil
}

func (r *SQLRepository) AddItem(ctx context.Context, listID int64, text string) (*domain.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin add item: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lists WHERE id = ?)`, listID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check list: %w", err)
	}
	if !exists {
		return nil, domain.ErrListNotFound
	}

	item, err := insertItem(ctx, tx, listID, text)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add item: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) ListItems(ctx context.Context, listID int64) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, list_id, text
FROM items
WHERE list_id = ?
ORDER BY id;
`, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Item, 0, 16)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.Text); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM lists), (SELECT COUNT(*) FROM items)`).
		Scan(&s.Lists, &s.Items)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count rows: %w", err)
	}
	return s, nil
}

func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func insertItem(ctx context.Context, tx *sql.Tx, listID int64, text string) (*domain.Item, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO items (list_id, text) VALUES (?, ?)`, listID, text)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("item id: %w", err)
	}
	return &domain.Item{ID: id, ListID: listID, Text: text}, nil
}
