// Package sqlstore implements core.PersistentStore on top of a SQL "kv" table.
// The same repository serves SQLite and Postgres; only the placeholder format differs.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const table = "kv"

type KVRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewKVRepo(db *sql.DB, placeholder sq.PlaceholderFormat) *KVRepo {
	return &KVRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// NewSQLiteKVRepo uses "?" placeholders.
func NewSQLiteKVRepo(db *sql.DB) *KVRepo {
	return NewKVRepo(db, sq.Question)
}

// NewPostgresKVRepo uses "$n" placeholders.
func NewPostgresKVRepo(db *sql.DB) *KVRepo {
	return NewKVRepo(db, sq.Dollar)
}

func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := r.sb.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select: %w", err)
	}

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query, args, err := r.sb.Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *KVRepo) Remove(ctx context.Context, key string) error {
	return r.RemoveMany(ctx, []string{key})
}

func (r *KVRepo) RemoveMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := r.sb.Delete(table).Where(sq.Eq{"key": keys}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove %d keys: %w", len(keys), err)
	}
	return nil
}
