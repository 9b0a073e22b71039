// Package postgres provides the PostgreSQL-backed infraction store.
//
// The store stays deliberately dumb: equality filters and single-document
// writes only. Activation is derived in the service, so no query here ever
// compares expiry against the clock.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"warden/internal/infraction"
	txcontext "warden/pkg/platform/tx"
)

// Store implements infraction.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the infractions table when it does not exist yet. The seq
// column carries insertion order for List.
const Schema = `
CREATE TABLE IF NOT EXISTS infractions (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	actor_id    TEXT NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	inserted_at TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ,
	active      BOOLEAN
);
CREATE INDEX IF NOT EXISTS infractions_user_type_idx ON infractions (user_id, type)`

// EnsureSchema applies the schema. Called from main; harmless when the table
// already exists.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure infractions schema: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) Insert(ctx context.Context, record *infraction.Infraction) (string, error) {
	id := uuid.NewString()
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO infractions (id, type, user_id, actor_id, reason, inserted_at, expires_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, string(record.Type), record.UserID, record.ActorID, record.Reason,
		record.InsertedAt, record.ExpiresAt, record.Active,
	)
	if err != nil {
		return "", fmt.Errorf("insert infraction: %w", err)
	}
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*infraction.Infraction, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		SELECT id, type, user_id, actor_id, reason, inserted_at, expires_at, active
		FROM infractions WHERE id = $1`, id)
	record, err := scanInfraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infraction.ErrNotFound
		}
		return nil, fmt.Errorf("get infraction %s: %w", id, err)
	}
	return record, nil
}

func (s *Store) Update(ctx context.Context, id string, fields infraction.UpdateFields) (bool, error) {
	if fields.Empty() {
		// Nothing to change, but the caller still needs to know whether
		// the record exists.
		var exists bool
		err := s.execer(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM infractions WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("check infraction %s: %w", id, err)
		}
		return exists, nil
	}

	var sets []string
	var args []any
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.Reason != nil {
		addSet("reason", *fields.Reason)
	}
	if fields.Active != nil {
		addSet("active", *fields.Active)
	}
	if fields.ExpiresAt != nil {
		addSet("expires_at", *fields.ExpiresAt)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE infractions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	result, err := s.execer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update infraction %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update infraction %s: %w", id, err)
	}
	return affected > 0, nil
}

func (s *Store) List(ctx context.Context, filter infraction.Filter) ([]*infraction.Infraction, error) {
	query := `
		SELECT id, type, user_id, actor_id, reason, inserted_at, expires_at, active
		FROM infractions`
	var conds []string
	var args []any
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list infractions: %w", err)
	}
	defer rows.Close()

	var out []*infraction.Infraction
	for rows.Next() {
		record, err := scanInfraction(rows)
		if err != nil {
			return nil, fmt.Errorf("list infractions: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list infractions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInfraction(row scanner) (*infraction.Infraction, error) {
	var record infraction.Infraction
	var typ string
	var expiresAt sql.NullTime
	var active sql.NullBool
	err := row.Scan(&record.ID, &typ, &record.UserID, &record.ActorID,
		&record.Reason, &record.InsertedAt, &expiresAt, &active)
	if err != nil {
		return nil, err
	}
	record.Type = infraction.Type(typ)
	if expiresAt.Valid {
		record.ExpiresAt = &expiresAt.Time
	}
	if active.Valid {
		record.Active = &active.Bool
	}
	return &record, nil
}
