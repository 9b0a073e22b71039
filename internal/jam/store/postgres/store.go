// Package postgres provides the PostgreSQL-backed jam store: jams, their
// application forms, participant profiles, and submitted responses.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"warden/internal/jam"
)

// Store implements jam.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the jam tables when they do not exist yet. Question
// position carries form display order; response answers are stored as the
// JSON document the service validated.
const Schema = `
CREATE TABLE IF NOT EXISTS jams (
	id    BIGINT PRIMARY KEY,
	name  TEXT NOT NULL,
	state TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS jam_questions (
	id       TEXT PRIMARY KEY,
	jam_id   BIGINT NOT NULL REFERENCES jams (id),
	position INT NOT NULL,
	title    TEXT NOT NULL DEFAULT '',
	type     TEXT NOT NULL,
	optional BOOLEAN NOT NULL DEFAULT FALSE,
	min      INT NOT NULL DEFAULT 0,
	max      INT NOT NULL DEFAULT 0,
	options  TEXT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS jam_questions_jam_idx ON jam_questions (jam_id, position);
CREATE TABLE IF NOT EXISTS jam_participants (
	user_id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS jam_responses (
	jam_id   BIGINT NOT NULL REFERENCES jams (id),
	user_id  TEXT NOT NULL,
	approved BOOLEAN NOT NULL DEFAULT FALSE,
	answers  JSONB NOT NULL DEFAULT '[]',
	PRIMARY KEY (jam_id, user_id)
)`

// EnsureSchema applies the schema. Called from main; harmless when the
// tables already exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure jam schema: %w", err)
	}
	return nil
}

func (s *Store) GetJam(ctx context.Context, id int64) (*jam.Jam, error) {
	var record jam.Jam
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, state FROM jams WHERE id = $1`, id).
		Scan(&record.ID, &record.Name, &record.State)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, jam.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get jam %d: %w", id, err)
	}
	return &record, nil
}

func (s *Store) GetForm(ctx context.Context, jamID int64) ([]jam.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, type, optional, min, max, options
		FROM jam_questions WHERE jam_id = $1 ORDER BY position`, jamID)
	if err != nil {
		return nil, fmt.Errorf("get form for jam %d: %w", jamID, err)
	}
	defer rows.Close()

	var questions []jam.Question
	for rows.Next() {
		var question jam.Question
		var typ string
		var options pq.StringArray
		err := rows.Scan(&question.ID, &question.Title, &typ, &question.Optional,
			&question.Data.Min, &question.Data.Max, &options)
		if err != nil {
			return nil, fmt.Errorf("get form for jam %d: %w", jamID, err)
		}
		question.Type = jam.QuestionType(typ)
		question.Data.Options = options
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get form for jam %d: %w", jamID, err)
	}
	if questions == nil {
		return nil, jam.ErrNotFound
	}
	return questions, nil
}

func (s *Store) HasParticipant(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM jam_participants WHERE user_id = $1)`, userID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check participant %s: %w", userID, err)
	}
	return exists, nil
}

func (s *Store) FindResponse(ctx context.Context, jamID int64, userID string) (*jam.Response, error) {
	var record jam.Response
	var answers []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT jam_id, user_id, approved, answers
		FROM jam_responses WHERE jam_id = $1 AND user_id = $2`, jamID, userID).
		Scan(&record.JamID, &record.UserID, &record.Approved, &answers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find response for jam %d: %w", jamID, err)
	}
	if err := json.Unmarshal(answers, &record.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for jam %d: %w", jamID, err)
	}
	return &record, nil
}

func (s *Store) InsertResponse(ctx context.Context, response *jam.Response) error {
	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jam_responses (jam_id, user_id, approved, answers)
		VALUES ($1, $2, $3, $4)`,
		response.JamID, response.UserID, response.Approved, answers,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// Seed helpers used by migrations and tests.

// PutJam inserts or updates a jam.
func (s *Store) PutJam(ctx context.Context, record jam.Jam) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jams (id, name, state) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, state = EXCLUDED.state`,
		record.ID, record.Name, record.State,
	)
	if err != nil {
		return fmt.Errorf("put jam %d: %w", record.ID, err)
	}
	return nil
}

// PutForm replaces a jam's form questions.
func (s *Store) PutForm(ctx context.Context, jamID int64, questions []jam.Question) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM jam_questions WHERE jam_id = $1`, jamID); err != nil {
		return fmt.Errorf("put form for jam %d: %w", jamID, err)
	}
	for i, question := range questions {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO jam_questions (id, jam_id, position, title, type, optional, min, max, options)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			question.ID, jamID, i, question.Title, string(question.Type),
			question.Optional, question.Data.Min, question.Data.Max,
			pq.Array(question.Data.Options),
		)
		if err != nil {
			return fmt.Errorf("put form for jam %d: %w", jamID, err)
		}
	}
	return nil
}

// PutParticipant records a participant profile.
func (s *Store) PutParticipant(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jam_participants (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("put participant %s: %w", userID, err)
	}
	return nil
}
