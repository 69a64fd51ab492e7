package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/session"
)

// TokenStore persists the session token in the single-row session table.
type TokenStore struct {
	DB *sql.DB
}

var _ session.Store = (*TokenStore)(nil)

func (s *TokenStore) LoadToken(ctx context.Context) (string, bool, error) {
	var token string
	err := s.DB.QueryRowContext(ctx, `SELECT token FROM session WHERE id = 1`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load session: %w", err)
	}
	return token, true, nil
}

func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO session(id, token, created_at)
VALUES(1, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET token=excluded.token, created_at=excluded.created_at
`, token)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *TokenStore) DeleteToken(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
