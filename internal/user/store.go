// Package user exposes the signed-in user's public profile, backed by
// the social profile the account was created from.
package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dmc0125/task-app/internal/db"
)

// Profile is the public shape of a user: the default provider identity.
type Profile struct {
	ProviderType string  `json:"provider_type"`
	Username     string  `json:"username"`
	Avatar       *string `json:"avatar"`
}

// ErrNotFound means the user row or its default social profile is
// missing. A valid session credential should make that impossible, so
// callers treat it as an internal failure.
var ErrNotFound = errors.New("user: not found")

type Store interface {
	DefaultProfile(ctx context.Context, userID int64) (*Profile, error)
}

type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) DefaultProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT u.default_social_profile, sp.provider_username, sp.provider_avatar
		FROM users u
		JOIN social_profiles sp
		  ON sp.user_id = u.id
		 AND sp.provider_type = u.default_social_profile
		WHERE u.id = $1
	`, userID).Scan(&p.ProviderType, &p.Username, &p.Avatar)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
