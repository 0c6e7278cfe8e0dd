package resolver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dmc0125/task-app/internal/auth"
	"github.com/Dmc0125/task-app/internal/db"
)

// pqUniqueViolation is the Postgres error code for a unique constraint
// violation.
const pqUniqueViolation = "23505"

// DBStore is the Postgres-backed resolver store.
type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) FindByProviderIdentity(ctx context.Context, p auth.Provider, providerID string) (int64, bool, error) {
	var userID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM social_profiles
		WHERE provider_type = $1
		  AND provider_id = $2
	`, p, providerID).Scan(&userID)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	// The owning user must exist. A dangling profile is an internal
	// consistency failure, never a reason to create a user.
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, fmt.Errorf(
			"social profile %s/%s references missing user %d", p, providerID, userID,
		)
	}

	return userID, true, nil
}

func (s *DBStore) CreateUserWithProfile(ctx context.Context, identity *auth.Identity) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (default_social_profile)
		VALUES ($1)
		RETURNING id
	`, identity.Provider).Scan(&userID)
	if err != nil {
		return 0, wrapCreateErr(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO social_profiles (user_id, provider_type, provider_id, provider_username)
		VALUES ($1, $2, $3, $4)
	`, userID, identity.Provider, identity.ProviderID, identity.ProviderUsername)
	if err != nil {
		return 0, wrapCreateErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return userID, nil
}

func wrapCreateErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		// A concurrent sign-in for the same identity committed first.
		return fmt.Errorf("identity already linked by concurrent sign-in: %w", err)
	}
	return err
}
