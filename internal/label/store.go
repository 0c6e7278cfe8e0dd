// Package label implements CRUD for workspace labels.
package label

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dmc0125/task-app/internal/db"
)

var (
	// ErrNotFound means the label does not exist for the addressed user.
	ErrNotFound = errors.New("label: not found")
	// ErrWorkspaceNotFound means the target workspace does not exist for
	// the addressed user.
	ErrWorkspaceNotFound = errors.New("label: workspace not found")
)

type Label struct {
	ID          int64   `json:"id"`
	WorkspaceID int64   `json:"workspace_id"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// Update carries a partial update. Nil fields are left alone.
type Update struct {
	Color       *string
	Description *string
}

type Store interface {
	Create(ctx context.Context, userID, workspaceID int64, color string, description *string) (int64, error)
	Update(ctx context.Context, userID, labelID int64, upd Update) (*Label, error)
	Delete(ctx context.Context, userID, labelID int64) error
}

type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

// Create inserts a label into a workspace the user owns. The ownership
// check is folded into the insert so a foreign workspace id behaves the
// same as a missing one.
func (s *DBStore) Create(ctx context.Context, userID, workspaceID int64, color string, description *string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO labels (workspace_id, user_id, color, description)
		SELECT w.id, $2, $3, $4
		FROM workspaces w
		WHERE w.id = $1 AND w.user_id = $2
		RETURNING id
	`, workspaceID, userID, color, description).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrWorkspaceNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *DBStore) Update(ctx context.Context, userID, labelID int64, upd Update) (*Label, error) {
	l := Label{ID: labelID}
	err := s.db.QueryRowContext(ctx, `
		UPDATE labels
		SET color = COALESCE($3, color),
		    description = COALESCE($4, description)
		WHERE id = $1 AND user_id = $2
		RETURNING workspace_id, color, description
	`, labelID, userID, upd.Color, upd.Description).Scan(&l.WorkspaceID, &l.Color, &l.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete removes the label and strips its id from every task in the same
// workspace that references it, atomically.
func (s *DBStore) Delete(ctx context.Context, userID, labelID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var workspaceID int64
	err = tx.QueryRowContext(ctx, `
		DELETE FROM labels
		WHERE id = $1 AND user_id = $2
		RETURNING workspace_id
	`, labelID, userID).Scan(&workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks
		SET labels_ids = array_remove(labels_ids, $1::int)
		WHERE user_id = $2
		  AND labels_ids @> ARRAY[$1::int]
		  AND task_group_id IN (
		      SELECT id FROM task_groups
		      WHERE workspace_id = $3 AND user_id = $2
		  )
	`, labelID, userID, workspaceID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
