// Package task implements task creation inside a task group, including
// validation of the label ids a task references.
package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dmc0125/task-app/internal/db"
)

// ErrGroupNotFound means the target task group does not exist for the
// addressed user.
var ErrGroupNotFound = errors.New("task: task group not found")

// MissingLabelsError reports label ids that do not exist in the task
// group's workspace for the addressed user.
type MissingLabelsError struct {
	IDs []int64
}

func (e *MissingLabelsError) Error() string {
	return fmt.Sprintf("task: missing labels %v", e.IDs)
}

type Task struct {
	ID          int64   `json:"id"`
	TaskGroupID int64   `json:"task_group_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	LabelsIDs   []int64 `json:"labels_ids"`
}

type Store interface {
	Create(ctx context.Context, userID, groupID int64, title, description string, labelsIDs []int64) (*Task, error)
}

type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, userID, groupID int64, title, description string, labelsIDs []int64) (*Task, error) {
	var workspaceID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT workspace_id
		FROM task_groups
		WHERE id = $1 AND user_id = $2
	`, groupID, userID).Scan(&workspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(labelsIDs) > 0 {
		missing, err := s.missingLabels(ctx, userID, workspaceID, labelsIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, &MissingLabelsError{IDs: missing}
		}
	}

	t := Task{
		TaskGroupID: groupID,
		Title:       title,
		Description: description,
		LabelsIDs:   labelsIDs,
	}

	var ids any
	if len(labelsIDs) > 0 {
		ids = pq.Array(labelsIDs)
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (task_group_id, user_id, title, description, labels_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, groupID, userID, title, description, ids).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// missingLabels returns, in input order, the requested ids that do not
// belong to the workspace for this user.
func (s *DBStore) missingLabels(ctx context.Context, userID, workspaceID int64, ids []int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM labels
		WHERE user_id = $1
		  AND workspace_id = $2
		  AND id = ANY($3)
	`, userID, workspaceID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missing := []int64{}
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
