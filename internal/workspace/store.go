// Package workspace implements CRUD for workspaces, the top-level
// container that labels, task groups and tasks hang off of.
package workspace

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Dmc0125/task-app/internal/db"
)

// ErrNotFound means the workspace does not exist for the addressed user.
// Rows owned by other users are reported the same way.
var ErrNotFound = errors.New("workspace: not found")

type Workspace struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Detail is the aggregated single-workspace view: the workspace with
// every label, task group and task that belongs to it.
type Detail struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Labels      []Label      `json:"labels"`
	TaskGroups  []TaskGroup  `json:"task_groups"`
}

type Label struct {
	ID          int64   `json:"id"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

type TaskGroup struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	LabelsIDs   []int64 `json:"labels_ids"`
}

// Update carries the fields of a partial update. Nil means leave the
// column alone; a pointer to the empty string clears the description.
type Update struct {
	Title       *string
	Description *string
}

type Store interface {
	Create(ctx context.Context, userID int64, title string, description *string) (*Workspace, error)
	List(ctx context.Context, userID int64) ([]Workspace, error)
	Get(ctx context.Context, userID, workspaceID int64) (*Detail, error)
	Update(ctx context.Context, userID, workspaceID int64, upd Update) error
	Delete(ctx context.Context, userID, workspaceID int64) error
}

type DBStore struct {
	db *db.DB
}

func NewDBStore(db *db.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, userID int64, title string, description *string) (*Workspace, error) {
	w := Workspace{Title: title, Description: description}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO workspaces (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, title, description).Scan(&w.ID)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *DBStore) List(ctx context.Context, userID int64) ([]Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description
		FROM workspaces
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workspaces := []Workspace{}
	for rows.Next() {
		var w Workspace
		if err := rows.Scan(&w.ID, &w.Title, &w.Description); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}

func (s *DBStore) Get(ctx context.Context, userID, workspaceID int64) (*Detail, error) {
	var detail Detail
	err := s.db.QueryRowContext(ctx, `
		SELECT title, description
		FROM workspaces
		WHERE id = $1 AND user_id = $2
	`, workspaceID, userID).Scan(&detail.Title, &detail.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	detail.Labels, err = s.workspaceLabels(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	detail.TaskGroups, err = s.workspaceTaskGroups(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (s *DBStore) workspaceLabels(ctx context.Context, userID, workspaceID int64) ([]Label, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, color, description
		FROM labels
		WHERE workspace_id = $1 AND user_id = $2
		ORDER BY id
	`, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []Label{}
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.Color, &l.Description); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (s *DBStore) workspaceTaskGroups(ctx context.Context, userID, workspaceID int64) ([]TaskGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title
		FROM task_groups
		WHERE workspace_id = $1 AND user_id = $2
		ORDER BY id
	`, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	groups := []TaskGroup{}
	groupIDs := []int64{}
	for rows.Next() {
		var g TaskGroup
		if err := rows.Scan(&g.ID, &g.Title); err != nil {
			rows.Close()
			return nil, err
		}
		g.Tasks = []Task{}
		groups = append(groups, g)
		groupIDs = append(groupIDs, g.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(groups) == 0 {
		return groups, nil
	}

	taskRows, err := s.db.QueryContext(ctx, `
		SELECT id, task_group_id, title, description, labels_ids
		FROM tasks
		WHERE user_id = $1 AND task_group_id = ANY($2)
		ORDER BY id
	`, userID, pq.Array(groupIDs))
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	byGroup := map[int64]int{}
	for i, g := range groups {
		byGroup[g.ID] = i
	}

	for taskRows.Next() {
		var (
			t       Task
			groupID int64
		)
		if err := taskRows.Scan(&t.ID, &groupID, &t.Title, &t.Description, pq.Array(&t.LabelsIDs)); err != nil {
			return nil, err
		}
		i := byGroup[groupID]
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups, taskRows.Err()
}

func (s *DBStore) Update(ctx context.Context, userID, workspaceID int64, upd Update) error {
	set := ""
	args := []any{workspaceID, userID}

	if upd.Title != nil {
		args = append(args, *upd.Title)
		set = "title = $3"
	}
	if upd.Description != nil {
		if set != "" {
			set += ", "
		}
		if *upd.Description == "" {
			// Empty description clears the column.
			set += "description = NULL"
		} else {
			args = append(args, *upd.Description)
			if len(args) == 3 {
				set += "description = $3"
			} else {
				set += "description = $4"
			}
		}
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE workspaces SET "+set+" WHERE id = $1 AND user_id = $2",
		args...,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *DBStore) Delete(ctx context.Context, userID, workspaceID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM workspaces
		WHERE id = $1 AND user_id = $2
	`, workspaceID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
