package repository

import (
	"context"
	"strings"
	"time"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

const taskColumns = "id, title, description, date_created, date_modified, status_id, status, user_id, email"

// TaskRepository はtasksテーブルを操作する。読み取りはtodo_viewを使用する。
type TaskRepository struct {
	g   *store.Gateway
	now func() time.Time
}

// NewTaskRepository は新しいTaskRepositoryを生成する。
func NewTaskRepository(g *store.Gateway) *TaskRepository {
	return &TaskRepository{
		g:   g,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// List は指定ページのタスクをid昇順で返す。
func (r *TaskRepository) List(ctx context.Context, page model.Page) ([]model.Task, error) {
	return store.QueryMany[model.Task](ctx, r.g,
		"SELECT "+taskColumns+" FROM todo_view ORDER BY id LIMIT :limit OFFSET :offset",
		store.Params{"limit": page.Limit(), "offset": page.Offset()})
}

// GetByID はIDでタスクを取得する。
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	return store.QueryOne[model.Task](ctx, r.g,
		"SELECT "+taskColumns+" FROM todo_view WHERE id = :id",
		store.Params{"id": id})
}

// ListByUser は指定ユーザーが所有するタスクをid昇順で返す。
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	return store.QueryMany[model.Task](ctx, r.g,
		"SELECT "+taskColumns+" FROM todo_view WHERE user_id = :user_id ORDER BY id",
		store.Params{"user_id": userID})
}

// Create はタスクを登録する。作成日時と更新日時には現在時刻を設定する。
func (r *TaskRepository) Create(ctx context.Context, t model.NewTask) (bool, error) {
	var description any
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		description = normalize(*t.Description)
	}
	now := r.now()
	return r.g.Execute(ctx,
		`INSERT INTO tasks (title, description, date_created, date_modified, status_id, user_id)
		VALUES (:title, :description, :date_created, :date_modified, :status_id, :user_id)`,
		store.Params{
			"title":         normalize(t.Title),
			"description":   description,
			"date_created":  now,
			"date_modified": now,
			"status_id":     t.StatusID,
			"user_id":       t.UserID,
		})
}

// Update は指定された項目と更新日時のみを書き込む。
func (r *TaskRepository) Update(ctx context.Context, id int64, u model.TaskUpdate) (bool, error) {
	a := newAssignments()
	a.setText("title", u.Title)
	a.setText("description", u.Description)
	if u.StatusID != nil {
		a.set("status_id", *u.StatusID)
	}
	a.set("date_modified", r.now())

	query, params, err := a.update("tasks", id)
	if err != nil {
		return false, err
	}
	return r.g.Execute(ctx, query, params)
}

// Delete はタスクを削除する。
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.g.Execute(ctx, "DELETE FROM tasks WHERE id = :id", store.Params{"id": id})
}
