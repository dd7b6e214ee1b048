package repository

import (
	"context"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

// StatusRepository はstatusesテーブルを操作する。
type StatusRepository struct {
	g *store.Gateway
}

// NewStatusRepository は新しいStatusRepositoryを生成する。
func NewStatusRepository(g *store.Gateway) *StatusRepository {
	return &StatusRepository{g: g}
}

// List はすべてのステータスをid昇順で返す。
func (r *StatusRepository) List(ctx context.Context) ([]model.Status, error) {
	return store.QueryMany[model.Status](ctx, r.g, "SELECT id, name FROM statuses ORDER BY id", nil)
}

// GetByID はIDでステータスを取得する。
func (r *StatusRepository) GetByID(ctx context.Context, id int64) (*model.Status, error) {
	return store.QueryOne[model.Status](ctx, r.g, "SELECT id, name FROM statuses WHERE id = :id", store.Params{"id": id})
}

// Create はステータスを登録する。
func (r *StatusRepository) Create(ctx context.Context, name string) (bool, error) {
	return r.g.Execute(ctx, "INSERT INTO statuses (name) VALUES (:name)", store.Params{"name": normalize(name)})
}

// Update はステータス名を更新する。
func (r *StatusRepository) Update(ctx context.Context, id int64, name string) (bool, error) {
	return r.g.Execute(ctx, "UPDATE statuses SET name = :name WHERE id = :id",
		store.Params{"id": id, "name": normalize(name)})
}

// Delete はステータスを削除する。タスクから参照されている場合は失敗する。
func (r *StatusRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.g.Execute(ctx, "DELETE FROM statuses WHERE id = :id", store.Params{"id": id})
}
