package repository

import (
	"context"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

const userColumns = "id, first_name, last_name, email, password_hash, active, role"

// UserRepository はusersテーブルを操作する。
type UserRepository struct {
	g *store.Gateway
}

// NewUserRepository は新しいUserRepositoryを生成する。
func NewUserRepository(g *store.Gateway) *UserRepository {
	return &UserRepository{g: g}
}

// List はすべてのユーザーをid昇順で返す。
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return store.QueryMany[model.User](ctx, r.g, "SELECT "+userColumns+" FROM users ORDER BY id", nil)
}

// GetByID はIDでユーザーを取得する。
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return store.QueryOne[model.User](ctx, r.g,
		"SELECT "+userColumns+" FROM users WHERE id = :id",
		store.Params{"id": id})
}

// FindByEmail はメールアドレスでユーザーを取得する。大文字小文字は区別しない。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return store.QueryOne[model.User](ctx, r.g,
		"SELECT "+userColumns+" FROM users WHERE email = :email",
		store.Params{"email": normalize(email)})
}

// Create はユーザーを登録する。メールアドレスと氏名は小文字に正規化される。
func (r *UserRepository) Create(ctx context.Context, user *model.User) (bool, error) {
	return r.g.Execute(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, active, role)
		VALUES (:first_name, :last_name, :email, :password_hash, :active, :role)`,
		store.Params{
			"first_name":    normalize(user.FirstName),
			"last_name":     normalize(user.LastName),
			"email":         normalize(user.Email),
			"password_hash": user.PasswordHash,
			"active":        user.Active,
			"role":          user.Role.String(),
		})
}

// Update はプロフィールのうち指定された項目のみを更新する。
// 更新する項目が無い場合は ErrNoChanges を返す。
func (r *UserRepository) Update(ctx context.Context, id int64, u model.UserUpdate) (bool, error) {
	a := newAssignments()
	a.setText("first_name", u.FirstName)
	a.setText("last_name", u.LastName)
	a.setText("email", u.Email)

	query, params, err := a.update("users", id)
	if err != nil {
		return false, err
	}
	return r.g.Execute(ctx, query, params)
}

// UpdateRole はユーザーのロールを更新する。
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.Role) (bool, error) {
	return r.g.Execute(ctx, "UPDATE users SET role = :role WHERE id = :id",
		store.Params{"id": id, "role": role.String()})
}

// UpdateActive はユーザーの有効状態を更新する。
func (r *UserRepository) UpdateActive(ctx context.Context, id int64, active bool) (bool, error) {
	return r.g.Execute(ctx, "UPDATE users SET active = :active WHERE id = :id",
		store.Params{"id": id, "active": active})
}

// Delete はユーザーを削除する。所有するタスクも削除される。
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.g.Execute(ctx, "DELETE FROM users WHERE id = :id", store.Params{"id": id})
}
