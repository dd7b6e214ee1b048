package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

// openTestGateway はマイグレーション適用済みのファイルSQLiteに接続したGatewayを返す。
func openTestGateway(t *testing.T) *store.Gateway {
	t.Helper()
	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("テスト用DBの作成に失敗: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.New(db)
}

// createUser はテスト用にユーザーを登録し、登録後のユーザーを返すヘルパー関数。
func createUser(t *testing.T, users *UserRepository, email string, role model.Role) *model.User {
	t.Helper()
	ok, err := users.Create(t.Context(), &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hash",
		Active:       true,
		Role:         role,
	})
	if err != nil || !ok {
		t.Fatalf("ユーザーの登録に失敗: ok=%t, err=%v", ok, err)
	}
	u, err := users.FindByEmail(t.Context(), email)
	if err != nil {
		t.Fatalf("登録したユーザーの取得に失敗: %v", err)
	}
	return u
}

// createStatus はテスト用にステータスを登録し、そのIDを返すヘルパー関数。
func createStatus(t *testing.T, statuses *StatusRepository, name string) int64 {
	t.Helper()
	if ok, err := statuses.Create(t.Context(), name); err != nil || !ok {
		t.Fatalf("ステータスの登録に失敗: ok=%t, err=%v", ok, err)
	}
	list, err := statuses.List(t.Context())
	if err != nil {
		t.Fatalf("ステータス一覧の取得に失敗: %v", err)
	}
	return list[len(list)-1].ID
}

// createTask はテスト用にタスクを登録するヘルパー関数。
func createTask(t *testing.T, tasks *TaskRepository, title string, statusID, userID int64) {
	t.Helper()
	ok, err := tasks.Create(t.Context(), model.NewTask{Title: title, StatusID: statusID, UserID: userID})
	if err != nil || !ok {
		t.Fatalf("タスクの登録に失敗: ok=%t, err=%v", ok, err)
	}
}

// fixedClock は呼び出すたびに1分ずつ進む時計を返す。
func fixedClock() func() time.Time {
	current := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}
