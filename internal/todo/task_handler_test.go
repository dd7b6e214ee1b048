package todo

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHandleListTasks(t *testing.T) {
	t.Parallel()

	s, router := setupTestServer(t)
	userID, token := signUp(t, router, "owner@example.com")
	statusID := createTestStatus(t, s, "todo")
	for i := 1; i <= 25; i++ {
		createTestTask(t, s, fmt.Sprintf("task %02d", i), statusID, userID)
	}

	tests := []struct {
		name      string
		query     string
		wantFirst float64
		wantLen   int
	}{
		{name: "1ページ目は1件目から10件", query: "?page=1&pageSize=10", wantFirst: 1, wantLen: 10},
		{name: "3ページ目は21件目から5件", query: "?page=3&pageSize=10", wantFirst: 21, wantLen: 5},
		{name: "未指定は1ページ目を既定件数で返す", query: "", wantFirst: 1, wantLen: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := doRequest(router, http.MethodGet, "/api/tasks"+tt.query, token, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
			}
			list := parseJSONArray(t, w)
			if len(list) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(list), tt.wantLen)
			}
			if list[0]["id"] != tt.wantFirst {
				t.Errorf("先頭のid = %v, want %v", list[0]["id"], tt.wantFirst)
			}
			for i := 1; i < len(list); i++ {
				if list[i]["id"].(float64) <= list[i-1]["id"].(float64) {
					t.Errorf("id昇順になっていない: %v", list)
				}
			}
		})
	}

	t.Run("最終ページを大きく超えるpageは先頭ページではなく空の配列を返すこと", func(t *testing.T) {
		t.Parallel()
		w := doRequest(router, http.MethodGet, "/api/tasks?page=922337203685477582&pageSize=10", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if list := parseJSONArray(t, w); len(list) != 0 {
			t.Errorf("len = %d, want 0", len(list))
		}
	})

	t.Run("pageが数値でない場合は400になること", func(t *testing.T) {
		t.Parallel()
		w := doRequest(router, http.MethodGet, "/api/tasks?page=x", token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestHandleCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("所有者を省略すると呼び出し元のタスクとして作成されること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		userID, token := signUp(t, router, "owner@example.com")
		statusID := createTestStatus(t, s, "todo")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{
			"title":       "Buy Milk",
			"description": "Two Litres",
			"status_id":   statusID,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		w = doRequest(router, http.MethodGet, "/api/tasks/1", token, nil)
		body := parseJSON(t, w)
		if body["title"] != "buy milk" || body["description"] != "two litres" || body["status"] != "todo" {
			t.Errorf("body = %v", body)
		}
		if body["user_id"] != float64(userID) || body["email"] != "owner@example.com" {
			t.Errorf("user_id/email = %v/%v", body["user_id"], body["email"])
		}
	})

	t.Run("存在しないステータスは404になること", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		_, token := signUp(t, router, "owner@example.com")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{"title": "t", "status_id": 99})
		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("管理者が存在しないユーザーを指定すると404になること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		_, token := signUpAdmin(t, s, router, "admin@example.com")
		statusID := createTestStatus(t, s, "todo")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{"title": "t", "status_id": statusID, "user_id": 99})
		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("一般ユーザーが他人のタスクを作成すると403になること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		otherID, _ := signUp(t, router, "other@example.com")
		_, token := signUp(t, router, "user@example.com")
		statusID := createTestStatus(t, s, "todo")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{"title": "t", "status_id": statusID, "user_id": otherID})
		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("タイトルが空白のみの場合は400でタスクが作成されないこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		userID, token := signUp(t, router, "owner@example.com")
		statusID := createTestStatus(t, s, "todo")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{"title": "   ", "status_id": statusID})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
		tasks, err := s.tasks.ListByUser(t.Context(), userID)
		if err != nil || len(tasks) != 0 {
			t.Errorf("tasks = %v, err = %v, want 空", tasks, err)
		}
	})

	t.Run("タイトルが無い場合は400になること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		_, token := signUp(t, router, "owner@example.com")
		statusID := createTestStatus(t, s, "todo")

		w := doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{"status_id": statusID})
		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestHandleUpdateTask(t *testing.T) {
	t.Parallel()

	t.Run("タイトルのみの更新は説明とステータスを変更しないこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		_, token := signUp(t, router, "owner@example.com")
		statusID := createTestStatus(t, s, "todo")
		doRequest(router, http.MethodPost, "/api/tasks", token, map[string]any{
			"title": "old", "description": "keep", "status_id": statusID,
		})

		w := doRequest(router, http.MethodPut, "/api/tasks/1", token, map[string]any{"title": "New"})
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		body := parseJSON(t, doRequest(router, http.MethodGet, "/api/tasks/1", token, nil))
		if body["title"] != "new" || body["description"] != "keep" || body["status_id"] != float64(statusID) {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("存在しないタスクは所有者チェックより先に404になること", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		_, token := signUp(t, router, "owner@example.com")

		for _, method := range []string{http.MethodPut, http.MethodDelete} {
			w := doRequest(router, method, "/api/tasks/99", token, map[string]any{"title": "x"})
			if w.Code != http.StatusNotFound {
				t.Errorf("%s ステータスコード = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})

	t.Run("他人のタスクの更新と削除は401になり変更されないこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		ownerID, _ := signUp(t, router, "owner@example.com")
		_, intruder := signUp(t, router, "intruder@example.com")
		createTestTask(t, s, "mine", createTestStatus(t, s, "todo"), ownerID)

		w := doRequest(router, http.MethodPut, "/api/tasks/1", intruder, map[string]any{"title": "hacked"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("更新のステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		w = doRequest(router, http.MethodDelete, "/api/tasks/1", intruder, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("削除のステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}

		task, err := s.tasks.GetByID(t.Context(), 1)
		if err != nil || task.Title != "mine" {
			t.Errorf("task = %+v, err = %v", task, err)
		}
	})

	t.Run("所有者はタスクを削除できること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		ownerID, token := signUp(t, router, "owner@example.com")
		createTestTask(t, s, "mine", createTestStatus(t, s, "todo"), ownerID)

		w := doRequest(router, http.MethodDelete, "/api/tasks/1", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		w = doRequest(router, http.MethodGet, "/api/tasks/1", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("削除後のステータスコード = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestHandleListTasksByUser(t *testing.T) {
	t.Parallel()

	t.Run("ユーザーのタスクのみを返すこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		aliceID, token := signUp(t, router, "alice@example.com")
		bobID, _ := signUp(t, router, "bob@example.com")
		statusID := createTestStatus(t, s, "todo")
		createTestTask(t, s, "a1", statusID, aliceID)
		createTestTask(t, s, "b1", statusID, bobID)
		createTestTask(t, s, "a2", statusID, aliceID)

		w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/users/%d/tasks", aliceID), token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		list := parseJSONArray(t, w)
		if len(list) != 2 || list[0]["title"] != "a1" || list[1]["title"] != "a2" {
			t.Errorf("list = %v", list)
		}
	})

	t.Run("タスクが無いユーザーは空の配列を返すこと", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		id, token := signUp(t, router, "empty@example.com")

		w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/users/%d/tasks", id), token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if list := parseJSONArray(t, w); len(list) != 0 {
			t.Errorf("len = %d, want 0", len(list))
		}
	})

	t.Run("存在しないユーザーは404になること", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)
		_, token := signUp(t, router, "user@example.com")

		w := doRequest(router, http.MethodGet, "/api/users/99/tasks", token, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
