package todo

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/todo/internal/auth"
	"github.com/nao1215/todo/internal/model"
)

// createTaskRequest はタスク作成リクエストのJSON構造。
type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank"`
	Description *string `json:"description"`
	StatusID    int64   `json:"status_id" binding:"required"`
	// UserID は所有者のユーザーID。省略した場合は呼び出し元になる。
	UserID int64 `json:"user_id"`
}

// updateTaskRequest はタスク更新リクエストのJSON構造。
// 指定されたフィールドのみ更新される。
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StatusID    *int64  `json:"status_id"`
}

// handleListTasks はタスク一覧取得を処理するハンドラを返す。
// page と pageSize クエリでページングする。
func (s *Server) handleListTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := queryInt(c, "page", 1)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageが不正です"})
			return
		}
		size, err := queryInt(c, "pageSize", model.DefaultPageSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageSizeが不正です"})
			return
		}

		tasks, err := s.tasks.List(c.Request.Context(), model.NewPage(number, size))
		if err != nil || tasks == nil {
			respondFailure(c, "タスク一覧の取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, toTaskResponses(tasks))
	}
}

// handleGetTask はタスク取得を処理するハンドラを返す。
func (s *Server) handleGetTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		task, err := s.tasks.GetByID(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, err, "タスクが見つかりません")
			return
		}
		c.JSON(http.StatusOK, toTaskResponse(*task))
	}
}

// handleCreateTask はタスク作成を処理するハンドラを返す。
// 管理者以外は自分以外を所有者とするタスクを作成できない。
func (s *Server) handleCreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "認証情報が取得できません"})
			return
		}

		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}
		if req.UserID == 0 {
			req.UserID = claims.UserID
		}
		if err := auth.RequireSelfOrAdmin(claims, req.UserID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		if _, err := s.statuses.GetByID(ctx, req.StatusID); err != nil {
			respondLookupError(c, err, "ステータスが存在しません")
			return
		}
		if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
			respondLookupError(c, err, "ユーザーが存在しません")
			return
		}

		created, err := s.tasks.Create(ctx, model.NewTask{
			Title:       req.Title,
			Description: req.Description,
			StatusID:    req.StatusID,
			UserID:      req.UserID,
		})
		respondWrite(c, created, err, "タスクを作成しました", "タスクを作成できませんでした")
	}
}

// handleUpdateTask はタスク更新を処理するハンドラを返す。
// 存在確認の後に所有者チェックを行う。
func (s *Server) handleUpdateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		task, ok := s.ownedTask(c)
		if !ok {
			return
		}

		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		updated, err := s.tasks.Update(c.Request.Context(), task.ID, model.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			StatusID:    req.StatusID,
		})
		respondWrite(c, updated, err, "タスクを更新しました", "タスクを更新できませんでした")
	}
}

// handleDeleteTask はタスク削除を処理するハンドラを返す。
// 存在確認の後に所有者チェックを行う。
func (s *Server) handleDeleteTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		task, ok := s.ownedTask(c)
		if !ok {
			return
		}
		deleted, err := s.tasks.Delete(c.Request.Context(), task.ID)
		respondWrite(c, deleted, err, "タスクを削除しました", "タスクを削除できませんでした")
	}
}

// handleListTasksByUser はユーザーごとのタスク一覧取得を処理するハンドラを返す。
func (s *Server) handleListTasksByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := s.users.GetByID(ctx, id); err != nil {
			respondLookupError(c, err, "ユーザーが存在しません")
			return
		}

		tasks, err := s.tasks.ListByUser(ctx, id)
		if err != nil {
			respondFailure(c, "タスク一覧の取得に失敗しました", err)
			return
		}
		if tasks == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "このユーザーのタスクはありません"})
			return
		}
		c.JSON(http.StatusOK, toTaskResponses(tasks))
	}
}

// ownedTask はパスパラメータのタスクを取得し、呼び出し元が所有者であることを確認する。
// タスクが無ければ404、所有者でなければ401を返してfalseとなる。
func (s *Server) ownedTask(c *gin.Context) (*model.Task, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err, "タスクが見つかりません")
		return nil, false
	}
	if err := auth.RequireOwner(auth.GetClaims(c), task.Email); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil, false
	}
	return task, true
}

// queryInt はクエリパラメータを整数として取得する。未指定の場合はdefaultValueを返す。
func queryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
