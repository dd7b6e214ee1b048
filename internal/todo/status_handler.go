package todo

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusRequest はステータス作成・更新リクエストのJSON構造。
type statusRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// handleListStatuses はステータス一覧取得を処理するハンドラを返す。
func (s *Server) handleListStatuses() gin.HandlerFunc {
	return func(c *gin.Context) {
		statuses, err := s.statuses.List(c.Request.Context())
		if err != nil || statuses == nil {
			respondFailure(c, "ステータス一覧の取得に失敗しました", err)
			return
		}
		c.JSON(http.StatusOK, statuses)
	}
}

// handleGetStatus はステータス取得を処理するハンドラを返す。
func (s *Server) handleGetStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		status, err := s.statuses.GetByID(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, err, "ステータスが見つかりません")
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// handleCreateStatus はステータス作成を処理するハンドラを返す。管理者のみ。
func (s *Server) handleCreateStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}
		ok, err := s.statuses.Create(c.Request.Context(), req.Name)
		respondWrite(c, ok, err, "ステータスを作成しました", "ステータスを作成できませんでした")
	}
}

// handleUpdateStatus はステータス名の更新を処理するハンドラを返す。管理者のみ。
func (s *Server) handleUpdateStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := s.statuses.GetByID(c.Request.Context(), id); err != nil {
			respondLookupError(c, err, "ステータスが見つかりません")
			return
		}

		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}
		updated, err := s.statuses.Update(c.Request.Context(), id, req.Name)
		respondWrite(c, updated, err, "ステータスを更新しました", "ステータスを更新できませんでした")
	}
}

// handleDeleteStatus はステータス削除を処理するハンドラを返す。管理者のみ。
// タスクから参照されているステータスは削除できない。
func (s *Server) handleDeleteStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := s.statuses.GetByID(c.Request.Context(), id); err != nil {
			respondLookupError(c, err, "ステータスが見つかりません")
			return
		}
		deleted, err := s.statuses.Delete(c.Request.Context(), id)
		respondWrite(c, deleted, err, "ステータスを削除しました", "ステータスを削除できませんでした")
	}
}
