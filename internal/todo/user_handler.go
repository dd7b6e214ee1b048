package todo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/todo/internal/auth"
	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/repository"
	"github.com/nao1215/todo/internal/store"
)

// updateUserRequest はプロフィール更新リクエストのJSON構造。
// 指定されたフィールドのみ更新される。
type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// updateRoleRequest はロール更新リクエストのJSON構造。
type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// updateActiveRequest は有効状態更新リクエストのJSON構造。
type updateActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// handleListUsers はユーザー一覧取得を処理するハンドラを返す。
// パスワードハッシュはレスポンスに含めない。
func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.users.List(c.Request.Context())
		if err != nil || users == nil {
			respondFailure(c, "ユーザー一覧の取得に失敗しました", err)
			return
		}
		responses := make([]userResponse, 0, len(users))
		for _, u := range users {
			responses = append(responses, toUserResponse(u))
		}
		c.JSON(http.StatusOK, responses)
	}
}

// handleGetUser はユーザー取得を処理するハンドラを返す。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.existingUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toUserResponse(*user))
	}
}

// handleUpdateUser はプロフィール更新を処理するハンドラを返す。
// 本人または管理者のみ更新でき、メールアドレスの変更時は重複を確認する。
func (s *Server) handleUpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.existingUser(c)
		if !ok {
			return
		}
		if err := auth.RequireSelfOrAdmin(auth.GetClaims(c), user.ID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		ctx := c.Request.Context()
		if req.Email != nil {
			other, err := s.users.FindByEmail(ctx, *req.Email)
			switch {
			case err == nil && other.ID != user.ID:
				c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrEmailTaken.Error()})
				return
			case err != nil && !errors.Is(err, store.ErrNotFound):
				respondFailure(c, "メールアドレスの重複確認に失敗しました", err)
				return
			}
		}

		updated, err := s.users.Update(ctx, user.ID, model.UserUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		})
		if errors.Is(err, repository.ErrNoChanges) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondWrite(c, updated, err, "ユーザー情報を更新しました", "ユーザー情報を更新できませんでした")
	}
}

// handleUpdateUserRole はロール更新を処理するハンドラを返す。管理者のみ。
func (s *Server) handleUpdateUserRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.existingUser(c)
		if !ok {
			return
		}

		var req updateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}
		role, err := model.ParseRole(req.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := s.users.UpdateRole(c.Request.Context(), user.ID, role)
		respondWrite(c, updated, err, "ロールを更新しました", "ロールを更新できませんでした")
	}
}

// handleUpdateUserActive は有効状態の更新を処理するハンドラを返す。管理者のみ。
func (s *Server) handleUpdateUserActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.existingUser(c)
		if !ok {
			return
		}

		var req updateActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		updated, err := s.users.UpdateActive(c.Request.Context(), user.ID, *req.Active)
		respondWrite(c, updated, err, "有効状態を更新しました", "有効状態を更新できませんでした")
	}
}

// handleDeleteUser はユーザー削除を処理するハンドラを返す。管理者のみ。
// 所有するタスクも削除される。
func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.existingUser(c)
		if !ok {
			return
		}
		deleted, err := s.users.Delete(c.Request.Context(), user.ID)
		respondWrite(c, deleted, err, "ユーザーを削除しました", "ユーザーを削除できませんでした")
	}
}

// existingUser はパスパラメータのユーザーを取得する。
// 見つからなければ404を返してfalseとなる。
func (s *Server) existingUser(c *gin.Context) (*model.User, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	user, err := s.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err, "ユーザーが見つかりません")
		return nil, false
	}
	return user, true
}
