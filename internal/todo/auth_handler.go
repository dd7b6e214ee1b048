package todo

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/todo/internal/auth"
)

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	FirstName       string `json:"first_name" binding:"required,notblank"`
	LastName        string `json:"last_name" binding:"required,notblank"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleRegister はユーザー登録を処理するハンドラを返す。
// 登録されたユーザーは一般ユーザーロールで有効状態となる。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		err := s.accounts.Register(c.Request.Context(), auth.Registration{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "ユーザーを登録しました"})
		case errors.Is(err, auth.ErrPasswordMismatch), errors.Is(err, auth.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[Todo] ユーザー登録エラー: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrRegistrationFailed.Error()})
		}
	}
}

// handleLogin はログインを処理するハンドラを返す。
// 認証に成功した場合、本人情報とトークンを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		creds, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, credentialsResponse{
				userResponse: toUserResponse(*creds.User),
				Token:        creds.Token,
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrTokenUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			log.Printf("[Todo] ログインエラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ログイン処理に失敗しました"})
		}
	}
}
