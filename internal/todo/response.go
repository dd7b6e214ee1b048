package todo

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

// timeFormat はレスポンスの日時フォーマット。
const timeFormat = time.RFC3339

// userResponse はパスワードハッシュを除いたユーザーのJSONレスポンス構造。
type userResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
	Role      string `json:"role"`
}

// credentialsResponse はログイン成功時のJSONレスポンス構造。
type credentialsResponse struct {
	userResponse
	// Token はBearerトークン。
	Token string `json:"token"`
}

// taskResponse はタスクのJSONレスポンス構造。
type taskResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
	StatusID     int64   `json:"status_id"`
	Status       string  `json:"status"`
	UserID       int64   `json:"user_id"`
	Email        string  `json:"email"`
}

// toUserResponse はユーザーをJSONレスポンスに変換する。
func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Active:    u.Active,
		Role:      u.Role.String(),
	}
}

// toTaskResponse はタスクをJSONレスポンスに変換する。
func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DateCreated:  t.DateCreated.UTC().Format(timeFormat),
		DateModified: t.DateModified.UTC().Format(timeFormat),
		StatusID:     t.StatusID,
		Status:       t.Status,
		UserID:       t.UserID,
		Email:        t.Email,
	}
}

func toTaskResponses(tasks []model.Task) []taskResponse {
	responses := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	return responses
}

// parseID はパスパラメータ :id を正の整数として取得する。
// 不正な場合は400を返してfalseとなる。
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IDが不正です"})
		return 0, false
	}
	return id, true
}

// respondLookupError は単一行の取得エラーを、該当なしなら404、障害なら400として返す。
func respondLookupError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	respondFailure(c, "データの取得に失敗しました", err)
}

// respondFailure は永続化層の障害をログに出力し、400として返す。
func respondFailure(c *gin.Context, message string, err error) {
	if err != nil {
		log.Printf("[Todo] %s: %v", message, err)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// respondWrite は書き込み結果を、成功なら200とmessage、失敗なら400として返す。
func respondWrite(c *gin.Context, ok bool, err error, success, failure string) {
	if err != nil || !ok {
		respondFailure(c, failure, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": success})
}
