package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalErrorMessage はパニック時にクライアントへ返すメッセージ。パニック値は返さない。
const internalErrorMessage = "内部サーバーエラーが発生しました"

// Recovery はハンドラのパニックを500レスポンスに変換するGinミドルウェアを返す。
// RequestIDより後に登録すると、ログとレスポンスボディの両方にリクエストIDが入る。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestID := GetRequestID(c)
			log.Printf("[PANIC] request_id=%s %s %s: %v", requestID, c.Request.Method, c.Request.URL.Path, r)

			body := gin.H{"error": internalErrorMessage}
			if requestID != "" {
				body["request_id"] = requestID
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}
