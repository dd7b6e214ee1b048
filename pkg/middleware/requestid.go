package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを運ぶHTTPヘッダー名。
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID はリクエストIDをGinコンテキストに格納するキー。
const contextKeyRequestID = "request_id"

// maxRequestIDLength はクライアントから受け取るリクエストIDの最大長。
const maxRequestIDLength = 128

// RequestID はリクエストごとにIDを付与するGinミドルウェアを返す。
// クライアントが X-Request-ID を送った場合はその値を引き継ぎ、無ければUUIDを生成する。
// IDはレスポンスヘッダーにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
// RequestID ミドルウェアが適用されていない場合は空文字を返す。
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
