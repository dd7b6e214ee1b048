package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/todo/internal/model"
)

// contextKeyClaims は検証済みクレームをGinコンテキストに格納するキー。
const contextKeyClaims = "claims"

// Authenticate はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストにクレームを設定する。
func Authenticate(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorizationヘッダーが必要です",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer トークン形式が不正です",
			})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin は管理者ロール以外のリクエストを拒否するGinミドルウェアを返す。
// Authenticateの後に適用する必要がある。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "認証情報が取得できません",
			})
			return
		}
		if err := RequireRole(claims, model.RoleAdmin); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.Next()
	}
}

// GetClaims はGinコンテキストから検証済みクレームを取得する。
// 未認証の場合はnilを返す。
func GetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// SetClaims はGinコンテキストにクレームを設定する。
// トークンを経由せずにハンドラを検証するテストで使用する。
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(contextKeyClaims, claims)
}
