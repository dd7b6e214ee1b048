package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSRouter(origins ...string) *gin.Engine {
	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/api/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// TestCORS はCORSミドルウェアを検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("許可されたオリジンからのリクエストにCORSヘッダーが設定されること", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSRouter("http://localhost:3000", "https://todo.example.com"), http.MethodGet, "/api/tasks",
			map[string]string{"Origin": "https://todo.example.com"})

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		want := map[string]string{
			"Access-Control-Allow-Origin":   "https://todo.example.com",
			"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
			"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
			"Access-Control-Expose-Headers": "X-Request-ID",
			"Access-Control-Max-Age":        "86400",
		}
		for k, v := range want {
			if got := w.Header().Get(k); got != v {
				t.Errorf("%s = %q, want %q", k, got, v)
			}
		}
	})

	t.Run("許可されていないオリジンにはCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSRouter("http://localhost:3000"), http.MethodGet, "/api/tasks",
			map[string]string{"Origin": "https://evil.com"})

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty string", got)
		}
	})

	t.Run("ワイルドカード指定時は任意のオリジンを許可すること", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSRouter(AllowAllOrigins), http.MethodGet, "/api/tasks",
			map[string]string{"Origin": "https://any.example.org"})

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://any.example.org" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://any.example.org")
		}
	})

	t.Run("Originヘッダーが無い場合はワイルドカードでもCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		w := serve(newCORSRouter(AllowAllOrigins), http.MethodGet, "/api/tasks", nil)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty string", got)
		}
	})

	t.Run("OPTIONSリクエストで204が返りハンドラーが呼ばれないこと", func(t *testing.T) {
		t.Parallel()

		handlerCalled := false
		router := gin.New()
		router.Use(CORS([]string{"http://localhost:3000"}))
		router.OPTIONS("/api/tasks", func(c *gin.Context) {
			handlerCalled = true
			c.Status(http.StatusOK)
		})

		w := serve(router, http.MethodOptions, "/api/tasks", map[string]string{"Origin": "http://localhost:3000"})

		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNoContent)
		}
		if handlerCalled {
			t.Error("OPTIONSリクエストでハンドラーが呼ばれるべきではない")
		}
	})
}
