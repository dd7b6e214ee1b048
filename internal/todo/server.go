package todo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/nao1215/todo/internal/auth"
	"github.com/nao1215/todo/internal/config"
	"github.com/nao1215/todo/internal/repository"
	"github.com/nao1215/todo/internal/store"
	"github.com/nao1215/todo/pkg/middleware"
)

// shutdownTimeout は処理中のリクエストの完了を待つ最大時間。
const shutdownTimeout = 10 * time.Second

// Server はToDo APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はコネクションプールを持つデータベース接続。
	db *sqlx.DB
	// tokens はトークンの発行と検証を行う。
	tokens *auth.TokenService
	// accounts はユーザー登録とログインを行う。
	accounts *auth.Service
	// users はユーザーの永続化を行う。
	users *repository.UserRepository
	// tasks はタスクの永続化を行う。
	tasks *repository.TaskRepository
	// statuses はステータスの永続化を行う。
	statuses *repository.StatusRepository
}

// NewServer は新しいToDo APIサーバーを生成する。
// データベースを開いてマイグレーションを適用する。
func NewServer(cfg config.Config) (*Server, error) {
	db, err := store.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		return nil, fmt.Errorf("データベースの初期化に失敗: %w", err)
	}
	return newServer(db, cfg), nil
}

// newServer はオープン済みのデータベースからサーバーを組み立てる。
func newServer(db *sqlx.DB, cfg config.Config) *Server {
	registerValidators()

	g := store.New(db, store.WithCollapsedErrors(cfg.DB.CollapseErrors))
	if cfg.DB.CollapseErrors {
		log.Printf("[Server] 互換モード: データストアの障害は空の結果として扱われます")
	}

	users := repository.NewUserRepository(g)
	tokens := auth.NewTokenService(auth.TokenConfig{
		Key:      cfg.JWT.Key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:   router,
		port:     cfg.Port,
		db:       db,
		tokens:   tokens,
		accounts: auth.NewService(users, auth.NewHasher(cfg.BcryptCost), tokens),
		users:    users,
		tasks:    repository.NewTaskRepository(g),
		statuses: repository.NewStatusRepository(g),
	}
	s.setupRoutes()

	return s
}

// Handler はルーティング済みのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまでリクエストを処理する。
// キャンセル後は処理中のリクエストの完了を待ってから戻る。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[Server] シャットダウンを開始します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("シャットダウンに失敗: %w", err)
	}
	return nil
}

// Close はデータベース接続をクローズする。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	authRoutes := s.router.Group("/api/auth")
	{
		// ユーザー登録
		authRoutes.POST("/register", s.handleRegister())
		// ログイン
		authRoutes.POST("/login", s.handleLogin())
	}

	api := s.router.Group("/api")
	api.Use(auth.Authenticate(s.tokens))
	{
		statuses := api.Group("/statuses")
		{
			statuses.GET("", s.handleListStatuses())
			statuses.GET("/:id", s.handleGetStatus())
			statuses.POST("", auth.RequireAdmin(), s.handleCreateStatus())
			statuses.PUT("/:id", auth.RequireAdmin(), s.handleUpdateStatus())
			statuses.DELETE("/:id", auth.RequireAdmin(), s.handleDeleteStatus())
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks())
			tasks.GET("/:id", s.handleGetTask())
			tasks.POST("", s.handleCreateTask())
			// 更新と削除は所有者のみ
			tasks.PUT("/:id", s.handleUpdateTask())
			tasks.DELETE("/:id", s.handleDeleteTask())
		}

		users := api.Group("/users")
		{
			users.GET("", s.handleListUsers())
			users.GET("/:id", s.handleGetUser())
			users.GET("/:id/tasks", s.handleListTasksByUser())
			// 本人または管理者
			users.PUT("/:id", s.handleUpdateUser())
			users.PUT("/:id/role", auth.RequireAdmin(), s.handleUpdateUserRole())
			users.PUT("/:id/active", auth.RequireAdmin(), s.handleUpdateUserActive())
			users.DELETE("/:id", auth.RequireAdmin(), s.handleDeleteUser())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "todo"})
	})
}
