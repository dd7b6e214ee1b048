// ToDo APIのエントリポイント。
// 引数無しでHTTPサーバーを起動し、"healthcheck" を指定すると起動中のサーバーの疎通を確認する。
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/todo/internal/config"
	"github.com/nao1215/todo/internal/todo"
	"github.com/nao1215/todo/pkg/httpclient"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = ".env"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := healthcheck(cfg.Port); err != nil {
			log.Fatalf("ヘルスチェックに失敗: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := todo.NewServer(cfg)
	if err != nil {
		log.Fatalf("ToDoサーバーの初期化に失敗: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("データベースのクローズに失敗: %v", err)
		}
	}()

	log.Printf("ToDoサービスを起動します: :%s (driver=%s)", cfg.Port, cfg.DB.Driver)
	if err := server.Run(ctx); err != nil {
		log.Printf("ToDoサービスの起動に失敗: %v", err)
		return
	}
	log.Printf("ToDoサービスを停止しました")
}

// healthcheck はローカルで起動中のサーバーの /health を呼び出す。
// コンテナのヘルスチェックから使用する。
func healthcheck(port string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	client := httpclient.New(fmt.Sprintf("http://localhost:%s", port), httpclient.WithTimeout(5*time.Second))
	if err := client.GetJSON(ctx, "/health", &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("想定外のステータス: %q", body.Status)
	}
	return nil
}
