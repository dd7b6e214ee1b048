// Package config はToDo APIの実行時設定を読み込む。
//
// dotenv形式の設定ファイルの値を優先し、存在しないキーは環境変数、
// それも無ければデフォルト値を使用する。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DriverSQLite はmodernc.org/sqliteを使用するドライバ名。
	DriverSQLite = "sqlite"
	// DriverPostgres はlib/pqを使用するドライバ名。
	DriverPostgres = "postgres"
)

// devJWTKey はsqliteでJWT_KEYが未設定の場合に使用する開発用の署名鍵。
const devJWTKey = "dev-secret-key"

// Config はプロセス全体で共有する設定値。起動時に一度だけ構築する。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string
	// DB はデータストアの接続設定。
	DB DBConfig
	// JWT はトークンの署名・検証設定。
	JWT JWTConfig
	// BcryptCost はパスワードハッシュのコスト係数。
	BcryptCost int
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
}

// DBConfig はデータストアの接続設定。
type DBConfig struct {
	// Driver は "sqlite" または "postgres"。
	Driver string
	// URL は接続文字列。
	URL string
	// CollapseErrors がtrueの場合、障害を空の結果として扱う互換モードになる。
	CollapseErrors bool
}

// JWTConfig はトークンの署名鍵、発行者、受信者、有効期限。
// 発行時と検証時で同じ値を使用しなければならない。
type JWTConfig struct {
	Key      string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// source は設定ファイルの値を優先し、環境変数にフォールバックする値の取得元。
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v, ok := s.file[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(os.Getenv(key))
}

func (s source) getOr(key, defaultValue string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return defaultValue
}

// Load は設定ファイルと環境変数から設定を読み込む。
// pathが空、またはファイルが存在しない場合は環境変数のみを使用する。
func Load(path string) (Config, error) {
	file := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = values
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[Config] 設定ファイル %s が見つからないため環境変数を使用します", path)
		default:
			return Config{}, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
	}
	return load(source{file: file})
}

func load(src source) (Config, error) {
	cfg := Config{
		Port: src.getOr("PORT", "8080"),
		DB: DBConfig{
			Driver: strings.ToLower(src.getOr("DB_DRIVER", DriverSQLite)),
			URL:    src.get("DATABASE_URL"),
		},
		JWT: JWTConfig{
			Key:      src.get("JWT_KEY"),
			Issuer:   src.getOr("JWT_ISSUER", "todo-api"),
			Audience: src.getOr("JWT_AUDIENCE", "todo-api-clients"),
		},
	}

	switch cfg.DB.Driver {
	case DriverSQLite:
		if cfg.DB.URL == "" {
			cfg.DB.URL = "todo.db"
		}
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return Config{}, errors.New("DB_DRIVER=postgres の場合は DATABASE_URL が必要です")
		}
	default:
		return Config{}, fmt.Errorf("未対応のDB_DRIVERです: %q", cfg.DB.Driver)
	}

	collapse, err := parseBool(src.get("DB_COLLAPSE_ERRORS"))
	if err != nil {
		return Config{}, fmt.Errorf("DB_COLLAPSE_ERRORS が不正です: %w", err)
	}
	cfg.DB.CollapseErrors = collapse

	if cfg.JWT.Key == "" {
		if cfg.DB.Driver == DriverPostgres {
			return Config{}, errors.New("DB_DRIVER=postgres の場合は JWT_KEY が必要です")
		}
		log.Printf("[Config] JWT_KEY が未設定のため開発用の署名鍵を使用します")
		cfg.JWT.Key = devJWTKey
	}

	ttl, err := parseInt(src.get("JWT_TTL_MINUTES"), 12)
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL_MINUTES が不正です: %q", src.get("JWT_TTL_MINUTES"))
	}
	cfg.JWT.TTL = time.Duration(ttl) * time.Minute

	cost, err := parseInt(src.get("BCRYPT_COST"), bcrypt.DefaultCost)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST は %d から %d の範囲で指定してください: %q",
			bcrypt.MinCost, bcrypt.MaxCost, src.get("BCRYPT_COST"))
	}
	cfg.BcryptCost = cost

	cfg.AllowedOrigins = splitList(src.getOr("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return cfg, nil
}

func parseInt(raw string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
