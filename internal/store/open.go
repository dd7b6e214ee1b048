package store

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/nao1215/todo/pkg/migration"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

func init() {
	// modernc.org/sqliteのドライバ名はsqlxの既定表に無いため "?" プレースホルダを登録する。
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open はドライバ名と接続文字列からデータベースを開き、マイグレーションを適用する。
// driverには "sqlite" または "postgres" を指定する。
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite":
		dsn = sqliteDSN(dsn)
	case "postgres":
	default:
		return nil, fmt.Errorf("未対応のドライバです: %q", driver)
	}

	// マイグレーションは専用の接続で実行し、完了後にクローズされる。
	migrationDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("マイグレーション用のデータベース接続に失敗: %w", err)
	}
	if err := migration.Run(migrationDB, driver, migrations, "migrations/"+driver); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}
	return db, nil
}

// sqliteDSN は外部キー制約、ビジータイムアウト、時刻フォーマットのプラグマを付与する。
// 外部キー制約はコネクションごとに有効化する必要があるため、DSNで指定する。
func sqliteDSN(dsn string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Set("_time_format", "sqlite")

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + params.Encode()
}
