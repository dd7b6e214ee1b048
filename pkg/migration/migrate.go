// Package migration はデータベースのマイグレーションを管理する。
// embed.FSからSQLファイルを読み込み、golang-migrateのバージョン管理テーブルで適用状態を追跡する。
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Run はembedされたマイグレーションファイルを順序通りに適用する。
// 未適用のマイグレーションのみ実行し、適用済みのものはスキップする。
// ファイル名形式: 000001_description.up.sql / 000001_description.down.sql
//
// driverには "sqlite" または "postgres" を指定する。
// dbはマイグレーション専用の接続として扱い、完了後にクローズする。
func Run(db *sql.DB, driver string, fsys fs.FS, dir string) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("マイグレーションファイルの読み込みに失敗: %w", err)
	}

	target, err := databaseDriver(db, driver)
	if err != nil {
		_ = src.Close()
		_ = db.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = src.Close()
		_ = target.Close()
		return fmt.Errorf("マイグレーションの初期化に失敗: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("[Migration] クローズに失敗: source=%v, database=%v", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("適用済みバージョンの取得に失敗: %w", err)
	}
	log.Printf("[Migration] マイグレーション %06d を適用しました (dirty=%t)", version, dirty)
	return nil
}

// databaseDriver はドライバ名に対応するgolang-migrateのデータベースドライバを返す。
func databaseDriver(db *sql.DB, driver string) (database.Driver, error) {
	switch driver {
	case "sqlite":
		d, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("sqliteマイグレーションドライバの初期化に失敗: %w", err)
		}
		return d, nil
	case "postgres":
		d, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return nil, fmt.Errorf("postgresマイグレーションドライバの初期化に失敗: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("未対応のドライバです: %q", driver)
	}
}
