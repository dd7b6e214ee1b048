package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound は単一行の取得で該当する行が無かったことを表す。
// 互換モードでは障害発生時にもこのエラーを返す。
var ErrNotFound = errors.New("該当するデータが見つかりません")

// Params はクエリの名前付きパラメータ。キーはクエリ中の :name に対応する。
type Params map[string]any

// Gateway はパラメータ化クエリを実行し、結果を型付きの値に変換する。
// コネクションは呼び出しごとに取得・解放し、複数の呼び出しをまたいで保持しない。
type Gateway struct {
	// db はコネクションプールを持つデータベースハンドル。
	db *sqlx.DB
	// collapse がtrueの場合、障害を空の結果として返す。
	collapse bool
}

// Option はGatewayの生成オプション。
type Option func(*Gateway)

// WithCollapsedErrors は障害をログ出力した上で空の結果 (ErrNotFound / nil / false) として
// 返す互換モードを設定する。呼び出し元は「該当なし」と「障害」を区別できなくなる。
func WithCollapsedErrors(collapse bool) Option {
	return func(g *Gateway) {
		g.collapse = collapse
	}
}

// New は新しいGatewayを生成する。dbのクローズは呼び出し元が行う。
func New(db *sqlx.DB, opts ...Option) *Gateway {
	g := &Gateway{db: db}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// QueryOne はクエリを実行して先頭の1行をTに変換して返す。
// 該当行が無い場合は ErrNotFound を返す。
func QueryOne[T any](ctx context.Context, g *Gateway, query string, params Params) (*T, error) {
	var dest T
	err := g.withConn(ctx, query, params, func(conn *sqlx.Conn, q string, args []any) error {
		return conn.GetContext(ctx, &dest, q, args...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("[Store] 単一行の取得に失敗: %v", err)
		if g.collapse {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("単一行の取得に失敗: %w", err)
	}
	return &dest, nil
}

// QueryMany はクエリを実行してすべての行をTのスライスに変換して返す。
// 該当行が無い場合は空のスライス (nilではない) を返す。
// 互換モードでの障害時はnilスライスとnilエラーを返す。
func QueryMany[T any](ctx context.Context, g *Gateway, query string, params Params) ([]T, error) {
	rows := make([]T, 0)
	err := g.withConn(ctx, query, params, func(conn *sqlx.Conn, q string, args []any) error {
		return conn.SelectContext(ctx, &rows, q, args...)
	})
	if err != nil {
		log.Printf("[Store] 複数行の取得に失敗: %v", err)
		if g.collapse {
			return nil, nil
		}
		return nil, fmt.Errorf("複数行の取得に失敗: %w", err)
	}
	return rows, nil
}

// Execute は更新系クエリを実行し、1行以上が影響を受けたかどうかを返す。
func (g *Gateway) Execute(ctx context.Context, query string, params Params) (bool, error) {
	var affected int64
	err := g.withConn(ctx, query, params, func(conn *sqlx.Conn, q string, args []any) error {
		res, err := conn.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Printf("[Store] クエリの実行に失敗: %v", err)
		if g.collapse {
			return false, nil
		}
		return false, fmt.Errorf("クエリの実行に失敗: %w", err)
	}
	return affected > 0, nil
}

// withConn は名前付きパラメータをバインドし、取得したコネクションでfnを実行する。
// コネクションはfnの結果に関わらず解放される。
func (g *Gateway) withConn(ctx context.Context, query string, params Params, fn func(conn *sqlx.Conn, q string, args []any) error) error {
	if params == nil {
		params = Params{}
	}
	named, args, err := sqlx.Named(query, map[string]any(params))
	if err != nil {
		return fmt.Errorf("パラメータのバインドに失敗: %w", err)
	}

	conn, err := g.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("コネクションの取得に失敗: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return fn(conn, conn.Rebind(named), args)
}
