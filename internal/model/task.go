package model

import "time"

// Task はtodo_viewから取得したタスクを表す。
// ステータスは名前、所有者はメールアドレスとして展開される。
type Task struct {
	// ID はタスクの一意識別子。
	ID int64 `db:"id"`
	// Title はタスクのタイトル。
	Title string `db:"title"`
	// Description はタスクの説明。未設定の場合はnil。
	Description *string `db:"description"`
	// DateCreated は作成日時。
	DateCreated time.Time `db:"date_created"`
	// DateModified は最終更新日時。更新のたびに書き換えられる。
	DateModified time.Time `db:"date_modified"`
	// StatusID は参照しているステータスのID。
	StatusID int64 `db:"status_id"`
	// Status はステータス名。
	Status string `db:"status"`
	// UserID は所有者のユーザーID。
	UserID int64 `db:"user_id"`
	// Email は所有者のメールアドレス。所有者チェックに使用する。
	Email string `db:"email"`
}

// NewTask はタスク作成の入力値。
type NewTask struct {
	Title       string
	Description *string
	StatusID    int64
	UserID      int64
}

// TaskUpdate はタスクの部分更新内容を表す。
// nilまたは空白のみの文字列フィールドは更新対象外となる。
type TaskUpdate struct {
	Title       *string
	Description *string
	StatusID    *int64
}

// Status はタスクのステータスを表すルックアップ値。
type Status struct {
	// ID はステータスの一意識別子。
	ID int64 `db:"id" json:"id"`
	// Name は小文字に正規化されたステータス名。
	Name string `db:"name" json:"name"`
}
