package model

// User は登録済みユーザーを表す。
// PasswordHash はbcryptハッシュであり、平文のパスワードは保持しない。
type User struct {
	// ID はユーザーの一意識別子。
	ID int64 `db:"id"`
	// FirstName は名。
	FirstName string `db:"first_name"`
	// LastName は姓。
	LastName string `db:"last_name"`
	// Email は小文字に正規化されたメールアドレス。
	Email string `db:"email"`
	// PasswordHash はパスワードのbcryptハッシュ。
	PasswordHash string `db:"password_hash"`
	// Active がfalseのユーザーはログインできない。
	Active bool `db:"active"`
	// Role はユーザーのロール。
	Role Role `db:"role"`
}

// UserUpdate はプロフィールの部分更新内容を表す。
// nilまたは空白のみのフィールドは更新対象外となる。
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}
