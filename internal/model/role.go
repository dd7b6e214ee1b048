package model

import (
	"errors"
	"strings"
)

// Role はユーザーのロールを表す。
// 取り得る値は RoleAdmin と RoleUser のみで、それ以外は ParseRole で拒否される。
type Role string

const (
	// RoleAdmin はステータス管理やユーザー管理が可能な管理者ロール。
	RoleAdmin Role = "admin"
	// RoleUser は登録時に付与される一般ユーザーロール。
	RoleUser Role = "user"
)

// ErrInvalidRole は存在しないロール名が指定されたことを表す。
var ErrInvalidRole = errors.New("存在しないロールです")

// ParseRole は文字列をロールに変換する。大文字小文字と前後の空白は無視する。
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid はロールが既知の値かどうかを返す。
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// String はロール名を返す。
func (r Role) String() string {
	return string(r)
}
