package auth

import (
	"errors"
	"strings"

	"github.com/nao1215/todo/internal/model"
)

var (
	// ErrForbidden はロールが不足していることを表す。
	ErrForbidden = errors.New("この操作を行う権限がありません")
	// ErrNotOwner はリソースの所有者ではないことを表す。
	ErrNotOwner = errors.New("自分のものではないリソースは操作できません")
)

// RequireRole は呼び出し元が指定ロールを持つかを判定する。
func RequireRole(claims *Claims, role model.Role) error {
	if claims == nil || claims.Role != role {
		return ErrForbidden
	}
	return nil
}

// IsAdmin は呼び出し元が管理者かどうかを返す。
func IsAdmin(claims *Claims) bool {
	return RequireRole(claims, model.RoleAdmin) == nil
}

// RequireOwner は取得済みタスクの所有者メールアドレスと呼び出し元のメールアドレスを比較する。
// タスクの存在確認はこの判定より前に済ませておくこと。
func RequireOwner(claims *Claims, ownerEmail string) error {
	if claims == nil || !strings.EqualFold(claims.Email, ownerEmail) {
		return ErrNotOwner
	}
	return nil
}

// RequireSelfOrAdmin は対象ユーザーが呼び出し元本人であるか、呼び出し元が管理者であるかを判定する。
func RequireSelfOrAdmin(claims *Claims, userID int64) error {
	if claims == nil {
		return ErrForbidden
	}
	if claims.UserID == userID || IsAdmin(claims) {
		return nil
	}
	return ErrForbidden
}
