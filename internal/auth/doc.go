// Package auth は認証と認可を提供する。
//
// パスワードのbcryptハッシュ化と検証、JWTの発行と検証、
// 管理者ロールと所有者チェックの判定、およびそれらを適用するGinミドルウェアを含む。
package auth
