// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// リクエストIDの付与、パニックリカバリ、CORS設定を含む。
// 認証は internal/auth が提供する。
package middleware
