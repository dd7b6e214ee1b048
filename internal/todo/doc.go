// Package todo はToDo APIのHTTPサーバーを提供する。
//
// ユーザー登録とログイン、ステータス・タスク・ユーザーのCRUDを公開する。
// 認証が必要なルートはBearerトークンを検証し、管理者専用ルートはロールを確認する。
// タスクの更新と削除は所有者本人のみが行える。
package todo
