// Package model はToDo APIのドメインモデルを定義する。
//
// ユーザー、タスク、ステータスの各エンティティと、
// 作成・部分更新・ページングの入力値を含む。
package model
