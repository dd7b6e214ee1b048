// Package repository はユーザー、タスク、ステータスの永続化操作を提供する。
//
// すべての操作は store.Gateway を経由し、文字列は書き込み前と検索前に小文字へ正規化する。
// タスクの一覧はデータベース側で id 昇順に並べ、LIMIT/OFFSET でページングする。
package repository
