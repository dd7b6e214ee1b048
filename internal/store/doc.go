// Package store はリレーショナルストアへのデータアクセスゲートウェイを提供する。
//
// すべてのクエリは名前付きパラメータ (:name) でバインドされ、文字列連結で値を
// 埋め込むことはない。各操作は呼び出しごとにコネクションを取得し、
// どの経路で終了しても解放する。
package store
