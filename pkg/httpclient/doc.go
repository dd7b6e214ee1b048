// Package httpclient はToDo APIを呼び出すJSONクライアントを提供する。
//
// ヘルスチェックコマンドやエンドツーエンドテストから使用する。
// コンテキストに設定したBearerトークンとリクエストIDをヘッダーとして伝播する。
package httpclient
