package repository

import (
	"errors"
	"strings"

	"github.com/nao1215/todo/internal/store"
)

// ErrNoChanges は部分更新で書き込む項目が1つも無いことを表す。
var ErrNoChanges = errors.New("更新する項目がありません")

// assignments はUPDATE文のSET句を組み立てる。
// 追加された列のみを "col = :col" の形で区切り文字 ", " で連結する。
type assignments struct {
	cols   []string
	params store.Params
}

func newAssignments() *assignments {
	return &assignments{params: store.Params{}}
}

// set は列と値を追加する。
func (a *assignments) set(col string, value any) {
	a.cols = append(a.cols, col)
	a.params[col] = value
}

// setText はnilまたは空白のみの場合を除き、小文字に正規化した値を追加する。
func (a *assignments) setText(col string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	a.set(col, normalize(*value))
}

// update は "UPDATE table SET ... WHERE id = :id" を返す。
// 追加された列が無い場合は ErrNoChanges を返す。
func (a *assignments) update(table string, id int64) (string, store.Params, error) {
	if len(a.cols) == 0 {
		return "", nil, ErrNoChanges
	}
	sets := make([]string, 0, len(a.cols))
	for _, col := range a.cols {
		sets = append(sets, col+" = :"+col)
	}
	a.params["id"] = id
	return "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE id = :id", a.params, nil
}

// normalize は前後の空白を除いて小文字に変換する。
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
