package model

import "math"

const (
	// DefaultPageSize はpageSizeが指定されなかった場合の件数。
	DefaultPageSize = 10
	// MaxPageSize は1ページあたりの最大件数。
	MaxPageSize = 100
)

// Page はページング指定を表す。Numberは1始まり。
type Page struct {
	Number int
	Size   int
}

// NewPage は範囲外の値を補正したページ指定を返す。
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// Offsetがintに収まる最後のページで頭打ちにする。
	if maxNumber := math.MaxInt/size + 1; number > maxNumber {
		number = maxNumber
	}
	return Page{Number: number, Size: size}
}

// Offset は読み飛ばす件数 (Number-1)*Size を返す。
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit は取得する件数を返す。
func (p Page) Limit() int {
	return p.Size
}
