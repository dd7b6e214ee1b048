package todo

import (
	"log"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerValidatorsOnce sync.Once

// registerValidators はリクエストのバインドで使う独自タグをGinのバリデータに登録する。
//
//	notblank: 空白のみの文字列を拒否する。
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("[Server] バリデータの型が想定外のため独自タグを登録できません")
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			log.Printf("[Server] notblankタグの登録に失敗: %v", err)
		}
	})
}
