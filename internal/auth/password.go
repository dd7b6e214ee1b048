package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher はbcryptによるパスワードハッシュの生成と検証を行う。
type Hasher struct {
	// cost はbcryptのコスト係数。
	cost int
}

// NewHasher は指定したコスト係数のHasherを生成する。
// 範囲外のコストはbcrypt.DefaultCostに置き換える。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash はソルト付きのハッシュを生成する。
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	return string(hashed), nil
}

// Verify はパスワードがハッシュと一致するかを定数時間で比較する。
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
