package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nao1215/todo/internal/model"
)

// TokenConfig はトークンの署名鍵、発行者、受信者、有効期限。
// 起動時に一度だけ構築し、発行と検証で同じ値を使用する。
type TokenConfig struct {
	Key      string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims はJWTトークンのクレーム（ペイロード）を表す。
type Claims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID int64 `json:"user_id"`
	// Email はユーザーのメールアドレス。所有者チェックに使用する。
	Email string `json:"email"`
	// Role はユーザーのロール。
	Role model.Role `json:"role"`
}

// TokenService はJWTの発行と検証を行う。
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenService は新しいTokenServiceを生成する。
func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// Issue はユーザー情報から署名済みトークンを生成する。
func (s *TokenService) Issue(user *model.User) (string, error) {
	if s.cfg.Key == "" {
		return "", errors.New("JWTの署名鍵が設定されていません")
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Key))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Parse はトークンの署名、発行者、受信者、有効期限を検証してクレームを返す。
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.cfg.Key), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("トークンの検証に失敗: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("トークンが無効です")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("トークンのロールが不正です: %q", claims.Role)
	}
	return claims, nil
}
