package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/todo/internal/model"
	"github.com/nao1215/todo/internal/store"
)

var (
	// ErrPasswordMismatch はパスワードと確認用パスワードが一致しないことを表す。
	ErrPasswordMismatch = errors.New("パスワードが一致しません")
	// ErrEmailTaken はメールアドレスが既に登録されていることを表す。
	ErrEmailTaken = errors.New("メールアドレスは既に登録されています")
	// ErrRegistrationFailed はユーザーの書き込みに失敗したことを表す。
	ErrRegistrationFailed = errors.New("ユーザーを登録できませんでした")
	// ErrInvalidCredentials はメールアドレスまたはパスワードが誤っているか、ユーザーが無効であることを表す。
	ErrInvalidCredentials = errors.New("認証情報が正しくありません")
	// ErrTokenUnavailable はトークンを発行できなかったことを表す。認証情報の誤りとは区別する。
	ErrTokenUnavailable = errors.New("トークンを発行できませんでした")
)

// UserStore は認証処理が必要とするユーザーの永続化操作。
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (bool, error)
}

// Registration はユーザー登録の入力値。
type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials はログイン成功時に返す本人情報とトークン。
type Credentials struct {
	User  *model.User
	Token string
}

// Service はユーザー登録とログインを行う。
type Service struct {
	users  UserStore
	hasher *Hasher
	tokens *TokenService
}

// NewService は新しいServiceを生成する。
func NewService(users UserStore, hasher *Hasher, tokens *TokenService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Register は新しいユーザーを一般ユーザーロール、有効状態で登録する。
// パスワード不一致とメールアドレス重複はストアへの書き込み前に拒否する。
func (s *Service) Register(ctx context.Context, r Registration) error {
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}

	email := strings.ToLower(strings.TrimSpace(r.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return ErrEmailTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("メールアドレスの重複確認に失敗: %w", err)
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		log.Printf("[Auth] パスワードのハッシュ化に失敗: %v", err)
		return ErrRegistrationFailed
	}

	ok, err := s.users.Create(ctx, &model.User{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		Role:         model.RoleUser,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	if !ok {
		return ErrRegistrationFailed
	}
	return nil
}

// Login はメールアドレスとパスワードを検証し、トークンを発行する。
// 無効化されたユーザーはパスワードが正しくても ErrInvalidCredentials となる。
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	if !user.Active || !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Printf("[Auth] トークンの発行に失敗: user_id=%d, error=%v", user.ID, err)
		return nil, ErrTokenUnavailable
	}
	return &Credentials{User: user, Token: token}, nil
}
