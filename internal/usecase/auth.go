package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront-checkout/internal/pkg/auth"
)

const maxLoginLength = 64

// Session is an authenticated shopper together with its bearer token.
type Session struct {
	User  *model.User
	Token string
}

// AuthUseCase registers shoppers and exchanges credentials for tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a shopper account and opens a session for it.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*Session, error) {
	login, err := normalizeCredentials(login, password)
	if err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u.open(usr)
}

// Authenticate checks credentials and opens a session.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*Session, error) {
	login, err := normalizeCredentials(login, password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return u.open(usr)
}

// ParseToken extracts the user id from a bearer token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) open(usr *model.User) (*Session, error) {
	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: usr, Token: token}, nil
}

// normalizeCredentials trims the login and rejects values no account can have.
func normalizeCredentials(login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if utf8.RuneCountInString(login) > maxLoginLength || strings.IndexFunc(login, unicode.IsSpace) >= 0 {
		return "", domainErrors.ErrInvalidCredentials
	}
	if len(password) > pkgAuth.MaxPasswordBytes {
		return "", domainErrors.ErrInvalidCredentials
	}
	return login, nil
}
