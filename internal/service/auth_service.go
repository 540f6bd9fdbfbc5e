package service

import (
	"context"
	"strings"
	"time"

	"github.com/JuanTorresCortes/auth-server/internal/model"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/jwt"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/password"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/timeutil"
	"github.com/JuanTorresCortes/auth-server/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*model.User, error) {
	now := timeutil.NowUnix()
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           newID(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		TaskIDs:      []string{},
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login fails with ErrUnauthorized for both an unknown email and a wrong
// password so the response cannot reveal which one it was.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", appErr.ErrUnauthorized
		}
		return "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
}

// Validate resolves a verified token identity back to the account email.
func (s *AuthService) Validate(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", appErr.ErrUnauthorized
		}
		return "", err
	}
	return user.Email, nil
}
