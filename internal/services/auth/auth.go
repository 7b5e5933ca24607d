// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kinobilet/movie-catalog/internal/lib/jwt"
	"github.com/kinobilet/movie-catalog/internal/lib/password"
	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	// Возвращает storage.ErrUserExists при занятом username или email.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени
	// или storage.ErrUserNotFound, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, проверку учетных данных и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает его публичное представление без хэша.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.UserView, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashed,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return &models.UserView{
		ID:        id,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// ValidateCredentials проверяет пару username/password.
//
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего:
// в обоих случаях возвращается (nil, nil), а не ошибка. Ошибка означает
// сбой хранилища, а не несовпадение учетных данных.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, rawPassword string) (*models.UserView, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil
	}
	return user.View(), nil
}

// Login выдает JWT с userId и username для уже проверенного пользователя.
// Никакого состояния сессии при этом не создается.
func (s *AuthService) Login(_ context.Context, user *models.UserView) (string, error) {
	return s.jwtMaker.GenerateToken(user.ID, user.Username)
}
