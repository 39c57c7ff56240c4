// Package auth содержит логику бизнес-уровня для регистрации, входа
// и восстановления пользователя по сессии.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sofiakuzmina/book-tracker/internal/lib/password"
	"github.com/sofiakuzmina/book-tracker/internal/models"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Неизвестный email и неверный пароль неразличимы, чтобы исключить
// перебор учётных записей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, email, passwordHash string) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Service отвечает за регистрацию и проверку учётных данных.
type Service struct {
	users UserRepository
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Register создает нового пользователя с хэшированием пароля и
// возвращает его ID. Занятый email транслируется как
// storage.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.users.RegisterUser(ctx, email, hashed)
}

// Login проверяет пароль пользователя и возвращает его запись.
// Отсутствие пользователя и несовпадение пароля дают одну и ту же
// ошибку ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser возвращает пользователя по ID из сессии. Используется при
// восстановлении сессии на каждом запросе.
func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}
