package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

const handleAttempts = 5

type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	// EnsureAdmin creates the admin account if the email is unknown and
	// promotes it otherwise. An existing password is never reset.
	EnsureAdmin(ctx context.Context, name, email, password string) (*entity.User, error)
}

type authUseCase struct {
	userRepo persistent.UserRepository
	tokens   TokenIssuer
	logger   *logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewAuthUseCase(userRepo persistent.UserRepository, tokens TokenIssuer, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *authUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, "", invalid("All fields are required")
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", invalid("User already exists")
	}
	if !errors.Is(err, persistent.ErrNotFound) {
		return nil, "", err
	}

	handle, err := uc.uniqueHandle(ctx, name)
	if err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		Handle:    handle,
		Role:      "user",
		AvatarURL: DefaultAvatar(name),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("User registered: %s", user.ID)
	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) uniqueHandle(ctx context.Context, name string) (string, error) {
	for i := 0; i < handleAttempts; i++ {
		uc.rngMu.Lock()
		handle := GenerateHandle(name, uc.rng)
		uc.rngMu.Unlock()

		exists, err := uc.userRepo.HandleExists(ctx, handle)
		if err != nil {
			return "", err
		}
		if !exists {
			return handle, nil
		}
	}
	return "", fmt.Errorf("could not generate a free handle for %q", name)
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", invalid("Email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, "", unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", unauthorized("Invalid email or password")
	}

	token, err := uc.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "User")
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Admin email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role != entity.RoleAdmin {
			user.Role = entity.RoleAdmin
			if err := uc.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
			uc.logger.Warn("Promoted existing user %s to admin", user.ID)
		}
	case errors.Is(err, persistent.ErrNotFound):
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		handle, err := uc.uniqueHandle(ctx, name)
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			Name:      name,
			Email:     email,
			Password:  string(hashedPassword),
			Handle:    handle,
			Role:      entity.RoleAdmin,
			AvatarURL: DefaultAvatar(name),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		uc.logger.Warn("Created admin account %s from configuration", user.ID)
	default:
		return nil, err
	}

	user.Password = ""
	return user, nil
}
