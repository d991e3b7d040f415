package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"elitepainters/internal/entity"
	"elitepainters/internal/repository"
	"elitepainters/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
)

const minPasswordLength = 6

type AuthUsecase interface {
	Register(ctx context.Context, role string, req entity.RegisterRequest) (entity.AuthResponse, error)
	Login(ctx context.Context, role string, req entity.LoginRequest) (entity.AuthResponse, error)
	ValidateAccessToken(token string) (*entity.TokenClaims, error)
}

type authUsecase struct {
	adminRepo    repository.UserRepository
	customerRepo repository.UserRepository
	jwtManager   *jwt.JWTManager
}

func NewAuthUsecase(
	adminRepo repository.UserRepository,
	customerRepo repository.UserRepository,
	jwtManager *jwt.JWTManager,
) AuthUsecase {
	return &authUsecase{
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		jwtManager:   jwtManager,
	}
}

func (u *authUsecase) repoFor(role string) (repository.UserRepository, error) {
	switch role {
	case entity.RoleAdmin:
		return u.adminRepo, nil
	case entity.RoleCustomer:
		return u.customerRepo, nil
	default:
		return nil, validationError("unknown role %q", role)
	}
}

func (u *authUsecase) Register(ctx context.Context, role string, req entity.RegisterRequest) (entity.AuthResponse, error) {
	repo, err := u.repoFor(role)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return entity.AuthResponse{}, validationError("email, password and name are required")
	}
	if len(req.Password) < minPasswordLength {
		return entity.AuthResponse{}, validationError("password must be at least %d characters", minPasswordLength)
	}

	exists, err := repo.EmailExists(ctx, req.Email)
	if err != nil {
		return entity.AuthResponse{}, storeError(err)
	}
	if exists {
		return entity.AuthResponse{}, ErrEmailAlreadyTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	// stored dates keep millisecond precision
	user := entity.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		Name:      req.Name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	user.Id, err = repo.Create(ctx, user)
	if err != nil {
		return entity.AuthResponse{}, storeError(err)
	}

	return u.issue(user, role)
}

func (u *authUsecase) Login(ctx context.Context, role string, req entity.LoginRequest) (entity.AuthResponse, error) {
	repo, err := u.repoFor(role)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return entity.AuthResponse{}, ErrInvalidCredentials
		}
		return entity.AuthResponse{}, storeError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return entity.AuthResponse{}, ErrInvalidCredentials
	}

	return u.issue(user, role)
}

func (u *authUsecase) issue(user entity.User, role string) (entity.AuthResponse, error) {
	accessToken, err := u.jwtManager.GenerateAccessToken(user, role)
	if err != nil {
		return entity.AuthResponse{}, err
	}

	user.Password = ""
	return entity.AuthResponse{
		AccessToken: accessToken,
		Role:        role,
		User:        user,
	}, nil
}

func (u *authUsecase) ValidateAccessToken(token string) (*entity.TokenClaims, error) {
	return u.jwtManager.ValidateAccessToken(token)
}
