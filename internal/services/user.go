package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/config"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo      repository.UserRepository
	rateRepo  repository.RateLimitRepository
	tokenRepo repository.TokenRepository
	security  config.Security
}

func NewUserService(repo repository.UserRepository, rateRepo repository.RateLimitRepository, tokenRepo repository.TokenRepository, security config.Security) *UserService {
	return &UserService{
		repo:      repo,
		rateRepo:  rateRepo,
		tokenRepo: tokenRepo,
		security:  security,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	return s.issueTokens(ctx, user)
}

// Refresh trades a one-time refresh token for a fresh token pair. The old
// token is consumed atomically, so replaying it yields an unauthorized error.
func (s *UserService) Refresh(ctx context.Context, req *models.RefreshRequest) (*models.LoginResponse, error) {

	userID, err := s.tokenRepo.ConsumeRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if err == repository.ErrTokenNotFound {
			return nil, errors.UnauthorizedError("Invalid or expired refresh token")
		}
		return nil, errors.ThirdPartyError("Failed to verify refresh token").WithError(err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.UnauthorizedError("User no longer exists").WithError(err)
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*models.LoginResponse, error) {

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.security.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.security.JWTKey))
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	refreshToken := uuid.NewString()

	if err := s.tokenRepo.StoreRefreshToken(ctx, refreshToken, user.ID, s.security.RefreshTokenTTL); err != nil {
		return nil, errors.ThirdPartyError("Failed to store refresh token").WithError(err)
	}

	return &models.LoginResponse{
		Success:      true,
		AccessToken:  tokenString,
		RefreshToken: refreshToken,
		ExpiresIn:    int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return user, nil
}

func (s *UserService) ListCustomers(ctx context.Context, page, size int) ([]models.User, int, error) {

	users, total, err := s.repo.ListCustomers(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list customers").WithError(err)
	}

	return users, total, nil
}
