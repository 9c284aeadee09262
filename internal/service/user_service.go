package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/apperrors"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("incorrect password")

type UserService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	log    *zap.SugaredLogger
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, log *zap.SugaredLogger) *UserService {
	return &UserService{repo: repo, tokens: tokens, log: log}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var problems []string
	if username == "" {
		problems = append(problems, "username should not be empty")
	}
	if password == "" {
		problems = append(problems, "password should not be empty")
	}
	if len(password) < 8 {
		problems = append(problems, "password must be longer than or equal to 8 characters")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(problems, "; "), apperrors.ErrBadRequest)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", apperrors.ErrInternal)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", apperrors.ErrInternal)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		s.log.Errorw("user create failed", "email", email, "err", err)
		return nil, fmt.Errorf("create user: %w", apperrors.ErrInternal)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed access token carrying
// the user's email identity.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", fmt.Errorf("user not found: %w", apperrors.ErrConflict)
		}
		return "", fmt.Errorf("find user: %w", apperrors.ErrInternal)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", apperrors.ErrInternal)
	}
	return token, nil
}

func (s *UserService) CreateProfile(ctx context.Context, email string, p *models.Profile) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", apperrors.ErrInternal)
	}
	if user.Profile != nil {
		return nil, fmt.Errorf("profile already exists: %w", apperrors.ErrInternal)
	}
	if err := s.repo.UpdateProfile(ctx, email, p); err != nil {
		return nil, fmt.Errorf("store profile: %w", apperrors.ErrInternal)
	}
	user.Profile = p
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, p *models.Profile) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", apperrors.ErrInternal)
	}
	merged := mergeProfile(user.Profile, p)
	if err := s.repo.UpdateProfile(ctx, email, merged); err != nil {
		return nil, fmt.Errorf("store profile: %w", apperrors.ErrInternal)
	}
	user.Profile = merged
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", apperrors.ErrInternal)
	}
	if user.Profile == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *UserService) BuildProfileResponse(message string, user *models.User) models.ProfileResponse {
	data := models.ProfileData{
		Email:    user.Email,
		Username: user.Username,
	}
	if p := user.Profile; p != nil {
		data.Name = p.Name
		data.Birthday = p.Birthday
		data.Horoscope = p.Horoscope
		data.Zodiac = p.Zodiac
		data.Height = p.Height
		data.Weight = p.Weight
		data.Interests = p.Interests
	}
	return models.ProfileResponse{Message: message, Data: data}
}

func mergeProfile(current, update *models.Profile) *models.Profile {
	if current == nil {
		return update
	}
	merged := *current
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Birthday != "" {
		merged.Birthday = update.Birthday
	}
	if update.Horoscope != "" {
		merged.Horoscope = update.Horoscope
	}
	if update.Zodiac != "" {
		merged.Zodiac = update.Zodiac
	}
	if update.Height != 0 {
		merged.Height = update.Height
	}
	if update.Weight != 0 {
		merged.Weight = update.Weight
	}
	if len(update.Interests) != 0 {
		merged.Interests = update.Interests
	}
	return &merged
}
