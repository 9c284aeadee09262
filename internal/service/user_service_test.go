package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/apperrors"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
)

func newUserService(dir *fakeDirectory) (*UserService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(dir, tokens, zap.NewNop().Sugar()), tokens
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a bcrypt password hash", func(t *testing.T) {
		req := require.New(t)
		dir := newFakeDirectory()
		svc, _ := newUserService(dir)

		user, err := svc.Register(ctx, "alice", "alice@example.com", "supersecret")
		req.NoError(err)
		req.Equal("alice", user.Username)
		req.NoError(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		req := require.New(t)
		dir := newFakeDirectory(&models.User{Username: "alice", Email: "alice@example.com"})
		svc, _ := newUserService(dir)

		_, err := svc.Register(ctx, "alice2", "alice@example.com", "supersecret")
		req.ErrorIs(err, apperrors.ErrConflict)
	})

	tests := []struct {
		description string
		username    string
		password    string
	}{
		{"rejects an empty username", "", "supersecret"},
		{"rejects an empty password", "alice", ""},
		{"rejects a short password", "alice", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			svc, _ := newUserService(newFakeDirectory())
			_, err := svc.Register(ctx, tt.username, "alice@example.com", tt.password)
			req.ErrorIs(err, apperrors.ErrBadRequest)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	seedUser := func(password string) *fakeDirectory {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return newFakeDirectory(&models.User{
			Username: "alice",
			Email:    "alice@example.com",
			Password: string(hash),
		})
	}

	t.Run("returns a token carrying the email identity", func(t *testing.T) {
		req := require.New(t)
		svc, tokens := newUserService(seedUser("supersecret"))

		token, err := svc.Login(ctx, "alice@example.com", "supersecret")
		req.NoError(err)

		identity, err := tokens.Verify(token)
		req.NoError(err)
		req.Equal("alice@example.com", identity)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newUserService(seedUser("supersecret"))

		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		req.ErrorIs(err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newUserService(newFakeDirectory())

		_, err := svc.Login(ctx, "ghost@example.com", "supersecret")
		req.ErrorIs(err, apperrors.ErrConflict)
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()

	profile := &models.Profile{
		Name:      "Alice",
		Birthday:  "1995-06-01",
		Horoscope: "Gemini",
		Zodiac:    "Pig",
		Height:    165,
		Weight:    55,
		Interests: []string{"music"},
	}

	t.Run("creates and reads back a profile", func(t *testing.T) {
		req := require.New(t)
		dir := newFakeDirectory(&models.User{Username: "alice", Email: "alice@example.com"})
		svc, _ := newUserService(dir)

		_, err := svc.CreateProfile(ctx, "alice@example.com", profile)
		req.NoError(err)

		user, err := svc.GetProfile(ctx, "alice@example.com")
		req.NoError(err)
		req.Equal("Alice", user.Profile.Name)
	})

	t.Run("refuses to create a profile twice", func(t *testing.T) {
		req := require.New(t)
		dir := newFakeDirectory(&models.User{Username: "alice", Email: "alice@example.com", Profile: profile})
		svc, _ := newUserService(dir)

		_, err := svc.CreateProfile(ctx, "alice@example.com", profile)
		req.ErrorIs(err, apperrors.ErrInternal)
	})

	t.Run("update merges only the provided fields", func(t *testing.T) {
		req := require.New(t)
		existing := *profile
		dir := newFakeDirectory(&models.User{Username: "alice", Email: "alice@example.com", Profile: &existing})
		svc, _ := newUserService(dir)

		user, err := svc.UpdateProfile(ctx, "alice@example.com", &models.Profile{Height: 170})
		req.NoError(err)
		req.Equal(170, user.Profile.Height)
		req.Equal("Alice", user.Profile.Name)
		req.Equal([]string{"music"}, user.Profile.Interests)
	})

	t.Run("profile lookups for unknown users fail with NotFound", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newUserService(newFakeDirectory())

		_, err := svc.GetProfile(ctx, "ghost@example.com")
		req.ErrorIs(err, apperrors.ErrNotFound)

		_, err = svc.CreateProfile(ctx, "ghost@example.com", profile)
		req.ErrorIs(err, apperrors.ErrNotFound)
	})

	t.Run("missing profile is NotFound", func(t *testing.T) {
		req := require.New(t)
		dir := newFakeDirectory(&models.User{Username: "alice", Email: "alice@example.com"})
		svc, _ := newUserService(dir)

		_, err := svc.GetProfile(ctx, "alice@example.com")
		req.ErrorIs(err, apperrors.ErrNotFound)
	})
}

func TestUserService_BuildProfileResponse(t *testing.T) {
	req := require.New(t)
	svc, _ := newUserService(newFakeDirectory())

	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Profile:  &models.Profile{Name: "Alice", Height: 165},
	}
	resp := svc.BuildProfileResponse("found", user)
	req.Equal("found", resp.Message)
	req.Equal("alice", resp.Data.Username)
	req.Equal("alice@example.com", resp.Data.Email)
	req.Equal("Alice", resp.Data.Name)
	req.Equal(165, resp.Data.Height)
}
