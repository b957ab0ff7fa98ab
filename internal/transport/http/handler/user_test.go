package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskloop/taskloop/internal/domain"
	"github.com/taskloop/taskloop/internal/repository"
	"github.com/taskloop/taskloop/internal/transport/http/handler"
)

type fakeUserUsecase struct {
	profile       func(ctx context.Context, userID string) (*domain.User, error)
	updateProfile func(ctx context.Context, userID string, input repository.UpdateProfileInput) (*domain.User, error)
}

func (f *fakeUserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return f.profile(ctx, userID)
}

func (f *fakeUserUsecase) UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) (*domain.User, error) {
	return f.updateProfile(ctx, userID, input)
}

func newUserEngine(uc *fakeUserUsecase) *gin.Engine {
	h := handler.NewUserHandler(uc, testLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "user-1") })
	r.GET("/api/v1/me", h.Me)
	r.PUT("/api/v1/me", h.UpdateMe)
	return r
}

func TestMe_ReturnsProfile(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	uc := &fakeUserUsecase{
		profile: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			u := *annUser
			u.CreatedAt = created
			return &u, nil
		},
	}

	w, env := doJSON(t, newUserEngine(uc), http.MethodGet, "/api/v1/me", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data struct {
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Email != "ann@x.com" {
		t.Errorf("email = %q", data.Email)
	}
	if !data.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", data.CreatedAt, created)
	}
}

func TestMe_UnknownUser_Returns404(t *testing.T) {
	uc := &fakeUserUsecase{
		profile: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w, env := doJSON(t, newUserEngine(uc), http.MethodGet, "/api/v1/me", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Message != "User not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateMe_ForwardsOnlyPresentFields(t *testing.T) {
	var captured repository.UpdateProfileInput
	uc := &fakeUserUsecase{
		updateProfile: func(_ context.Context, _ string, input repository.UpdateProfileInput) (*domain.User, error) {
			captured = input
			return annUser, nil
		},
	}

	w, env := doJSON(t, newUserEngine(uc), http.MethodPut, "/api/v1/me",
		`{"name":"Annie"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Message != "Profile updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if captured.Name == nil || *captured.Name != "Annie" {
		t.Errorf("name = %v", captured.Name)
	}
	if captured.Email != nil {
		t.Error("absent email must stay nil")
	}
}

func TestUpdateMe_InvalidEmail_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{}
	w, env := doJSON(t, newUserEngine(uc), http.MethodPut, "/api/v1/me",
		`{"email":"nope"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Message != "Please provide a valid email" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateMe_EmailTaken_Returns409(t *testing.T) {
	uc := &fakeUserUsecase{
		updateProfile: func(_ context.Context, _ string, _ repository.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	w, env := doJSON(t, newUserEngine(uc), http.MethodPut, "/api/v1/me",
		`{"email":"taken@x.com"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if env.Message != "Email already exists" {
		t.Errorf("message = %q", env.Message)
	}
}
