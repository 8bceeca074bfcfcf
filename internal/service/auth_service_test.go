package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/identity"
)

type mockProfileRepo struct {
	profiles  map[string]domain.Profile
	createErr error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func newSignUpProvider(created *identity.SignUpInput) *identity.MockProvider {
	return &identity.MockProvider{
		GetUserByEmailFunc: func(_ context.Context, _ string) (identity.User, error) {
			return identity.User{}, identity.ErrUserNotFound
		},
		SignUpFunc: func(_ context.Context, input identity.SignUpInput) (identity.User, error) {
			if created != nil {
				*created = input
			}
			return identity.User{ID: "prov-1", Email: input.Email, UserMetadata: input.Metadata}, nil
		},
	}
}

func validInput() SignUpInput {
	return SignUpInput{
		Email:    "student@example.com",
		Password: "secret6",
		Username: "student",
		Phone:    "5551234",
	}
}

func TestSignUpPasswordBoundary(t *testing.T) {
	svc := NewAuthService(zap.NewNop(), newSignUpProvider(nil), newMockProfileRepo(), "topsecret", "", nil)

	input := validInput()
	input.Password = "12345"
	if _, err := svc.SignUp(context.Background(), input); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort for 5 chars, got %v", err)
	}

	input.Password = "123456"
	result, err := svc.SignUp(context.Background(), input)
	if err != nil {
		t.Fatalf("expected 6-char password to pass, got %v", err)
	}
	if result.Status != SignUpStatusRegistered {
		t.Fatalf("expected registered status, got %q", result.Status)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := NewAuthService(zap.NewNop(), newSignUpProvider(nil), newMockProfileRepo(), "topsecret", "", nil)

	input := validInput()
	input.Username = ""
	if _, err := svc.SignUp(context.Background(), input); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	input = validInput()
	input.Email = "not-an-email"
	if _, err := svc.SignUp(context.Background(), input); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestSignUpRoleDerivation(t *testing.T) {
	var captured identity.SignUpInput
	svc := NewAuthService(zap.NewNop(), newSignUpProvider(&captured), newMockProfileRepo(), "topsecret", "", nil)

	input := validInput()
	input.AdminCode = "topsecret"
	result, err := svc.SignUp(context.Background(), input)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role for matching code, got %q", result.Role)
	}
	if captured.Metadata.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role in provider metadata, got %q", captured.Metadata.Role)
	}

	input.Email = "other@example.com"
	input.AdminCode = "wrong"
	result, err = svc.SignUp(context.Background(), input)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Role != domain.RoleUser {
		t.Fatalf("expected user role for wrong code, got %q", result.Role)
	}
}

func TestSignUpRoleDerivationHashedCode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("topsecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	svc := NewAuthService(zap.NewNop(), newSignUpProvider(nil), newMockProfileRepo(), "", string(hash), nil)

	input := validInput()
	input.AdminCode = "topsecret"
	result, err := svc.SignUp(context.Background(), input)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role via hashed code, got %q", result.Role)
	}

	input.Email = "other@example.com"
	input.AdminCode = "guess"
	result, err = svc.SignUp(context.Background(), input)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Role != domain.RoleUser {
		t.Fatalf("expected user role for wrong code, got %q", result.Role)
	}
}

func TestSignUpExistingUnverifiedResends(t *testing.T) {
	resent := false
	provider := &identity.MockProvider{
		GetUserByEmailFunc: func(_ context.Context, email string) (identity.User, error) {
			return identity.User{ID: "prov-1", Email: email}, nil
		},
		ResendFunc: func(_ context.Context, _ string) error {
			resent = true
			return nil
		},
		SignUpFunc: func(_ context.Context, _ identity.SignUpInput) (identity.User, error) {
			t.Fatal("signup must not be called for an existing account")
			return identity.User{}, nil
		},
	}
	repo := newMockProfileRepo()
	svc := NewAuthService(zap.NewNop(), provider, repo, "topsecret", "", nil)

	result, err := svc.SignUp(context.Background(), validInput())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Status != SignUpStatusResent {
		t.Fatalf("expected resent status, got %q", result.Status)
	}
	if !resent {
		t.Fatal("expected verification email to be resent")
	}
	if len(repo.profiles) != 0 {
		t.Fatal("expected no new profile row")
	}
}

func TestSignUpExistingVerifiedConflicts(t *testing.T) {
	verifiedAt := time.Now().UTC()
	provider := &identity.MockProvider{
		GetUserByEmailFunc: func(_ context.Context, email string) (identity.User, error) {
			return identity.User{ID: "prov-1", Email: email, EmailConfirmedAt: &verifiedAt}, nil
		},
	}
	svc := NewAuthService(zap.NewNop(), provider, newMockProfileRepo(), "topsecret", "", nil)

	if _, err := svc.SignUp(context.Background(), validInput()); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestSignUpProfileInsertFailureSurfaces(t *testing.T) {
	repo := newMockProfileRepo()
	repo.createErr = errors.New("db down")
	svc := NewAuthService(zap.NewNop(), newSignUpProvider(nil), repo, "topsecret", "", nil)

	if _, err := svc.SignUp(context.Background(), validInput()); err == nil {
		t.Fatal("expected profile insert failure to surface")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	provider := &identity.MockProvider{
		SignInFunc: func(_ context.Context, _, _ string) (identity.Session, error) {
			return identity.Session{}, identity.ErrInvalidCredentials
		},
	}
	svc := NewAuthService(zap.NewNop(), provider, newMockProfileRepo(), "", "", nil)

	if _, err := svc.Login(context.Background(), "student@example.com", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnverifiedForbidden(t *testing.T) {
	// El proveedor responde con error explícito de no confirmado.
	provider := &identity.MockProvider{
		SignInFunc: func(_ context.Context, _, _ string) (identity.Session, error) {
			return identity.Session{}, identity.ErrEmailNotConfirmed
		},
	}
	svc := NewAuthService(zap.NewNop(), provider, newMockProfileRepo(), "", "", nil)
	if _, err := svc.Login(context.Background(), "student@example.com", "secret6"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}

	// O emite sesión igual; la puerta local debe cortarla.
	provider.SignInFunc = func(_ context.Context, _, _ string) (identity.Session, error) {
		return identity.Session{
			AccessToken: "tok",
			User:        identity.User{ID: "prov-1", Email: "student@example.com"},
		}, nil
	}
	if _, err := svc.Login(context.Background(), "student@example.com", "secret6"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified for session without confirmation, got %v", err)
	}
}

func TestLoginSuccessReturnsTokenAndRole(t *testing.T) {
	verifiedAt := time.Now().UTC()
	provider := &identity.MockProvider{
		SignInFunc: func(_ context.Context, _, _ string) (identity.Session, error) {
			return identity.Session{
				AccessToken: "opaque-token",
				User: identity.User{
					ID:               "prov-1",
					Email:            "admin@example.com",
					EmailConfirmedAt: &verifiedAt,
					UserMetadata:     identity.Metadata{Role: domain.RoleAdmin},
				},
			}, nil
		},
	}
	svc := NewAuthService(zap.NewNop(), provider, newMockProfileRepo(), "", "", nil)

	result, err := svc.Login(context.Background(), "admin@example.com", "secret6")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "opaque-token" {
		t.Fatalf("expected provider token, got %q", result.Token)
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", result.Role)
	}
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

func TestResendVerificationRateLimited(t *testing.T) {
	svc := NewAuthService(zap.NewNop(), &identity.MockProvider{}, newMockProfileRepo(), "", "", denyLimiter{})

	if err := svc.ResendVerification(context.Background(), "student@example.com"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestResendVerificationInvalidEmail(t *testing.T) {
	svc := NewAuthService(zap.NewNop(), &identity.MockProvider{}, newMockProfileRepo(), "", "", nil)

	if err := svc.ResendVerification(context.Background(), "nope"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}
