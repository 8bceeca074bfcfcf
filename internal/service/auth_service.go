package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/identity"
	"dsa-tutor/internal/repository"
)

// AuthService coordina registro, login y reenvío de verificación contra el
// proveedor de identidad, y deriva el rol al momento del registro.
type AuthService struct {
	logger        *zap.Logger
	provider      identity.Provider
	profiles      repository.ProfileRepository
	adminCode     string
	adminCodeHash string
	resendLimiter ResendRateLimiter
}

func NewAuthService(
	logger *zap.Logger,
	provider identity.Provider,
	profiles repository.ProfileRepository,
	adminCode, adminCodeHash string,
	resendLimiter ResendRateLimiter,
) *AuthService {
	return &AuthService{
		logger:        logger,
		provider:      provider,
		profiles:      profiles,
		adminCode:     adminCode,
		adminCodeHash: adminCodeHash,
		resendLimiter: resendLimiter,
	}
}

var (
	ErrMissingFields      = errors.New("email, password, username and phone are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrAlreadyRegistered  = errors.New("user already registered and verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not confirmed")
	ErrRateLimited        = errors.New("rate limited")
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignUpInput struct {
	Email     string
	Password  string
	Username  string
	Phone     string
	AdminCode string
}

const (
	SignUpStatusRegistered = "registered"
	SignUpStatusResent     = "resent"
)

type SignUpResult struct {
	Status string
	Role   string
	UserID string
}

// SignUp registra la cuenta en el proveedor y persiste el perfil local.
// Para cuentas existentes sin verificar reenvía el correo en lugar de
// duplicar; para cuentas verificadas devuelve conflicto.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (SignUpResult, error) {
	emailAddr := normalizeEmail(input.Email)
	password := input.Password
	username := strings.TrimSpace(input.Username)
	phone := strings.TrimSpace(input.Phone)

	if emailAddr == "" || password == "" || username == "" || phone == "" {
		return SignUpResult{}, ErrMissingFields
	}
	if !emailPattern.MatchString(emailAddr) {
		return SignUpResult{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return SignUpResult{}, ErrPasswordTooShort
	}

	role := s.deriveRole(input.AdminCode)

	existing, err := s.provider.GetUserByEmail(ctx, emailAddr)
	if err == nil {
		if existing.EmailConfirmedAt == nil {
			if err := s.provider.Resend(ctx, emailAddr); err != nil {
				return SignUpResult{}, err
			}
			return SignUpResult{Status: SignUpStatusResent, Role: existing.Role()}, nil
		}
		return SignUpResult{}, ErrAlreadyRegistered
	}
	if !errors.Is(err, identity.ErrUserNotFound) {
		return SignUpResult{}, err
	}

	created, err := s.provider.SignUp(ctx, identity.SignUpInput{
		Email:    emailAddr,
		Password: password,
		Metadata: identity.Metadata{
			Username: username,
			Phone:    phone,
			Role:     role,
		},
	})
	if err != nil {
		if errors.Is(err, identity.ErrUserExists) {
			return SignUpResult{}, ErrAlreadyRegistered
		}
		return SignUpResult{}, err
	}

	profile := domain.Profile{
		ID:        created.ID,
		Email:     emailAddr,
		Username:  username,
		Phone:     phone,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// Las dos escrituras no son transaccionales: aquí la cuenta ya
		// existe en el proveedor sin fila local. Se reporta, no se repara.
		s.logger.Error("profile insert failed after provider signup",
			zap.Error(err),
			zap.String("user_id", created.ID),
		)
		return SignUpResult{}, err
	}

	return SignUpResult{Status: SignUpStatusRegistered, Role: role, UserID: created.ID}, nil
}

type LoginResult struct {
	Token string
	Role  string
}

// Login delega la verificación de credenciales al proveedor y exige email
// verificado antes de entregar el token de sesión.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (LoginResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.provider.SignInWithPassword(ctx, emailAddr, password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			return LoginResult{}, ErrInvalidCredentials
		case errors.Is(err, identity.ErrEmailNotConfirmed):
			return LoginResult{}, ErrEmailNotVerified
		default:
			return LoginResult{}, err
		}
	}

	// Algunos despliegues del proveedor emiten sesión igual para cuentas
	// sin confirmar; la puerta de verificación se aplica también aquí.
	if sess.User.EmailConfirmedAt == nil {
		return LoginResult{}, ErrEmailNotVerified
	}

	return LoginResult{Token: sess.AccessToken, Role: sess.User.Role()}, nil
}

// ResendVerification reenvía el correo de verificación, limitado por email.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || !emailPattern.MatchString(emailAddr) {
		return ErrInvalidEmail
	}
	if s.resendLimiter != nil && !s.resendLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}
	return s.provider.Resend(ctx, emailAddr)
}

// deriveRole asigna admin solo cuando el código coincide con el secreto
// configurado. El hash bcrypt tiene prioridad; el secreto en texto plano se
// compara en tiempo constante.
func (s *AuthService) deriveRole(adminCode string) string {
	if adminCode == "" {
		return domain.RoleUser
	}
	if s.adminCodeHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(s.adminCodeHash), []byte(adminCode)) == nil {
			return domain.RoleAdmin
		}
		return domain.RoleUser
	}
	if s.adminCode != "" && subtle.ConstantTimeCompare([]byte(adminCode), []byte(s.adminCode)) == 1 {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
