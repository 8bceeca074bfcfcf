package identity

import (
	"context"
	"errors"
	"time"
)

// Provider define el contrato con el proveedor externo de identidad:
// registro, credenciales, reenvío de verificación y resolución de tokens.
// La emisión y revocación de sesiones vive del lado del proveedor.
type Provider interface {
	SignUp(ctx context.Context, input SignUpInput) (User, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	GetUser(ctx context.Context, accessToken string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	Resend(ctx context.Context, email string) error
}

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrEmailNotConfirmed  = errors.New("identity: email not confirmed")
	ErrTokenInvalid       = errors.New("identity: token invalid")
	ErrUserNotFound       = errors.New("identity: user not found")
	ErrUserExists         = errors.New("identity: user already exists")
)

// Metadata viaja con la cuenta en el proveedor; el rol queda fijado aquí
// al momento del registro y no se modifica después.
type Metadata struct {
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

type SignUpInput struct {
	Email    string
	Password string
	Metadata Metadata
}

// User es la cuenta tal como la reporta el proveedor. EmailConfirmedAt nil
// significa no verificada.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	UserMetadata     Metadata   `json:"user_metadata"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Role devuelve el rol de la metadata, con user como piso: metadata ausente
// nunca escala privilegios.
func (u User) Role() string {
	if u.UserMetadata.Role == "admin" {
		return "admin"
	}
	return "user"
}

// Session es la credencial opaca emitida por el proveedor al autenticar.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
