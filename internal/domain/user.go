package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile es la fila local de usuario, con el id emitido por el proveedor
// de identidad como clave primaria.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity es el llamador autenticado que el middleware resuelve en cada
// request protegido.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin indica si la identidad tiene rol de administrador.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
