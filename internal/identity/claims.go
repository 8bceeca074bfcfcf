package identity

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// CheckTokenShape valida localmente que el bearer token sea un JWT bien
// formado. No verifica la firma ni reemplaza al proveedor: solo evita el
// round-trip de red para tokens triviales de rechazar.
func CheckTokenShape(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenInvalid
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, jwt.MapClaims{}); err != nil {
		return ErrTokenInvalid
	}
	return nil
}
