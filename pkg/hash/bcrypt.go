// Package hash compara y genera hashes de contraseñas (bcrypt).
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash genera el hash bcrypt de la contraseña en texto plano.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("hash: contraseña vacía")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(h), nil
}

// Verify informa si plain corresponde al hash almacenado.
func Verify(hashed, plain string) bool {
	if hashed == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
