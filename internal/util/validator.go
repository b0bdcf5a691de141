// Package util reúne as validações de campo usadas nas bordas do portal.
package util

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailObrigatorio = errors.New("email obrigatório")
	ErrEmailInvalido    = errors.New("email inválido")
	ErrSenhaCurta       = errors.New("senha deve ter pelo menos 8 caracteres")
)

// ValidateEmail valida o identificador declarado no login. A classificação em
// perfil acontece depois, no resolvedor de identidade; aqui só se exige um
// endereço sintaticamente válido.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailObrigatorio
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrEmailInvalido
	}
	return nil
}

// ValidatePassword confere o mínimo exigido da senha administrativa opcional.
func ValidatePassword(senha string) error {
	if len(senha) < 8 {
		return ErrSenhaCurta
	}
	return nil
}
