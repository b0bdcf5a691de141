package util

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("maria@aluno.senai.br"); err != nil {
		t.Errorf("email válido rejeitado: %v", err)
	}
	if err := ValidateEmail("   "); !errors.Is(err, ErrEmailObrigatorio) {
		t.Errorf("esperava ErrEmailObrigatorio, obteve %v", err)
	}
	if err := ValidateEmail("não-é-email"); !errors.Is(err, ErrEmailInvalido) {
		t.Errorf("esperava ErrEmailInvalido, obteve %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("curta"); !errors.Is(err, ErrSenhaCurta) {
		t.Errorf("esperava ErrSenhaCurta, obteve %v", err)
	}
	if err := ValidatePassword("senha-longa-o-bastante"); err != nil {
		t.Errorf("senha válida rejeitada: %v", err)
	}
}
