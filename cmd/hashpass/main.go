package main

import (
	"fmt"
	"os"

	"github.com/ouvidoriasenai/portal/internal/auth"
	"github.com/ouvidoriasenai/portal/internal/util"
)

// Gera o hash Argon2id usado em ADMIN_PASSWORD_HASH.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: hashpass <senha>")
		os.Exit(1)
	}

	senha := os.Args[1]
	if err := util.ValidatePassword(senha); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao gerar hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
