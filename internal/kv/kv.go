package kv

import "context"

// Store define o contrato mínimo de persistência chave→blob usado pelo portal.
// Cada chave guarda um documento serializado inteiro; não há escrita parcial.
type Store interface {
	// Load devolve o blob da chave. O segundo retorno indica se a chave existe.
	Load(ctx context.Context, key string) (string, bool, error)
	// Save sobrescreve o blob inteiro da chave.
	Save(ctx context.Context, key, value string) error
	// Remove apaga a chave; ausência não é erro.
	Remove(ctx context.Context, key string) error
}
