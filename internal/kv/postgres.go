package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persiste os blobs numa tabela chave/valor simples:
//
//	CREATE TABLE IF NOT EXISTS portal_blobs (
//	    chave TEXT PRIMARY KEY,
//	    valor TEXT NOT NULL,
//	    atualizado_em TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore cria o store e garante a tabela de apoio.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	const ddl = `
        CREATE TABLE IF NOT EXISTS portal_blobs (
            chave TEXT PRIMARY KEY,
            valor TEXT NOT NULL,
            atualizado_em TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Load devolve o blob da chave.
func (p *PostgresStore) Load(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT valor FROM portal_blobs WHERE chave = $1`

	var val string
	err := p.pool.QueryRow(ctx, query, key).Scan(&val)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Save sobrescreve o blob da chave.
func (p *PostgresStore) Save(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO portal_blobs (chave, valor, atualizado_em)
        VALUES ($1, $2, now())
        ON CONFLICT (chave) DO UPDATE SET valor = EXCLUDED.valor, atualizado_em = now()
    `
	_, err := p.pool.Exec(ctx, query, key, value)
	return err
}

// Remove apaga a chave.
func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM portal_blobs WHERE chave = $1`
	_, err := p.pool.Exec(ctx, query, key)
	return err
}
