package identidade

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/ouvidoriasenai/portal/internal/kv"
)

// ChaveSessao é a chave fixa onde o usuário autenticado fica registrado.
const ChaveSessao = "usuarioLogado"

// Sessao espelha o documento gravado sob usuarioLogado.
type Sessao struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
}

// Sessoes lê e grava a sessão corrente no store de blobs.
type Sessoes struct {
	store kv.Store
}

// NewSessoes cria o acesso à sessão sobre o store informado.
func NewSessoes(store kv.Store) *Sessoes {
	return &Sessoes{store: store}
}

// Gravar registra a sessão do usuário autenticado.
func (s *Sessoes) Gravar(ctx context.Context, sessao Sessao) error {
	raw, err := json.Marshal(sessao)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, ChaveSessao, string(raw))
}

// Carregar devolve a sessão corrente. Ausência ou conteúdo malformado
// colapsam para sessão vazia (anônimo), nunca para erro de negócio.
func (s *Sessoes) Carregar(ctx context.Context) (Sessao, bool) {
	raw, ok, err := s.store.Load(ctx, ChaveSessao)
	if err != nil || !ok {
		return Sessao{}, false
	}

	var sessao Sessao
	if err := json.Unmarshal([]byte(raw), &sessao); err != nil {
		log.Warn().Err(err).Msg("sessão malformada; tratando como anônimo")
		return Sessao{}, false
	}
	return sessao, sessao.Email != ""
}

// Encerrar remove a sessão corrente.
func (s *Sessoes) Encerrar(ctx context.Context) error {
	return s.store.Remove(ctx, ChaveSessao)
}
