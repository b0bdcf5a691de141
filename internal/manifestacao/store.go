package manifestacao

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ouvidoriasenai/portal/internal/kv"
	"github.com/ouvidoriasenai/portal/internal/permissao"
)

// ChaveManifestacoes é a chave fixa do blob com todas as manifestações.
const ChaveManifestacoes = "manifestacoes"

const alfabetoBase36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Store persiste a coleção inteira como um único documento JSON. Toda
// mutação reescreve o blob por completo; escritores concorrentes podem se
// sobrepor (última escrita vence), limitação aceita do modelo
// processo-único herdado do portal.
type Store struct {
	kv      kv.Store
	estrito bool
}

// NewStore cria o store sobre o backend chave→blob informado. Em modo
// estrito, blob corrompido vira ErrBlobCorrompido em vez de lista vazia.
func NewStore(backend kv.Store, estrito bool) *Store {
	return &Store{kv: backend, estrito: estrito}
}

// Listar devolve todas as manifestações. Blob ausente ou corrompido resulta
// em lista vazia; a corrupção é registrada em log, não propagada.
func (s *Store) Listar(ctx context.Context) ([]Manifestacao, error) {
	raw, ok, err := s.kv.Load(ctx, ChaveManifestacoes)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Manifestacao{}, nil
	}

	var registros []Manifestacao
	if err := json.Unmarshal([]byte(raw), &registros); err != nil {
		if s.estrito {
			return nil, ErrBlobCorrompido
		}
		log.Warn().Err(err).Msg("blob de manifestações corrompido; tratando como vazio")
		return []Manifestacao{}, nil
	}
	return registros, nil
}

// Criar gera id e carimbos, aplica os padrões de criação e persiste.
func (s *Store) Criar(ctx context.Context, entrada CriarEntrada) (Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return Manifestacao{}, err
	}

	status := entrada.Status
	if status == "" {
		status = StatusPendente
	}

	nova := Manifestacao{
		ID:           gerarID(),
		Tipo:         entrada.Tipo,
		Nome:         entrada.Nome,
		Contato:      entrada.Contato,
		Setor:        entrada.Setor,
		Local:        entrada.Local,
		DataHora:     entrada.DataHora,
		Descricao:    entrada.Descricao,
		AnexoNome:    entrada.AnexoNome,
		AnexoBase64:  entrada.AnexoBase64,
		AnexoURL:     entrada.AnexoURL,
		Status:       status,
		Visibilidade: VisibilidadeAdmin,
		DataCriacao:  time.Now().UTC(),
	}

	registros = append(registros, nova)
	if err := s.persistir(ctx, registros); err != nil {
		return Manifestacao{}, err
	}
	return nova, nil
}

// Atualizar aplica o patch ao registro com o id informado e persiste.
func (s *Store) Atualizar(ctx context.Context, id string, patch AtualizacaoEntrada) (Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return Manifestacao{}, err
	}

	for i := range registros {
		if registros[i].ID != id {
			continue
		}

		if patch.Status != nil {
			registros[i].Status = *patch.Status
		}
		if patch.RespostaAdmin != nil {
			registros[i].RespostaAdmin = *patch.RespostaAdmin
		}
		if patch.DataResposta != nil {
			registros[i].DataResposta = patch.DataResposta
		}
		if patch.Visibilidade != nil {
			registros[i].Visibilidade = *patch.Visibilidade
		}

		agora := time.Now().UTC()
		registros[i].DataAtualizacao = &agora

		if err := s.persistir(ctx, registros); err != nil {
			return Manifestacao{}, err
		}
		return registros[i], nil
	}

	return Manifestacao{}, ErrNaoEncontrada
}

// Remover apaga o registro; devolve se algo foi removido. Persiste apenas
// quando houve remoção.
func (s *Store) Remover(ctx context.Context, id string) (bool, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return false, err
	}

	restantes := registros[:0:0]
	for _, registro := range registros {
		if registro.ID != id {
			restantes = append(restantes, registro)
		}
	}

	if len(restantes) == len(registros) {
		return false, nil
	}

	if err := s.persistir(ctx, restantes); err != nil {
		return false, err
	}
	return true, nil
}

// BuscarPorID localiza um registro pelo id.
func (s *Store) BuscarPorID(ctx context.Context, id string) (Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return Manifestacao{}, err
	}
	for _, registro := range registros {
		if registro.ID == id {
			return registro, nil
		}
	}
	return Manifestacao{}, ErrNaoEncontrada
}

// BuscarPorContato devolve as manifestações abertas com o contato informado.
func (s *Store) BuscarPorContato(ctx context.Context, contato string) ([]Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}
	var resultado []Manifestacao
	for _, registro := range registros {
		if registro.Contato == contato {
			resultado = append(resultado, registro)
		}
	}
	return resultado, nil
}

// BuscarPorTipo devolve as manifestações do tipo informado (comparação
// normalizada).
func (s *Store) BuscarPorTipo(ctx context.Context, tipo string) ([]Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}
	return FiltrarPorTipo(registros, tipo), nil
}

// VisiveisPara devolve os registros visíveis para o perfil informado segundo
// a etiqueta de visibilidade. Perfis administrativos enxergam tudo.
func (s *Store) VisiveisPara(ctx context.Context, perfil string) ([]Manifestacao, error) {
	registros, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}

	if perfil == permissao.PerfilAdminGeral || perfil == permissao.PerfilAdminArea || perfil == permissao.PerfilCoordenacao {
		return registros, nil
	}

	perfilNorm := permissao.Normalizar(perfil)
	var visiveis []Manifestacao
	for _, registro := range registros {
		if registro.Visibilidade == VisibilidadeTodos || permissao.Normalizar(registro.Visibilidade) == perfilNorm {
			visiveis = append(visiveis, registro)
		}
	}
	return visiveis, nil
}

// AlterarVisibilidade troca a etiqueta de visibilidade do registro.
func (s *Store) AlterarVisibilidade(ctx context.Context, id, visibilidade string) (Manifestacao, error) {
	return s.Atualizar(ctx, id, AtualizacaoEntrada{Visibilidade: &visibilidade})
}

func (s *Store) persistir(ctx context.Context, registros []Manifestacao) error {
	raw, err := json.Marshal(registros)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, ChaveManifestacoes, string(raw))
}

// gerarID replica o formato original: prefixo temporal em base36 mais sufixo
// aleatório de cinco caracteres. Monotônico o bastante para evitar colisão
// num processo único.
func gerarID() string {
	sufixo := make([]byte, 5)
	for i := range sufixo {
		sufixo[i] = alfabetoBase36[rand.IntN(len(alfabetoBase36))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(sufixo)
}
