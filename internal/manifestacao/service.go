package manifestacao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ouvidoriasenai/portal/internal/anexo"
	"github.com/ouvidoriasenai/portal/internal/permissao"
	"github.com/ouvidoriasenai/portal/internal/storage"
)

// Service reúne as regras de negócio das manifestações: abertura, escopo de
// visão, resposta administrativa, exclusão e métricas. As telas (handlers)
// são chamadoras finas; toda checagem de permissão acontece aqui, uma vez.
type Service struct {
	store      *Store
	permissoes *permissao.Engine
	uploader   storage.Uploader
	anexoMax   int64
}

// NewService cria o serviço. uploader nulo mantém anexos inline no blob.
func NewService(store *Store, permissoes *permissao.Engine, uploader storage.Uploader, anexoMax int64) *Service {
	if uploader == nil {
		uploader = storage.NoopUploader{}
	}
	return &Service{store: store, permissoes: permissoes, uploader: uploader, anexoMax: anexoMax}
}

// Registrar abre uma manifestação. Em envios anônimos, nome e contato são
// substituídos pelo marcador padrão; em envios identificados, o contato é
// obrigatório. Descrição é obrigatória sempre.
func (s *Service) Registrar(ctx context.Context, entrada CriarEntrada, anonima bool) (Manifestacao, error) {
	tipo, ok := NormalizarTipo(entrada.Tipo)
	if !ok {
		return Manifestacao{}, ErrTipoInvalido
	}
	entrada.Tipo = tipo

	entrada.Nome = strings.TrimSpace(entrada.Nome)
	entrada.Contato = strings.TrimSpace(entrada.Contato)
	entrada.Descricao = strings.TrimSpace(entrada.Descricao)
	entrada.Setor = strings.TrimSpace(entrada.Setor)

	if entrada.Descricao == "" {
		return Manifestacao{}, ErrDescricaoObrigatoria
	}

	if anonima {
		entrada.Nome = ValorAnonimo
		entrada.Contato = ValorAnonimo
	} else if entrada.Contato == "" {
		return Manifestacao{}, ErrContatoObrigatorio
	}

	if entrada.Nome == "" {
		entrada.Nome = "Não informado"
	}
	if entrada.Setor == "" {
		entrada.Setor = permissao.AreaGeral
	}

	// Só o fluxo de elogio entra pré-resolvido, e apenas como Resolvida.
	// Qualquer outro status vindo do chamador é ignorado: registro novo
	// nasce pendente, nunca num estado intermediário sem resposta.
	statusPedido := entrada.Status
	entrada.Status = StatusPendente
	if entrada.Tipo == TipoElogio {
		if status, ok := NormalizarStatus(statusPedido); ok && status == StatusResolvida {
			entrada.Status = StatusResolvida
		}
	}

	if entrada.AnexoBase64 != "" {
		validado, err := anexo.Validar(entrada.AnexoBase64, s.anexoMax)
		if err != nil {
			return Manifestacao{}, err
		}
		entrada = s.descarregarAnexo(ctx, entrada, validado)
	}

	registro, err := s.store.Criar(ctx, entrada)
	if err != nil {
		return Manifestacao{}, err
	}

	log.Info().Str("id", registro.ID).Str("tipo", registro.Tipo).
		Str("setor", registro.Setor).Bool("anonima", anonima).Msg("manifestação registrada")
	return registro, nil
}

// descarregarAnexo tenta mover o anexo para o uploader configurado. Sem
// uploader (ou em falha), o anexo permanece inline; o registro nunca se
// perde por causa do anexo.
func (s *Service) descarregarAnexo(ctx context.Context, entrada CriarEntrada, validado anexo.Anexo) CriarEntrada {
	res, err := s.uploader.Upload(ctx, storage.UploadInput{
		Key:         fmt.Sprintf("%d-%s", time.Now().UnixMilli(), entrada.AnexoNome),
		Body:        validado.Conteudo,
		ContentType: validado.ContentType,
	})
	if err != nil {
		if !errors.Is(err, storage.ErrSemUploader) {
			log.Warn().Err(err).Msg("falha ao descarregar anexo; mantendo inline")
		}
		return entrada
	}

	entrada.AnexoURL = res.URL
	entrada.AnexoBase64 = ""
	return entrada
}

// Listar devolve as manifestações visíveis ao ator, em ordem de criação.
func (s *Service) Listar(ctx context.Context, ator permissao.Ator) ([]Manifestacao, error) {
	registros, err := s.store.Listar(ctx)
	if err != nil {
		return nil, err
	}
	return FiltrarVisiveis(s.permissoes, ator, registros), nil
}

// ListarPorTipo aplica o filtro de tipo sobre a visão do ator.
func (s *Service) ListarPorTipo(ctx context.Context, ator permissao.Ator, tipo string) ([]Manifestacao, error) {
	visiveis, err := s.Listar(ctx, ator)
	if err != nil {
		return nil, err
	}
	return FiltrarPorTipo(visiveis, tipo), nil
}

// Minhas devolve as manifestações abertas pelo contato do ator.
func (s *Service) Minhas(ctx context.Context, contato string) ([]Manifestacao, error) {
	return s.store.BuscarPorContato(ctx, contato)
}

// Publicadas devolve os registros cujo rótulo de visibilidade foi aberto para
// o perfil informado.
func (s *Service) Publicadas(ctx context.Context, perfil string) ([]Manifestacao, error) {
	return s.store.VisiveisPara(ctx, perfil)
}

// Buscar devolve um registro se o ator puder visualizá-lo.
func (s *Service) Buscar(ctx context.Context, ator permissao.Ator, id string) (Manifestacao, error) {
	registro, err := s.store.BuscarPorID(ctx, id)
	if err != nil {
		return Manifestacao{}, err
	}
	if !s.permissoes.PodeVisualizar(ator, registro.Setor) {
		return Manifestacao{}, permissao.ErrSemPermissao
	}
	return registro, nil
}

// Responder aplica a resposta administrativa. Invariante central do ciclo de
// vida: status diferente de Pendente exige resposta não vazia — este é o
// único ponto do repositório que muda status.
func (s *Service) Responder(ctx context.Context, ator permissao.Ator, id, novoStatus, resposta string) (Manifestacao, error) {
	registro, err := s.store.BuscarPorID(ctx, id)
	if err != nil {
		return Manifestacao{}, err
	}

	if !s.permissoes.PodeEditar(ator, registro.Setor) {
		return Manifestacao{}, permissao.ErrSemPermissao
	}

	status, ok := NormalizarStatus(novoStatus)
	if !ok {
		return Manifestacao{}, ErrStatusInvalido
	}
	if !PodeTransitar(registro.Status, status) {
		return Manifestacao{}, ErrStatusInvalido
	}

	resposta = strings.TrimSpace(resposta)
	if status != StatusPendente && resposta == "" {
		return Manifestacao{}, ErrRespostaObrigatoria
	}

	agora := time.Now().UTC()
	atualizado, err := s.store.Atualizar(ctx, id, AtualizacaoEntrada{
		Status:        &status,
		RespostaAdmin: &resposta,
		DataResposta:  &agora,
	})
	if err != nil {
		return Manifestacao{}, err
	}

	log.Info().Str("id", id).Str("status", status).Str("por", ator.Email).Msg("manifestação respondida")
	return atualizado, nil
}

// Excluir remove o registro após checar permissão de edição. Devolve se algo
// foi removido.
func (s *Service) Excluir(ctx context.Context, ator permissao.Ator, id string) (bool, error) {
	registro, err := s.store.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNaoEncontrada) {
			return false, nil
		}
		return false, err
	}

	if !s.permissoes.PodeEditar(ator, registro.Setor) {
		return false, permissao.ErrSemPermissao
	}

	return s.store.Remover(ctx, id)
}

// AlterarVisibilidade troca a etiqueta de visibilidade, restrita a quem pode
// editar o registro.
func (s *Service) AlterarVisibilidade(ctx context.Context, ator permissao.Ator, id, visibilidade string) (Manifestacao, error) {
	registro, err := s.store.BuscarPorID(ctx, id)
	if err != nil {
		return Manifestacao{}, err
	}
	if !s.permissoes.PodeEditar(ator, registro.Setor) {
		return Manifestacao{}, permissao.ErrSemPermissao
	}
	return s.store.AlterarVisibilidade(ctx, id, visibilidade)
}

// Resumo calcula as métricas do painel do ator: total sobre tudo que ele vê,
// pendentes/resolvidas restritas às áreas de escopo dele.
func (s *Service) Resumo(ctx context.Context, ator permissao.Ator) (Resumo, error) {
	visiveis, err := s.Listar(ctx, ator)
	if err != nil {
		return Resumo{}, err
	}
	return Metricas(visiveis, s.permissoes.AreasDeEscopo(ator)), nil
}
