package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ouvidoriasenai/portal/internal/datas"
	httpmiddleware "github.com/ouvidoriasenai/portal/internal/http/middleware"
	"github.com/ouvidoriasenai/portal/internal/manifestacao"
	"github.com/ouvidoriasenai/portal/internal/permissao"
)

// manifestacaoView acrescenta ao registro os campos derivados que as telas
// exibem: datas no formato brasileiro e, para alunos, o status agregado.
type manifestacaoView struct {
	manifestacao.Manifestacao
	DataCriacaoFormatada  string `json:"dataCriacaoFormatada"`
	DataRespostaFormatada string `json:"dataRespostaFormatada,omitempty"`
	StatusPainel          string `json:"statusPainel,omitempty"`
}

func montarView(m manifestacao.Manifestacao, perfil string) manifestacaoView {
	criacao := m.DataCriacao
	view := manifestacaoView{
		Manifestacao:         m,
		DataCriacaoFormatada: datas.Formatar(&criacao),
	}
	if m.DataResposta != nil {
		view.DataRespostaFormatada = datas.FormatarSimples(m.DataResposta)
	}
	if perfil == permissao.PerfilAluno || perfil == permissao.PerfilFuncionario {
		view.StatusPainel = manifestacao.StatusParaPainelAluno(m.Status)
	}
	return view
}

func montarViews(registros []manifestacao.Manifestacao, perfil string) []manifestacaoView {
	views := make([]manifestacaoView, 0, len(registros))
	for _, registro := range registros {
		views = append(views, montarView(registro, perfil))
	}
	return views
}

// CriarManifestacao abre uma manifestação. Sem token, o envio só é aceito no
// modo anônimo; com token, o contato preenchido vazio herda o e-mail logado.
func (h *Handler) CriarManifestacao(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tipo        string `json:"tipo"`
		Nome        string `json:"nome"`
		Contato     string `json:"contato"`
		Setor       string `json:"setor"`
		Local       string `json:"local"`
		DataHora    string `json:"dataHora"`
		Descricao   string `json:"descricao"`
		AnexoNome   string `json:"anexoNome"`
		AnexoBase64 string `json:"anexoBase64"`
		Status      string `json:"status"`
		Anonima     bool   `json:"anonima"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	email := httpmiddleware.GetEmail(r.Context())
	if !payload.Anonima && strings.TrimSpace(payload.Contato) == "" {
		payload.Contato = email
	}
	if !payload.Anonima && strings.TrimSpace(payload.Nome) == "" {
		payload.Nome = httpmiddleware.GetNome(r.Context())
	}

	registro, err := h.manifestacoes.Registrar(r.Context(), manifestacao.CriarEntrada{
		Tipo:        payload.Tipo,
		Nome:        payload.Nome,
		Contato:     payload.Contato,
		Setor:       payload.Setor,
		Local:       payload.Local,
		DataHora:    payload.DataHora,
		Descricao:   payload.Descricao,
		AnexoNome:   payload.AnexoNome,
		AnexoBase64: payload.AnexoBase64,
		Status:      payload.Status,
	}, payload.Anonima)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"manifestacao": montarView(registro, "")})
}

// ListarManifestacoes devolve a visão administrativa, já limitada ao escopo
// do ator e opcionalmente filtrada por tipo (?tipo=, "Todos" é identidade).
func (h *Handler) ListarManifestacoes(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)
	if !ator.Admin() {
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito a administradores")
		return
	}

	tipo := strings.TrimSpace(r.URL.Query().Get("tipo"))
	if tipo == "" {
		tipo = manifestacao.TipoTodos
	}

	registros, err := h.manifestacoes.ListarPorTipo(r.Context(), ator, tipo)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	// Marca o que o ator pode editar para a tela alternar Gerenciar/Visualizar.
	type item struct {
		manifestacaoView
		PodeEditar bool `json:"podeEditar"`
	}
	itens := make([]item, 0, len(registros))
	for _, registro := range registros {
		itens = append(itens, item{
			manifestacaoView: montarView(registro, ator.Perfil),
			PodeEditar:       h.permissoes.PodeEditar(ator, registro.Setor),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]any{"manifestacoes": itens})
}

// MinhasManifestacoes devolve os registros abertos pelo contato logado.
func (h *Handler) MinhasManifestacoes(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)

	registros, err := h.manifestacoes.Minhas(r.Context(), ator.Email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"manifestacoes": montarViews(registros, ator.Perfil)})
}

// ManifestacoesPublicadas devolve os registros liberados ao perfil logado
// pelo rótulo de visibilidade.
func (h *Handler) ManifestacoesPublicadas(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)

	registros, err := h.manifestacoes.Publicadas(r.Context(), ator.Perfil)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"manifestacoes": montarViews(registros, ator.Perfil)})
}

// BuscarManifestacao devolve um registro quando o ator pode visualizá-lo.
func (h *Handler) BuscarManifestacao(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)
	id := chi.URLParam(r, "id")

	registro, err := h.manifestacoes.Buscar(r.Context(), ator, id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"manifestacao": montarView(registro, ator.Perfil),
		"podeEditar":   h.permissoes.PodeEditar(ator, registro.Setor),
	})
}

// ResponderManifestacao aplica a resposta administrativa e a transição de
// status correspondente.
func (h *Handler) ResponderManifestacao(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status   string `json:"status"`
		Resposta string `json:"resposta"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	atualizado, err := h.manifestacoes.Responder(r.Context(), h.ator(r), chi.URLParam(r, "id"), payload.Status, payload.Resposta)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"manifestacao": montarView(atualizado, "")})
}

// AlterarVisibilidade troca a etiqueta de visibilidade do registro.
func (h *Handler) AlterarVisibilidade(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Visibilidade string `json:"visibilidade"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	visibilidade := strings.TrimSpace(payload.Visibilidade)
	if visibilidade != manifestacao.VisibilidadeAdmin && visibilidade != manifestacao.VisibilidadeTodos {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "visibilidade inválida")
		return
	}

	atualizado, err := h.manifestacoes.AlterarVisibilidade(r.Context(), h.ator(r), chi.URLParam(r, "id"), visibilidade)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"manifestacao": montarView(atualizado, "")})
}

// ExcluirManifestacao remove o registro. Id desconhecido devolve NOT_FOUND
// como resultado, não como falha.
func (h *Handler) ExcluirManifestacao(w http.ResponseWriter, r *http.Request) {
	removida, err := h.manifestacoes.Excluir(r.Context(), h.ator(r), chi.URLParam(r, "id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !removida {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "manifestação não encontrada")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"removida": true})
}

// Metricas devolve os cartões do painel: total global da visão do ator,
// pendentes e resolvidas restritas ao escopo dele.
func (h *Handler) Metricas(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)
	if !ator.Admin() {
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito a administradores")
		return
	}

	resumo, err := h.manifestacoes.Resumo(r.Context(), ator)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resumo)
}
