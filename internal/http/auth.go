package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ouvidoriasenai/portal/internal/auth"
	httpmiddleware "github.com/ouvidoriasenai/portal/internal/http/middleware"
	"github.com/ouvidoriasenai/portal/internal/identidade"
	"github.com/ouvidoriasenai/portal/internal/util"
)

// Login resolve o e-mail declarado para um perfil, grava a sessão e emite o
// token de acesso. Não há verificação de credencial por padrão; quando
// ADMIN_PASSWORD_HASH está configurado, logins administrativos exigem senha.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nome  string `json:"nome"`
		Email string `json:"email"`
		Senha string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido")
		return
	}

	if err := util.ValidateEmail(payload.Email); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	ator := h.resolver.Resolver(payload.Email)

	if ator.Admin() && h.cfg.AdminPasswordHash != "" {
		ok, err := auth.Verify(payload.Senha, h.cfg.AdminPasswordHash)
		if err != nil || !ok {
			WriteError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas")
			return
		}
	}

	nome := strings.TrimSpace(payload.Nome)
	if ator.Nome != "" {
		nome = ator.Nome
	}

	token, err := h.jwt.GerarToken(ator.Email, nome, ator.Perfil)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível gerar token")
		return
	}

	if err := h.sessoes.Gravar(r.Context(), identidade.Sessao{
		Nome:  nome,
		Email: ator.Email,
		Tipo:  ator.Perfil,
	}); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível gravar sessão")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"token":  token,
		"perfil": ator.Perfil,
		"nome":   nome,
	})
}

// Logout remove a sessão corrente.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessoes.Encerrar(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível encerrar sessão")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Me devolve a identidade resolvida da requisição.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ator := h.ator(r)

	resposta := map[string]any{
		"email":  ator.Email,
		"nome":   httpmiddleware.GetNome(r.Context()),
		"perfil": ator.Perfil,
	}
	if ator.Coordenacao != nil {
		resposta["areasEditaveis"] = ator.Coordenacao.Editaveis
		resposta["areasVisualizaveis"] = ator.Coordenacao.Visualizaveis
	}
	if ator.AreaVinculada != "" {
		resposta["areaVinculada"] = ator.AreaVinculada
	}

	WriteJSON(w, http.StatusOK, resposta)
}
