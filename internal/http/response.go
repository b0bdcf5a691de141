package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ouvidoriasenai/portal/internal/anexo"
	"github.com/ouvidoriasenai/portal/internal/manifestacao"
	"github.com/ouvidoriasenai/portal/internal/permissao"
)

// Envelope padroniza todas as respostas: dados ou erro, nunca ambos.
type Envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: data})
}

// WriteError escreve envelope de erro com código estável.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: &ErrorBody{Code: code, Message: message}})
}

// WriteDomainError traduz os erros sentinela do núcleo para o envelope HTTP.
// Permissão e validação chegam ao chamador como resultado de decisão, nunca
// como falha interna.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, permissao.ErrSemPermissao):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, manifestacao.ErrNaoEncontrada):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, manifestacao.ErrTipoInvalido),
		errors.Is(err, manifestacao.ErrStatusInvalido),
		errors.Is(err, manifestacao.ErrDescricaoObrigatoria),
		errors.Is(err, manifestacao.ErrContatoObrigatorio),
		errors.Is(err, manifestacao.ErrRespostaObrigatoria),
		errors.Is(err, anexo.ErrFormatoInvalido),
		errors.Is(err, anexo.ErrMuitoGrande),
		errors.Is(err, anexo.ErrNaoImagem):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, manifestacao.ErrBlobCorrompido):
		WriteError(w, http.StatusInternalServerError, "STORAGE_CORRUPT", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno")
	}
}
