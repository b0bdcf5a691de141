package http

import "net/http"

// Health confirma que o processo está de pé.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Ready confirma que o store de blobs responde.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.manifestacoes.Listar(r.Context(), h.ator(r)); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "persistência indisponível")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
