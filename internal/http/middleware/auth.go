package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ouvidoriasenai/portal/internal/auth"
)

type contextKey string

const (
	ContextKeyEmail  contextKey = "email"
	ContextKeyNome   contextKey = "nome"
	ContextKeyPerfil contextKey = "perfil"
)

// Auth valida o token de sessão e injeta a identidade declarada no contexto.
// Sem token a requisição segue anônima; handlers que exigem login usam
// RequireLogin por cima.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyEmail, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyNome, claims.Nome)
			ctx = context.WithValue(ctx, ContextKeyPerfil, claims.Perfil)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmail recupera o e-mail declarado do contexto.
func GetEmail(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyEmail).(string)
	return val
}

// GetNome recupera o nome declarado do contexto.
func GetNome(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyNome).(string)
	return val
}

// GetPerfil recupera o perfil resolvido no login.
func GetPerfil(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyPerfil).(string)
	return val
}

// RequireLogin bloqueia requisições sem identidade declarada.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetEmail(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "AUTH", "login necessário")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
