package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ouvidoriasenai/portal/internal/auth"
	"github.com/ouvidoriasenai/portal/internal/config"
	httpmiddleware "github.com/ouvidoriasenai/portal/internal/http/middleware"
	"github.com/ouvidoriasenai/portal/internal/identidade"
	"github.com/ouvidoriasenai/portal/internal/kv"
	"github.com/ouvidoriasenai/portal/internal/manifestacao"
	"github.com/ouvidoriasenai/portal/internal/permissao"
	"github.com/ouvidoriasenai/portal/internal/storage"
)

// Handler agrupa as dependências das rotas do portal.
type Handler struct {
	cfg           *config.Config
	jwt           *auth.JWTManager
	permissoes    *permissao.Engine
	resolver      *identidade.Resolver
	sessoes       *identidade.Sessoes
	manifestacoes *manifestacao.Service
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// NewRouter monta as dependências e devolve o roteador configurado.
func NewRouter(cfg *config.Config, backend kv.Store, uploader storage.Uploader) http.Handler {
	permissoes := permissao.NewEngine(nil, nil)
	store := manifestacao.NewStore(backend, cfg.StorageStrict)

	h := &Handler{
		cfg:           cfg,
		jwt:           auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL),
		permissoes:    permissoes,
		resolver:      identidade.NewResolver(permissoes),
		sessoes:       identidade.NewSessoes(backend),
		manifestacoes: manifestacao.NewService(store, permissoes, uploader, cfg.AnexoMaxBytes),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(httpmiddleware.Auth(h.jwt))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Post("/auth/login", h.Login)
		public.Post("/auth/logout", h.Logout)

		// Envio de manifestação é público: o fluxo anônimo não tem login.
		public.Post("/manifestacoes", h.CriarManifestacao)
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.RequireLogin)
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)
		private.Get("/manifestacoes/minhas", h.MinhasManifestacoes)
		private.Get("/manifestacoes/publicadas", h.ManifestacoesPublicadas)

		private.Get("/manifestacoes", h.ListarManifestacoes)
		private.Get("/manifestacoes/{id}", h.BuscarManifestacao)
		private.Put("/manifestacoes/{id}/resposta", h.ResponderManifestacao)
		private.Put("/manifestacoes/{id}/visibilidade", h.AlterarVisibilidade)
		private.Delete("/manifestacoes/{id}", h.ExcluirManifestacao)

		private.Get("/metricas", h.Metricas)
	})

	if cfg.AnexoDir != "" {
		fs := http.StripPrefix(cfg.AnexoBaseURL+"/", http.FileServer(http.Dir(cfg.AnexoDir)))
		r.Get(cfg.AnexoBaseURL+"/*", fs.ServeHTTP)
	}

	return r
}

// ator resolve a identidade declarada da requisição.
func (h *Handler) ator(r *http.Request) permissao.Ator {
	return h.resolver.Resolver(httpmiddleware.GetEmail(r.Context()))
}
