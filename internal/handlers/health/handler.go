package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/shared/constant"
	"atrium/transport/http/response"
)

type Handler struct {
	db   *postgres.Connection
	cfg  *config.Config
	otel otel.Otel
}

func New(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		db:   db,
		cfg:  cfg,
		otel: otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Health)
}

type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Env      string `json:"env"`
}

// Health reports liveness and database reachability.
// @Summary Health check
// @Description Liveness probe with a database ping.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status] "Service is healthy"
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	status := Status{
		Status:   "ok",
		Database: "up",
		Env:      handler.cfg.Server.Env,
	}

	if err := handler.db.Read.PingContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("health check database ping failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
