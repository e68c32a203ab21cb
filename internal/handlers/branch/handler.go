package branch

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atrium/infras/otel"
	"atrium/internal/domains/branch/model"
	"atrium/internal/domains/branch/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/transport/http/response"
)

type Handler struct {
	service service.Branch
	otel    otel.Otel
}

func New(service service.Branch, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/branches", func(r chi.Router) {
		r.Get("/", handler.GetBranches)
		r.Get("/{id}", handler.GetBranchByID)
	})
}

// GetBranches retrieves all branches based on query parameters.
// @Summary Get all branches
// @Description Retrieve all branches with optional filtering and pagination.
// @Tags Branch
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param code query string false "Filter by code"
// @Success 200 {object} response.Data[dto.GetBranchesResponse] "List of branches"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches [get]
// @Security BearerAuth
func (handler *Handler) GetBranches(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranches")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldCode),
				Table:    model.TableName,
			},
		},
	}

	branches, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branches")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branches retrieved successfully")

	response.WithJSON(w, http.StatusOK, branches)
}

// GetBranchByID retrieves a branch by its ID.
// @Summary Get a branch by ID
// @Description Retrieve a branch by its unique identifier.
// @Tags Branch
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} response.Data[dto.BranchResponse] "Branch details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBranchByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranchByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	branch, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branch by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch retrieved successfully")

	response.WithJSON(w, http.StatusOK, branch)
}
