package service

import (
	"bookable/config"
	"bookable/infras/otel"
	"bookable/internal/domains/service/manager"
	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/repository"
	"bookable/shared"
	"bookable/shared/constant"
	gDto "bookable/shared/dto"
	"bookable/shared/validator"
	"bookable/transport/http/middleware"
	"bookable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamStatus          = "status"
	queryParamBookingsEnabled = "bookings_enabled"
)

type Handler struct {
	services   manager.Manager
	middleware middleware.Auth
	cfg        *config.Config
	otel       otel.Otel
}

func New(services manager.Manager, middleware middleware.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		services:   services,
		middleware: middleware,
		cfg:        cfg,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/count", handler.CountServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Head("/{id}", handler.HasService)

		routerGroup.With(handler.middleware.Auth).Post("/", handler.CreateService)
		routerGroup.With(handler.middleware.Auth).Patch("/{id}", handler.UpdateService)
		routerGroup.With(handler.middleware.Auth).Put("/{id}", handler.ReplaceService)
		routerGroup.With(handler.middleware.Auth).Delete("/{id}", handler.DeleteService)
	})
}

// CreateService creates a new bookable service.
// @Summary Create a new bookable service
// @Description Create a service with its schedule, availability rules and session types.
// @Tags Service
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} dto.ServiceResponse "Service created successfully"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	service, err := handler.services.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service created successfully")

	response.WithJSON(w, http.StatusCreated, service)
}

// GetServices lists bookable services.
// @Summary List bookable services
// @Description Retrieve a paginated list of services, optionally filtered by status, bookings flag and search term.
// @Tags Service
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by service name"
// @Param status query string false "Filter by publication status"
// @Param bookings_enabled query bool false "Only services with bookings enabled"
// @Success 200 {object} dto.GetServicesResponse "List of services"
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := handler.buildFilter(r)

	services, err := handler.services.Query(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}

// CountServices counts bookable services.
// @Summary Count bookable services
// @Description Count services matching the same filters the listing endpoint accepts.
// @Tags Service
// @Accept json
// @Produce json
// @Param search query string false "Search by service name"
// @Param status query string false "Filter by publication status"
// @Param bookings_enabled query bool false "Only services with bookings enabled"
// @Success 200 {object} dto.CountServicesResponse "Service count"
// @Failure 500 {object} response.Error
// @Router /v1/services/count [get]
func (handler *Handler) CountServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CountServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := handler.buildFilter(r)

	count, err := handler.services.Count(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services counted successfully")

	response.WithJSON(w, http.StatusOK, dto.CountServicesResponse{Count: count})
}

// GetServiceByID retrieves a service by its ID.
// @Summary Get a service by ID
// @Description Retrieve a single service with its availability, session types and resolved image URL.
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse "Service details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	service, err := handler.services.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service retrieved successfully")

	response.WithJSON(w, http.StatusOK, service)
}

// HasService reports whether a service exists.
// @Summary Check whether a service exists
// @Tags Service
// @Param id path string true "Service ID"
// @Success 204 "Service exists"
// @Failure 404 "Service not found"
// @Router /v1/services/{id} [head]
func (handler *Handler) HasService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HasService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	exists, err := handler.services.Has(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check service existence")

		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if !exists {
		w.WriteHeader(http.StatusNotFound)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateService applies a partial update to a service.
// @Summary Update a service by ID
// @Description Update the supplied fields of a service. Omitted fields keep their stored values.
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} dto.ServiceResponse "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	service, err := handler.services.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service updated successfully")

	response.WithJSON(w, http.StatusOK, service)
}

// ReplaceService overwrites a service with the supplied state.
// @Summary Replace a service by ID
// @Description Replace the full state of a service. Fields absent from the request are cleared.
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.CreateServiceRequest true "Replace Service Request"
// @Success 200 {object} dto.ServiceResponse "Service replaced successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [put]
// @Security BearerAuth
func (handler *Handler) ReplaceService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	service, err := handler.services.Set(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service replaced successfully")

	response.WithJSON(w, http.StatusOK, service)
}

// DeleteService removes a service and everything attached to it.
// @Summary Delete a service by ID
// @Description Delete a service together with its metadata, schedule and availability rules.
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.services.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service deleted successfully")

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}

func (handler *Handler) buildFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(queryParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPostStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableRecords,
		})
	}

	if enabled := shared.ConvertStringToBool(r.URL.Query().Get(queryParamBookingsEnabled)); enabled != nil && *enabled {
		metaKey := handler.cfg.Services.MetaPrefix + model.MetaBookingsEnabled

		filterGroup.Filters = append(filterGroup.Filters, repository.MetaExistsFilter(metaKey, "1", 0))
	}

	return filterGroup
}
