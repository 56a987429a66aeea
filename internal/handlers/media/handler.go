package media

import (
	"bookable/infras/otel"
	"bookable/internal/domains/media/model/dto"
	"bookable/internal/domains/media/service"
	"bookable/shared/constant"
	"bookable/shared/validator"
	"bookable/transport/http/middleware"
	"bookable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Media
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Media, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetMedia)

		routerGroup.With(handler.middleware.Auth).Post("/", handler.UploadMedia)
		routerGroup.With(handler.middleware.Auth).Delete("/{id}", handler.DeleteMedia)
	})
}

// UploadMedia stores an uploaded image and returns its public URL.
// @Summary Upload a media file
// @Description Upload a base64 data URI payload to object storage and register it as a media record.
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.UploadMediaRequest true "Upload Media Request"
// @Success 201 {object} dto.MediaResponse "Media uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [post]
// @Security BearerAuth
func (handler *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMedia")
	defer scope.End()

	req := dto.UploadMediaRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	media, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media uploaded successfully")

	response.WithJSON(w, http.StatusCreated, media)
}

// GetMedia retrieves a media record by its ID.
// @Summary Get a media record by ID
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} dto.MediaResponse "Media details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [get]
func (handler *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedia")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	media, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get media by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media retrieved successfully")

	response.WithJSON(w, http.StatusOK, media)
}

// DeleteMedia removes a media record and its stored object.
// @Summary Delete a media record by ID
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} response.Message "Media deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete media")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media deleted successfully")

	response.WithMessage(w, http.StatusOK, "Media deleted successfully")
}
