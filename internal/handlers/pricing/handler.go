package pricing

import (
	"bookable/infras/otel"
	"bookable/internal/domains/pricing/service"
	"bookable/shared/constant"
	"bookable/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services/{id}/prices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPrices)
		routerGroup.Get("/cheapest", handler.GetCheapestPrice)
	})
}

// GetPrices lists the purchasable price options of a service.
// @Summary List price options for a service
// @Description Retrieve the display-ready price options derived from a service's session types.
// @Tags Pricing
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.PricesResponse "Price options"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id}/prices [get]
func (handler *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPrices")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	prices, err := handler.service.GetPrices(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get prices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Prices retrieved successfully")

	response.WithJSON(w, http.StatusOK, prices)
}

// GetCheapestPrice returns the cheapest price option of a service.
// @Summary Get the cheapest price option for a service
// @Description Retrieve the lowest-priced option of a service. Ties keep the original session type order.
// @Tags Pricing
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.PriceOption "Cheapest price option"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id}/prices/cheapest [get]
func (handler *Handler) GetCheapestPrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheapestPrice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	price, err := handler.service.GetCheapestPrice(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cheapest price")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cheapest price retrieved successfully")

	response.WithJSON(w, http.StatusOK, price)
}
