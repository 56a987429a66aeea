package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bookable/infras/otel"
	"bookable/internal/domains/pricing/model/dto"
	"bookable/internal/domains/service/manager"
	"bookable/shared/constant"
	"bookable/shared/failure"
)

type Pricing interface {
	GetPrices(ctx context.Context, serviceID string) (dto.PricesResponse, error)
	GetCheapestPrice(ctx context.Context, serviceID string) (dto.PriceOption, error)
	HasPriceOptions(ctx context.Context, serviceID string) (bool, error)
}

type serviceImpl struct {
	services manager.Manager
	otel     otel.Otel
}

func New(services manager.Manager, otel otel.Otel) Pricing {
	return &serviceImpl{
		services: services,
		otel:     otel,
	}
}

// GetPrices derives the purchasable variants of a service from its session
// types. A session type without a label is named after its duration.
func (s *serviceImpl) GetPrices(ctx context.Context, serviceID string) (res dto.PricesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPrices")
	defer scope.End()
	defer scope.TraceIfError(err)

	svc, err := s.services.Get(ctx, serviceID)
	if err != nil {
		return res, err
	}

	res.ServiceID = serviceID
	res.Options = make([]dto.PriceOption, 0, len(svc.SessionTypes))

	for idx, sessionType := range svc.SessionTypes {
		name := sessionType.Label
		if name == constant.Empty {
			name = HumanizeDuration(sessionType.Data.Duration)
		}

		res.Options = append(res.Options, dto.PriceOption{
			Index:    idx + 1,
			ID:       sessionType.ID,
			Name:     name,
			Amount:   sessionType.Data.Price,
			Duration: sessionType.Data.Duration,
		})
	}

	return res, nil
}

// GetCheapestPrice returns the lowest priced variant. Ties keep the order
// the session types were defined in.
func (s *serviceImpl) GetCheapestPrice(ctx context.Context, serviceID string) (res dto.PriceOption, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCheapestPrice")
	defer scope.End()
	defer scope.TraceIfError(err)

	prices, err := s.GetPrices(ctx, serviceID)
	if err != nil {
		return res, err
	}

	if len(prices.Options) == 0 {
		return res, failure.NotFound("price options not found") //nolint:wrapcheck
	}

	options := make([]dto.PriceOption, len(prices.Options))
	copy(options, prices.Options)

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Amount < options[j].Amount
	})

	return options[0], nil
}

// HasPriceOptions reports whether the service offers a choice between
// several variants.
func (s *serviceImpl) HasPriceOptions(ctx context.Context, serviceID string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasPriceOptions")
	defer scope.End()
	defer scope.TraceIfError(err)

	prices, err := s.GetPrices(ctx, serviceID)
	if err != nil {
		return false, err
	}

	return len(prices.Options) > 1, nil
}

// HumanizeDuration renders a duration in seconds as the largest whole units
// it divides into, such as "1 hour 30 minutes".
func HumanizeDuration(seconds int) string {
	if seconds <= 0 {
		return "0 seconds"
	}

	units := []struct {
		name    string
		seconds int
	}{
		{"week", 604800},
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}

	parts := []string{}
	remaining := seconds

	for _, unit := range units {
		count := remaining / unit.seconds
		if count == 0 {
			continue
		}

		remaining -= count * unit.seconds

		name := unit.name
		if count > 1 {
			name += "s"
		}

		parts = append(parts, fmt.Sprintf("%d %s", count, name))
	}

	return strings.Join(parts, " ")
}
