package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookable/infras/otel/mocks"
	"bookable/internal/domains/pricing/service"
	managerMocks "bookable/internal/domains/service/manager/mocks"
	serviceDto "bookable/internal/domains/service/model/dto"
	"bookable/shared/failure"
)

func sessionTypes() []serviceDto.SessionType {
	return []serviceDto.SessionType{
		{ID: "st-1", Label: "Morning Hour", Type: serviceDto.SessionTypeFixedDuration, Data: serviceDto.SessionTypeData{Duration: 3600, Price: 30}},
		{ID: "st-2", Label: "", Type: serviceDto.SessionTypeFixedDuration, Data: serviceDto.SessionTypeData{Duration: 5400, Price: 20}},
		{ID: "st-3", Label: "Budget Hour", Type: serviceDto.SessionTypeFixedDuration, Data: serviceDto.SessionTypeData{Duration: 3600, Price: 20}},
	}
}

func TestPricing_GetPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockManager := managerMocks.NewMockManager(ctrl)
	svc := service.New(mockManager, mocks.NewOtel())

	mockManager.EXPECT().
		Get(gomock.Any(), "svc-1").
		Return(serviceDto.ServiceResponse{ID: "svc-1", SessionTypes: sessionTypes()}, nil)

	res, err := svc.GetPrices(context.Background(), "svc-1")

	require.NoError(t, err)
	require.Len(t, res.Options, 3)

	assert.Equal(t, 1, res.Options[0].Index)
	assert.Equal(t, "Morning Hour", res.Options[0].Name)
	assert.Equal(t, float64(30), res.Options[0].Amount)

	// An unlabeled session type falls back to its duration.
	assert.Equal(t, 2, res.Options[1].Index)
	assert.Equal(t, "1 hour 30 minutes", res.Options[1].Name)
}

func TestPricing_GetCheapestPrice(t *testing.T) {
	t.Run("ties keep definition order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockManager := managerMocks.NewMockManager(ctrl)
		svc := service.New(mockManager, mocks.NewOtel())

		mockManager.EXPECT().
			Get(gomock.Any(), "svc-1").
			Return(serviceDto.ServiceResponse{ID: "svc-1", SessionTypes: sessionTypes()}, nil)

		cheapest, err := svc.GetCheapestPrice(context.Background(), "svc-1")

		require.NoError(t, err)
		assert.Equal(t, "st-2", cheapest.ID)
		assert.Equal(t, float64(20), cheapest.Amount)
	})

	t.Run("no session types", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockManager := managerMocks.NewMockManager(ctrl)
		svc := service.New(mockManager, mocks.NewOtel())

		mockManager.EXPECT().
			Get(gomock.Any(), "svc-1").
			Return(serviceDto.ServiceResponse{ID: "svc-1"}, nil)

		_, err := svc.GetCheapestPrice(context.Background(), "svc-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("manager error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockManager := managerMocks.NewMockManager(ctrl)
		svc := service.New(mockManager, mocks.NewOtel())

		mockManager.EXPECT().
			Get(gomock.Any(), "svc-1").
			Return(serviceDto.ServiceResponse{}, errors.New("database error"))

		_, err := svc.GetCheapestPrice(context.Background(), "svc-1")

		assert.Error(t, err)
	})
}

func TestPricing_HasPriceOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockManager := managerMocks.NewMockManager(ctrl)
	svc := service.New(mockManager, mocks.NewOtel())

	mockManager.EXPECT().
		Get(gomock.Any(), "svc-1").
		Return(serviceDto.ServiceResponse{ID: "svc-1", SessionTypes: sessionTypes()}, nil)

	mockManager.EXPECT().
		Get(gomock.Any(), "svc-2").
		Return(serviceDto.ServiceResponse{ID: "svc-2", SessionTypes: sessionTypes()[:1]}, nil)

	multi, err := svc.HasPriceOptions(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.True(t, multi)

	single, err := svc.HasPriceOptions(context.Background(), "svc-2")
	require.NoError(t, err)
	assert.False(t, single)
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{3600, "1 hour"},
		{5400, "1 hour 30 minutes"},
		{60, "1 minute"},
		{90, "1 minute 30 seconds"},
		{86400, "1 day"},
		{604800, "1 week"},
		{0, "0 seconds"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.HumanizeDuration(tt.seconds))
	}
}
