package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookable/internal/domains/service/model/dto"
	"bookable/shared/validator"
)

func TestServiceRequestStatusValidation(t *testing.T) {
	accepted := []string{"publish", "draft", "pending", "private", "future"}

	for _, status := range accepted {
		t.Run("create accepts "+status, func(t *testing.T) {
			req := dto.CreateServiceRequest{Name: "Yoga Class", Status: status}
			assert.NoError(t, validator.ValidateStruct(&req))
		})

		t.Run("update accepts "+status, func(t *testing.T) {
			s := status
			req := dto.UpdateServiceRequest{Status: &s}
			assert.NoError(t, validator.ValidateStruct(&req))
		})
	}

	t.Run("update accepts trash", func(t *testing.T) {
		s := "trash"
		req := dto.UpdateServiceRequest{Status: &s}
		assert.NoError(t, validator.ValidateStruct(&req))
	})

	t.Run("create rejects trash", func(t *testing.T) {
		req := dto.CreateServiceRequest{Name: "Yoga Class", Status: "trash"}
		assert.Error(t, validator.ValidateStruct(&req))
	})

	t.Run("create rejects unknown status", func(t *testing.T) {
		req := dto.CreateServiceRequest{Name: "Yoga Class", Status: "archived"}
		assert.Error(t, validator.ValidateStruct(&req))
	})
}
