package validator_test

import (
	"strings"
	"testing"

	"bookable/shared/validator"
)

type serviceRequest struct {
	Name     string `validate:"required"                json:"name"`
	Status   string `validate:"oneof=publish draft"     json:"status"`
	Duration int    `validate:"gte=0,lte=86400"         json:"duration"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *serviceRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &serviceRequest{
				Name:     "Deep Tissue Massage",
				Status:   "publish",
				Duration: 3600,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &serviceRequest{
				Status:   "publish",
				Duration: 3600,
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &serviceRequest{
				Name:     "Deep Tissue Massage",
				Status:   "pending",
				Duration: 3600,
			},
			expectError: true,
		},
		{
			name: "duration out of range",
			data: &serviceRequest{
				Name:     "Deep Tissue Massage",
				Status:   "publish",
				Duration: 100000,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "fixed_duration",
			tag:         "oneof=fixed_duration variable_duration",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "flexible",
			tag:         "oneof=fixed_duration variable_duration",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Yoga Class","status":"publish","duration":3600}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"name":"Yoga Class","status":"pending","duration":3600}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Yoga Class","status":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data serviceRequest
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &serviceRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
