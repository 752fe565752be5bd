package api

import (
	"github.com/go-playground/validator/v10"
)

// CreateGroupRequest is the body of POST /api/groups. Memsize is a
// pointer so an omitted field can be told apart from an explicit zero;
// when omitted the default of 0.5 applies.
type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required"`
	Memsize *float64 `json:"memsize" validate:"omitempty,gte=0"`
}

// UpdateGroupRequest is the body of PUT /api/groups/:id. Both fields are
// optional; an omitted field leaves the stored value unchanged.
type UpdateGroupRequest struct {
	Name    *string  `json:"name"`
	Memsize *float64 `json:"memsize" validate:"omitempty,gte=0"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Groups  int    `json:"groups"`
	Uptime  string `json:"uptime"`
}

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound payloads.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return ValidationError("request validation failed", fieldErrors(err))
	}
	return nil
}

// fieldErrors flattens validator errors into a field→message map.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "gte":
			fields[fe.Field()] = "must be at least " + fe.Param()
		default:
			fields[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
	}
	return fields
}
