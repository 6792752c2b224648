package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	"github.com/pvlabs/riskwatch/internal/orderguard"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	snapshotdomain "github.com/pvlabs/riskwatch/internal/snapshot/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func newValidationError(field, code, message string) ValidationErrors {
	return ValidationErrors{Errors: []ValidationError{{Field: field, Code: code, Message: message}}}
}

func invalidRequestError() ValidationErrors {
	return newValidationError("request", "invalid_request", "invalid request payload")
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var vErrs ValidationErrors
	if errors.As(err, &vErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "validation_error",
			Message: "request validation failed",
			Errors:  vErrs.Errors,
		}})
		return
	}

	var settingsErr *riskconfigdomain.ValidationError
	if errors.As(err, &settingsErr) {
		fields := make([]ValidationError, 0, len(settingsErr.Fields))
		for _, f := range settingsErr.Fields {
			fields = append(fields, ValidationError{Field: f.Field, Code: "invalid_value", Message: f.Message})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "validation_error",
			Message: "settings validation failed",
			Errors:  fields,
		}})
		return
	}

	var blocked *orderguard.BlockedError
	if errors.As(err, &blocked) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Error: errorPayload{
			Type:    "confirmation_blocked",
			Message: blocked.Error(),
		}})
		return
	}

	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, orderguard.ErrOrderNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}})
	case errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, snapshotdomain.ErrInvalidID),
		errors.Is(err, orderguard.ErrInvalidID):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}})
	case errors.Is(err, customerdomain.ErrInvalidCompany),
		errors.Is(err, snapshotdomain.ErrInvalidCompany),
		errors.Is(err, riskconfigdomain.ErrInvalidCompany),
		errors.Is(err, orderguard.ErrInvalidCompany):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
			Type:    "invalid_company",
			Message: err.Error(),
		}})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: errorPayload{
			Type:    "internal_error",
			Message: "internal error",
		}})
	}
}
