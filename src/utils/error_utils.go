// error_utils.go
package utils

import (
	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/logger"
	"github.com/pkg/errors"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleServiceError maps the service error taxonomy to a status and code.
func HandleServiceError(c *fiber.Ctx, err error) error {
	resp := ErrorFor(err)
	if resp.Status >= fiber.StatusInternalServerError {
		logger.Errorf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(resp.Status).JSON(resp)
}

// ErrorFor builds the response body for err.
func ErrorFor(err error) models.ErrorResponse {
	var incomplete *errs.IncompleteAnswersError
	switch {
	case errors.As(err, &incomplete):
		return models.ErrorResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Code:    "INCOMPLETE_ANSWERS",
			Message: incomplete.Error(),
			Missing: incomplete.Missing,
		}
	case errors.Is(err, errs.ErrPortalClosed):
		return models.ErrorResponse{Status: fiber.StatusForbidden, Code: "PORTAL_CLOSED", Message: "Portal sedang ditutup."}
	case errors.Is(err, errs.ErrUnknownClass):
		return models.ErrorResponse{Status: fiber.StatusBadRequest, Code: "UNKNOWN_CLASS", Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidInput):
		return models.ErrorResponse{Status: fiber.StatusBadRequest, Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidCode):
		return models.ErrorResponse{Status: fiber.StatusBadRequest, Code: "INVALID_CODE", Message: err.Error()}
	case errors.Is(err, errs.ErrBadCredentials):
		return models.ErrorResponse{Status: fiber.StatusUnauthorized, Code: "BAD_CREDENTIALS", Message: err.Error()}
	case errors.Is(err, errs.ErrDuplicateClass):
		return models.ErrorResponse{Status: fiber.StatusConflict, Code: "DUPLICATE_CLASS", Message: err.Error()}
	case errors.Is(err, errs.ErrNotFound):
		return models.ErrorResponse{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, errs.ErrAIServiceFailure):
		return models.ErrorResponse{Status: fiber.StatusBadGateway, Code: "AI_SERVICE_FAILURE", Message: "Layanan AI gagal merespons."}
	case errors.Is(err, errs.ErrStoreUnavailable):
		return models.ErrorResponse{Status: fiber.StatusServiceUnavailable, Code: "STORE_UNAVAILABLE", Message: "Penyimpanan data tidak tersedia, coba lagi."}
	}
	return models.ErrorResponse{Status: fiber.StatusInternalServerError, Code: "INTERNAL", Message: "Internal server error"}
}
