package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
)

// apiError error ya traducido a estado HTTP y código de la API.
type apiError struct {
	Status  int
	Code    string
	Message string
	Errors  any
}

func (e *apiError) Error() string { return e.Message }

var notFoundCodes = []struct {
	err  error
	code string
}{
	{domain.ErrPermissionsNotFound, "PERMISSIONS_NOT_FOUND"},
	{domain.ErrBrandNotFound, "BRAND_NOT_FOUND"},
	{domain.ErrCategoryNotFound, "CATEGORY_NOT_FOUND"},
	{domain.ErrProductNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrProviderNotFound, "PROVIDER_NOT_FOUND"},
	{domain.ErrRoleNotFound, "ROLE_NOT_FOUND"},
	{domain.ErrSaleNotFound, "SALE_NOT_FOUND"},
	{domain.ErrStocktakingNotFound, "STOCKTAKING_NOT_FOUND"},
	{domain.ErrUserNotFound, "USER_NOT_FOUND"},
	{domain.ErrPermissionNotFound, "PERMISSION_NOT_FOUND"},
	{domain.ErrNotFound, "NOT_FOUND"},
}

// classify traduce un error de dominio a estado y código. Todo lo desconocido es 500.
func classify(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return &apiError{Status: fiber.StatusConflict, Code: "PROVIDER_ALREADY_EXISTS", Message: conflict.Error(), Errors: conflict.Fields}
	}
	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.err) {
			return &apiError{Status: fiber.StatusNotFound, Code: nf.code, Message: nf.err.Error()}
		}
	}
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return &apiError{Status: fiber.StatusConflict, Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &apiError{Status: fiber.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrInvalidToken):
		return &apiError{Status: fiber.StatusUnauthorized, Code: "INVALID_TOKEN", Message: domain.ErrInvalidToken.Error()}
	case errors.Is(err, domain.ErrAccessDenied):
		return &apiError{Status: fiber.StatusForbidden, Code: "ACCESS_DENIED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidDateRange):
		return &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_DATE_RANGE", Message: domain.ErrInvalidDateRange.Error()}
	case errors.Is(err, domain.ErrInvalidPriceRange):
		return &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_PRICE_RANGE", Message: domain.ErrInvalidPriceRange.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrReportGeneration):
		return &apiError{Status: fiber.StatusInternalServerError, Code: "REPORT_GENERATION_FAILED", Message: domain.ErrReportGeneration.Error()}
	}
	return &apiError{Status: fiber.StatusInternalServerError, Code: "INTERNAL", Message: "error interno del servidor"}
}

// respondError escribe el envoltorio de error. Los 5xx se registran con el error original.
func respondError(c *fiber.Ctx, err error) error {
	ae := classify(err)
	if ae.Status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return writeError(c, ae)
}

func writeError(c *fiber.Ctx, ae *apiError) error {
	return c.Status(ae.Status).JSON(dto.ErrorResponse{
		Status:    ae.Status,
		Code:      ae.Code,
		Message:   ae.Message,
		Errors:    ae.Errors,
		Timestamp: time.Now().UTC(),
		Path:      c.Method() + " " + c.Path(),
	})
}

func respondOK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Status:    fiber.StatusOK,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// respondCreated responde 201 con Location apuntando al recurso nuevo.
func respondCreated(c *fiber.Ctx, location, message string, data any) error {
	c.Location(location)
	return c.Status(fiber.StatusCreated).JSON(dto.Response{
		Status:    fiber.StatusCreated,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, métodos no permitidos y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "BAD_REQUEST"
		}
		return writeError(c, &apiError{Status: fe.Code, Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
