package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores nombran el campo como aparece en el JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el cuerpo JSON en out y aplica las reglas `validate`.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"}
	}
	return validateStruct(out)
}

func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &apiError{Status: fiber.StatusBadRequest, Code: "VALIDATION", Message: err.Error()}
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fieldPath(fe), Rule: fe.Tag()})
	}
	return &apiError{Status: fiber.StatusBadRequest, Code: "VALIDATION", Message: "datos de entrada inválidos", Errors: fields}
}

// fieldPath quita el nombre del struct raíz: "CreateSaleRequest.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func invalidQuery(param string) error {
	return &apiError{
		Status:  fiber.StatusBadRequest,
		Code:    "INVALID_QUERY",
		Message: "parámetro de consulta inválido: " + param,
		Errors:  []dto.FieldError{{Field: param, Rule: "format"}},
	}
}

// queryPage lee limit/offset; la normalización (20 por defecto, 100 máximo) la hace el repositorio.
func queryPage(c *fiber.Ctx) (repository.Page, error) {
	var p repository.Page
	for _, q := range []struct {
		name string
		dst  *int
	}{{"limit", &p.Limit}, {"offset", &p.Offset}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, invalidQuery(q.name)
		}
		*q.dst = n
	}
	return p, nil
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	return &b, nil
}

func queryDecimal(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	return &d, nil
}

// queryTime acepta RFC3339 o fecha simple (2006-01-02). Con fecha simple, "to" cubre el día completo.
func queryTime(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryNameFilter(c *fiber.Ctx) (repository.NameFilter, error) {
	page, err := queryPage(c)
	if err != nil {
		return repository.NameFilter{}, err
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return repository.NameFilter{}, err
	}
	return repository.NameFilter{Name: c.Query("name"), Active: active, Page: page}, nil
}

func queryDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = queryTime(c, "from", false); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(c, "to", true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// pathID lee :id y exige un UUID; los ids se generan siempre con uuid.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_ID", Message: "id inválido: " + id}
	}
	return id, nil
}

// queryUUID lee un filtro por id; vacío no filtra.
func queryUUID(c *fiber.Ctx, name string) (string, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return "", nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", invalidQuery(name)
	}
	return raw, nil
}
