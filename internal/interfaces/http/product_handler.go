package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP de productos. Lectura pública.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "categoría, marca o proveedor inexistente"
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/products/"+out.ID, "producto creado", out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "producto encontrado", out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        name         query  string  false  "Nombre (coincidencia parcial)"
// @Param        category_id  query  string  false  "Categoría"
// @Param        brand_id     query  string  false  "Marca"
// @Param        provider_id  query  string  false  "Proveedor"
// @Param        min_price    query  string  false  "Precio mínimo"
// @Param        max_price    query  string  false  "Precio máximo"
// @Param        active       query  bool    false  "Solo activos / inactivos"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Response{data=dto.ListResponse[dto.ProductResponse]}
// @Failure      400  {object}  dto.ErrorResponse  "INVALID_PRICE_RANGE"
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, err := productFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "productos", out)
}

func productFilter(c *fiber.Ctx) (repository.ProductFilter, error) {
	page, err := queryPage(c)
	if err != nil {
		return repository.ProductFilter{}, err
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return repository.ProductFilter{}, err
	}
	minPrice, err := queryDecimal(c, "min_price")
	if err != nil {
		return repository.ProductFilter{}, err
	}
	maxPrice, err := queryDecimal(c, "max_price")
	if err != nil {
		return repository.ProductFilter{}, err
	}
	ids := make(map[string]string, 3)
	for _, name := range []string{"category_id", "brand_id", "provider_id"} {
		if ids[name], err = queryUUID(c, name); err != nil {
			return repository.ProductFilter{}, err
		}
	}
	return repository.ProductFilter{
		Name:       c.Query("name"),
		CategoryID: ids["category_id"],
		BrandID:    ids["brand_id"],
		ProviderID: ids["provider_id"],
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Active:     active,
		Page:       page,
	}, nil
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "producto actualizado", out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}
