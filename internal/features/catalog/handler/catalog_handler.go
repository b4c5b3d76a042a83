package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for browsing the catalog.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// ProductListResponse is a filtered product listing.
type ProductListResponse struct {
	// CategoryName is the heading for the listing.
	CategoryName string `json:"category_name"`
	// Count is the number of products returned.
	Count int `json:"count"`
	// Products is the filtered, sorted product list.
	Products []domain.Product `json:"products"`
}

// ListProducts handles GET /products.
// @Summary List products
// @Description Filters the catalog by category, search term, brands and price range, then sorts it.
// @Tags Catalog
// @Produce json
// @Param category query string false "Category id or 'all'"
// @Param search query string false "Name or brand substring"
// @Param brands query string false "Comma separated brands"
// @Param min_price query int false "Minimum price (default 0)"
// @Param max_price query int false "Maximum price (default 500)"
// @Param sort query string false "relevance, price-low, price-high or name"
// @Success 200 {object} ProductListResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filter := domain.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     domain.SortOrder(c.Query("sort")),
	}

	if raw := c.Query("brands"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				filter.Brands = append(filter.Brands, b)
			}
		}
	}

	var err error
	if filter.MinPrice, err = optionalInt(c, "min_price"); err != nil {
		return server.Fail(c, http.StatusBadRequest, "min_price must be an integer")
	}
	if filter.MaxPrice, err = optionalInt(c, "max_price"); err != nil {
		return server.Fail(c, http.StatusBadRequest, "max_price must be an integer")
	}

	ctx := c.UserContext()
	products, err := h.service.List(ctx, filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			return server.Fail(c, http.StatusBadRequest, "sort must be relevance, price-low, price-high or name")
		}
		return h.internal(c, "Failed to list products", err)
	}

	name, err := h.service.CategoryName(ctx, filter.Category)
	if err != nil {
		return h.internal(c, "Failed to resolve category", err)
	}

	return c.Status(http.StatusOK).JSON(ProductListResponse{
		CategoryName: name,
		Count:        len(products),
		Products:     products,
	})
}

// GetProduct handles GET /products/:id.
// @Summary Get a product
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} server.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return server.Fail(c, http.StatusNotFound, "Product not found")
		}
		return h.internal(c, "Failed to get product", err)
	}
	return c.Status(http.StatusOK).JSON(product)
}

// ListCategories handles GET /categories.
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return h.internal(c, "Failed to list categories", err)
	}
	return c.Status(http.StatusOK).JSON(categories)
}

// ListStores handles GET /stores.
// @Summary List partner stores
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Store
// @Router /stores [get]
func (h *CatalogHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.service.Stores(c.UserContext())
	if err != nil {
		return h.internal(c, "Failed to list stores", err)
	}
	return c.Status(http.StatusOK).JSON(stores)
}

// ListBrands handles GET /brands.
// @Summary List brands
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Router /brands [get]
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.service.Brands(c.UserContext())
	if err != nil {
		return h.internal(c, "Failed to list brands", err)
	}
	return c.Status(http.StatusOK).JSON(brands)
}

func (h *CatalogHandler) internal(c *fiber.Ctx, msg string, err error) error {
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
