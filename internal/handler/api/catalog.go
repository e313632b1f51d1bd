package api

import (
	"errors"
	"net/http"

	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog queries.CatalogQueries
}

func NewCatalogHandler(catalog queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// @Summary List products
// @Description List active products, optionally filtered by category slug or name search
// @Tags catalog
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Name substring"
// @Success 200 {array} resdto.ProductResponse
// @Router /catalog [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := queries.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ProductResponse, len(products))
	for i, p := range products {
		response[i] = resdto.FromProductView(p)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} map[string]any
// @Router /catalog/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductView(product))
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CategoryResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = resdto.FromCategoryView(cat)
	}

	c.JSON(http.StatusOK, response)
}
