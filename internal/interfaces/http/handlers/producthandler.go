package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfwatch/internal/application/inventory/dto"
	"shelfwatch/internal/interfaces/http/middleware"
	"shelfwatch/internal/shared/id"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// ProductHandler serves the caller's own inventory; the tenant is always
// the gateway-resolved subject.
type ProductHandler struct {
	listProducts  listProductsUseCase
	createProduct createProductUseCase
	deleteProduct deleteProductUseCase
	logger        logger.Interface
}

func NewProductHandler(
	listProducts listProductsUseCase,
	createProduct createProductUseCase,
	deleteProduct deleteProductUseCase,
	logger logger.Interface,
) *ProductHandler {
	return &ProductHandler{
		listProducts:  listProducts,
		createProduct: createProduct,
		deleteProduct: deleteProduct,
		logger:        logger,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	products, err := h.listProducts.Execute(c.Request.Context(), tenant.ID)
	if err != nil {
		h.logger.Errorw("failed to list products", "tenant_id", tenant.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", products)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	var req dto.CreateProductRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create product", "tenant_id", tenant.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	product, err := h.createProduct.Execute(c.Request.Context(), tenant.ID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, product, "product created")
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	tenant := middleware.SubjectFrom(c)

	productID, err := utils.ParseSIDParam(c, "id", id.PrefixProduct, "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteProduct.Execute(c.Request.Context(), tenant.ID, productID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
