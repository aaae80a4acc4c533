package handler

import (
	"net/http"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/service"
	"github.com/duccv/shop-admin/internal/validation"
	"github.com/duccv/shop-admin/util"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List godoc
//
//	@Summary		List products
//	@Description	Newest first, with category name. Supports If-None-Match.
//	@Tags			Products
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page (default 1)"
//	@Param			limit		query		int	false	"Page size, 1-100 (default 10)"
//	@Param			category	query		int	false	"Category ID"
//	@Success		200			{object}	response.ResponseData{data=[]model.Product,meta=model.PaginationMeta}
//	@Success		304
//	@Failure		400	{object}	response.ResponseData
//	@Failure		401	{object}	response.ResponseData
//	@Router			/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	q, ok := validation.Query[model.ProductQuery](c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, constant.INVALID_QUERY)
		return
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		internalError(c, "list products", err)
		return
	}

	body := constant.SUCCESS.WithData(page.Data, page.Meta)
	etag := util.GenerateETag(body)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")

	if util.ETagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, body)
}
