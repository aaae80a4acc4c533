package handler

import (
	"net/http"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/service"
	"github.com/duccv/shop-admin/internal/validation"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List godoc
//
//	@Summary		List orders
//	@Description	Newest first, with item counts. search matches order number or customer name.
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int		false	"Page (default 1)"
//	@Param			limit	query		int		false	"Page size, 1-100 (default 10)"
//	@Param			search	query		string	false	"Search text"
//	@Success		200		{object}	response.ResponseData{data=[]model.Order,meta=model.PaginationMeta}
//	@Failure		400		{object}	response.ResponseData
//	@Failure		401		{object}	response.ResponseData
//	@Router			/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	q, ok := validation.Query[model.OrderQuery](c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, constant.INVALID_QUERY)
		return
	}

	page, err := h.orders.ListOrders(c.Request.Context(), q)
	if err != nil {
		internalError(c, "list orders", err)
		return
	}

	c.JSON(http.StatusOK, constant.SUCCESS.WithData(page.Data, page.Meta))
}
