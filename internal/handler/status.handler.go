package handler

import (
	"net/http"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/service"
	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	status service.StatusService
}

func NewStatusHandler(status service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// Database godoc
//
//	@Summary		Database status
//	@Description	Connection state and per-table row counts. Always 200; failures are described in the body.
//	@Tags			Status
//	@Produce		json
//	@Success		200	{object}	response.ResponseData{data=model.StatusReport}
//	@Router			/status/db [get]
func (h *StatusHandler) Database(c *gin.Context) {
	c.JSON(http.StatusOK, constant.SUCCESS.WithData(h.status.Report(c.Request.Context()), nil))
}
