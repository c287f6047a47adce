package handler

import (
	"anoa.com/magangportal/internal/modules/dashboard/dto"
	dashboard "anoa.com/magangportal/internal/modules/dashboard/service"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service dashboard.DashboardService
}

func NewDashboardHandler(service dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *DashboardHandler) GetTrend(c *gin.Context) {
	trend, err := h.service.GetTrend(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, trend)
}

func (h *DashboardHandler) GetDepartmentDistribution(c *gin.Context) {
	distribution, err := h.service.GetDepartmentDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, distribution)
}

func (h *DashboardHandler) GetRecentApplications(c *gin.Context) {
	var filter dto.RecentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	items, err := h.service.GetRecentApplications(c.Request.Context(), filter.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, items)
}
