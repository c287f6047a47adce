package handler

import (
	"anoa.com/magangportal/internal/modules/department/dto"
	department "anoa.com/magangportal/internal/modules/department/service"
	commonDto "anoa.com/magangportal/pkg/dto"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	service department.DepartmentService
}

func NewDepartmentHandler(service department.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "departemen berhasil ditambahkan", res)
}

func (h *DepartmentHandler) GetAllDepartments(c *gin.Context) {
	var filter commonDto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	departments, err := h.service.GetAllDepartments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, departments)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.GetDepartment(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdateDepartment(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.DeleteDepartment(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "departemen berhasil dihapus")
}
