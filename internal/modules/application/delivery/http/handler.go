package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"anoa.com/magangportal/internal/modules/application/dto"
	application "anoa.com/magangportal/internal/modules/application/service"
	"anoa.com/magangportal/pkg/apperror"
	commonDto "anoa.com/magangportal/pkg/dto"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	service application.ApplicationService
}

func NewApplicationHandler(service application.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Submit handles the public multipart application form.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(c)
			return
		}
		response.BindError(c, err)
		return
	}
	// A blank optional input still binds, as zero.
	if strings.TrimSpace(c.PostForm("gpa")) == "" {
		req.GPA = nil
	}

	var cv dto.CVFile
	fileHeader, err := c.FormFile("cv")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, apperror.InvalidAttachment("CV tidak dapat dibaca"))
			return
		}
		defer file.Close()
		cv = dto.CVFile{Reader: file, FileName: fileHeader.Filename, Size: fileHeader.Size}
	case errors.Is(err, http.ErrMissingFile):
		// ValidateCV reports the missing file after the duplicate check.
	default:
		response.BindError(c, err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req, cv)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "pendaftaran berhasil dikirim", res)
}

func (h *ApplicationHandler) GetPendingApplications(c *gin.Context) {
	var filter commonDto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.GetPendingApplications(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *ApplicationHandler) GetHistory(c *gin.Context) {
	var filter dto.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.GetHistory(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *ApplicationHandler) ExportHistory(c *gin.Context) {
	var filter dto.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	buf, filename, err := h.service.ExportHistory(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.GetApplication(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.SetStatus(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.DeleteApplication(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "pendaftaran berhasil dihapus")
}
