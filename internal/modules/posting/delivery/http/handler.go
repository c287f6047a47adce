package handler

import (
	"anoa.com/magangportal/internal/modules/posting/dto"
	posting "anoa.com/magangportal/internal/modules/posting/service"
	commonDto "anoa.com/magangportal/pkg/dto"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type PostingHandler struct {
	service posting.PostingService
}

func NewPostingHandler(service posting.PostingService) *PostingHandler {
	return &PostingHandler{service: service}
}

func (h *PostingHandler) CreatePosting(c *gin.Context) {
	var req dto.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.CreatePosting(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "lowongan berhasil ditambahkan", res)
}

func (h *PostingHandler) GetAllPostings(c *gin.Context) {
	var filter dto.PostingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	postings, err := h.service.GetAllPostings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, postings)
}

func (h *PostingHandler) SearchPostings(c *gin.Context) {
	var req dto.SearchPostingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	postings, err := h.service.SearchPostings(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, postings)
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.GetPosting(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *PostingHandler) UpdatePosting(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var req dto.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.UpdatePosting(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *PostingHandler) DeletePosting(c *gin.Context) {
	var uri commonDto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.DeletePosting(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "lowongan berhasil dihapus")
}
