package handler

import (
	"net/http"

	"anoa.com/charityhub/internal/modules/fundusage/dto"
	"anoa.com/charityhub/internal/modules/fundusage/service"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/response"
	"anoa.com/charityhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FundUsageHandler struct {
	service service.FundUsageService
}

func NewFundUsageHandler(service service.FundUsageService) *FundUsageHandler {
	return &FundUsageHandler{service: service}
}

func (h *FundUsageHandler) ListFundUsage(c *gin.Context) {
	usage, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, usage)
}

func (h *FundUsageHandler) CreateFundUsage(c *gin.Context) {
	var req dto.CreateFundUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Invalid(validator.FormatValidationError(err)))
		return
	}

	usage, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, usage)
}

func (h *FundUsageHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
