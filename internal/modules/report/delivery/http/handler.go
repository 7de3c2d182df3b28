package handler

import (
	"fmt"
	"net/http"

	"anoa.com/charityhub/internal/modules/report/service"
	"anoa.com/charityhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) CampaignsCSV(c *gin.Context) {
	body, err := h.service.CampaignsCSV(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sendCSV(c, service.CampaignsFileName, body)
}

func (h *ReportHandler) FundUsageCSV(c *gin.Context) {
	body, err := h.service.FundUsageCSV(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sendCSV(c, service.FundUsageFileName, body)
}

func sendCSV(c *gin.Context, fileName string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}
