package handler

import (
	"net/http"

	"anoa.com/charityhub/internal/modules/donation/dto"
	"anoa.com/charityhub/internal/modules/donation/service"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/response"
	"anoa.com/charityhub/pkg/validator"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	service service.DonationService
}

func NewDonationHandler(service service.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Invalid(validator.FormatValidationError(err)))
		return
	}

	donation, err := h.service.Create(c.Request.Context(), identity.ID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

func (h *DonationHandler) MyDonations(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	donations, err := h.service.ListByDonor(c.Request.Context(), identity.ID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

func (h *DonationHandler) RecentDonations(c *gin.Context) {
	donations, err := h.service.Recent(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

func (h *DonationHandler) CampaignDonations(c *gin.Context) {
	campaignID, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	donations, err := h.service.ListByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

func (h *DonationHandler) Receipt(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	donationID, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	body, err := h.service.Receipt(c.Request.Context(), identity.ID, donationID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
