package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/inquiry"
)

func (h *Handler) SubmitOrderIntent(c *gin.Context) {
	var req inquiry.OrderIntentInput
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.Inquiries.SubmitOrderIntent(c.Request.Context(), req)
	if err != nil {
		if h.validationFailed(c, err) {
			return
		}
		h.storeError(c, "save order intent", err)
		return
	}
	common.OK(c, gin.H{
		"status":   "success",
		"order_id": o.OrderID,
		"message":  "Your order intent has been saved. We will contact you shortly!",
	})
}

func (h *Handler) GetOrderIntent(c *gin.Context) {
	o, err := h.Inquiries.GetOrderIntent(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, inquiry.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, common.CodeOrderNotFound, "Order intent not found")
			return
		}
		h.storeError(c, "get order intent", err)
		return
	}
	common.OK(c, o)
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req inquiry.ContactInput
	if !bindJSON(c, &req) {
		return
	}

	ci, err := h.Inquiries.SubmitContact(c.Request.Context(), req)
	if err != nil {
		if h.validationFailed(c, err) {
			return
		}
		h.storeError(c, "save contact inquiry", err)
		return
	}
	common.OK(c, gin.H{
		"status":     "success",
		"inquiry_id": ci.InquiryID,
		"message":    "Thank you for your message. We will get back to you soon!",
	})
}

func (h *Handler) validationFailed(c *gin.Context, err error) bool {
	var ve *inquiry.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	common.Fail(c, http.StatusBadRequest, common.CodeInvalidParams, ve.Error())
	return true
}
