package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
)

func (h *Handler) GetGoldPrice(c *gin.Context) {
	common.OK(c, h.Prices.Current(c.Request.Context()))
}

// manualQuoteRequest uses pointers so that a zero price binds while a
// missing one fails "required".
type manualQuoteRequest struct {
	Gold24K *float64 `json:"gold_24k" binding:"required"`
	Gold22K *float64 `json:"gold_22k" binding:"required"`
	Gold18K *float64 `json:"gold_18k" binding:"required"`
	Silver  *float64 `json:"silver" binding:"required"`
}

func (h *Handler) UpdateGoldPrice(c *gin.Context) {
	var req manualQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.Prices.UpdateManually(c.Request.Context(), pricing.ManualQuote{
		Gold24K: *req.Gold24K,
		Gold22K: *req.Gold22K,
		Gold18K: *req.Gold18K,
		Silver:  *req.Silver,
	})
	if err != nil {
		h.storeError(c, "update gold price", err)
		return
	}
	common.OK(c, gin.H{
		"status":  "success",
		"message": "Gold price updated",
		"quote":   q,
	})
}

func (h *Handler) GoldPriceHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	quotes, err := h.Prices.History(c.Request.Context(), limit)
	if err != nil {
		h.storeError(c, "list gold prices", err)
		return
	}
	common.OK(c, gin.H{"quotes": quotes, "count": len(quotes)})
}

type calcQuery struct {
	Weight        *float64 `form:"weight" binding:"required,gte=0"`
	Purity        string   `form:"purity" binding:"required"`
	LabourPerGram float64  `form:"labour_per_gram,default=500" binding:"gte=0"`
	IncludeGST    bool     `form:"include_gst,default=true"`
}

// CalculatePrice reads its inputs from the query string for both GET and POST.
func (h *Handler) CalculatePrice(c *gin.Context) {
	var q calcQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeInvalidQuery, "weight and purity are required; weight and labour_per_gram must be non-negative numbers")
		return
	}
	common.OK(c, h.Prices.Calculate(c.Request.Context(), *q.Weight, q.Purity, q.LabourPerGram, q.IncludeGST))
}
