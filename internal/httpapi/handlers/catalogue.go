package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
)

func (h *Handler) ListJewellery(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, common.CodeInvalidQuery, err.Error())
		return
	}

	items, err := h.Catalogue.List(c.Request.Context(), f)
	if err != nil {
		h.storeError(c, "list jewellery", err)
		return
	}
	common.OK(c, gin.H{"items": items, "count": len(items)})
}

// parseFilter maps present query keys onto the filter. An absent key leaves
// its column unconstrained; a present empty value still constrains it.
func parseFilter(c *gin.Context) (catalogue.Filter, error) {
	var f catalogue.Filter
	for key, dst := range map[string]**string{
		"type":     &f.Type,
		"occasion": &f.Occasion,
		"gender":   &f.Gender,
		"purity":   &f.Purity,
	} {
		if v, ok := c.GetQuery(key); ok {
			*dst = &v
		}
	}

	if v, ok := c.GetQuery("featured"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("featured must be true or false")
		}
		f.Featured = &b
	}
	for key, dst := range map[string]**float64{
		"min_weight": &f.MinWeight,
		"max_weight": &f.MaxWeight,
	} {
		if v, ok := c.GetQuery(key); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return f, errors.New(key + " must be a number")
			}
			*dst = &n
		}
	}
	return f, nil
}

func (h *Handler) GetJewellery(c *gin.Context) {
	item, err := h.Catalogue.Get(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		if errors.Is(err, catalogue.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, common.CodeItemNotFound, "Item not found")
			return
		}
		h.storeError(c, "get jewellery", err)
		return
	}
	common.OK(c, item)
}

func (h *Handler) CreateJewellery(c *gin.Context) {
	var req catalogue.NewItem
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.Catalogue.Create(c.Request.Context(), req)
	if err != nil {
		if catalogue.IsValidation(err) {
			common.Fail(c, http.StatusBadRequest, common.CodeInvalidParams, err.Error())
			return
		}
		h.storeError(c, "create jewellery", err)
		return
	}
	common.OK(c, gin.H{
		"status":  "success",
		"item_id": id,
	})
}
