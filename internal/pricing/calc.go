package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	TaxRate              = 0.03
	DefaultLabourPerGram = 500.0

	// estimate range is ±5% of the total
	estimateLow  = 0.95
	estimateHigh = 1.05
)

type Breakdown struct {
	GoldRatePerGram float64 `json:"gold_rate_per_gram"`
	Weight          float64 `json:"weight"`
	Purity          string  `json:"purity"`
	GoldValue       float64 `json:"gold_value"`
	LabourPerGram   float64 `json:"labour_per_gram"`
	LabourCost      float64 `json:"labour_cost"`
	Subtotal        float64 `json:"subtotal"`
	GSTRate         string  `json:"gst_rate"`
	GSTAmount       float64 `json:"gst_amount"`
	Total           float64 `json:"total"`
}

type EstimateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Calculation struct {
	Breakdown     Breakdown     `json:"breakdown"`
	EstimateRange EstimateRange `json:"estimate_range"`
}

// Calculate prices an item against quote q. Inputs are not validated here;
// callers reject negative weights and labour rates.
//
// Currency outputs are rounded to 2 decimals half-to-even; intermediate
// values stay unrounded.
func Calculate(q Quote, weight float64, purity string, labourPerGram float64, includeTax bool) Calculation {
	rate := q.RateFor(purity)

	goldValue := rate * weight
	labourCost := labourPerGram * weight
	subtotal := goldValue + labourCost

	var tax float64
	gstRate := "0%"
	if includeTax {
		tax = subtotal * TaxRate
		gstRate = "3%"
	}
	total := subtotal + tax

	return Calculation{
		Breakdown: Breakdown{
			GoldRatePerGram: round2(rate),
			Weight:          weight,
			Purity:          purity,
			GoldValue:       round2(goldValue),
			LabourPerGram:   labourPerGram,
			LabourCost:      round2(labourCost),
			Subtotal:        round2(subtotal),
			GSTRate:         gstRate,
			GSTAmount:       round2(tax),
			Total:           round2(total),
		},
		EstimateRange: EstimateRange{
			Min: round2(total * estimateLow),
			Max: round2(total * estimateHigh),
		},
	}
}

func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, _ := decimal.NewFromFloat(x).RoundBank(2).Float64()
	return v
}
