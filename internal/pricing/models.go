package pricing

import "time"

type QuoteSource string

const (
	SourceLive    QuoteSource = "live"
	SourceManual  QuoteSource = "manual"
	SourceDefault QuoteSource = "default"
)

// Purity grades accepted by the calculator.
const (
	Purity24K = "24K"
	Purity22K = "22K"
	Purity18K = "18K"
)

// Quote is a timestamped snapshot of per-gram prices. History is append-only;
// the current quote is the newest by Timestamp.
type Quote struct {
	ID        uint64      `gorm:"primaryKey;autoIncrement" json:"-"`
	Gold24K   float64     `gorm:"column:gold_24k;not null" json:"gold_24k"`
	Gold22K   float64     `gorm:"column:gold_22k;not null" json:"gold_22k"`
	Gold18K   float64     `gorm:"column:gold_18k;not null" json:"gold_18k"`
	Silver    float64     `gorm:"column:silver;not null" json:"silver"`
	Timestamp time.Time   `gorm:"index;not null" json:"timestamp"`
	Source    QuoteSource `gorm:"type:varchar(16);not null" json:"source"`
}

func (Quote) TableName() string { return "gold_prices" }

// RateFor returns the per-gram rate for a purity grade. Unrecognised grades
// price at the 22K rate.
func (q Quote) RateFor(purity string) float64 {
	switch purity {
	case Purity24K:
		return q.Gold24K
	case Purity18K:
		return q.Gold18K
	default:
		return q.Gold22K
	}
}

// DeriveQuote builds a live quote from the 24K price using the fixed
// 22/24, 18/24 and 1/80 ratios.
func DeriveQuote(gold24k float64, at time.Time) Quote {
	return Quote{
		Gold24K:   round2(gold24k),
		Gold22K:   round2(gold24k * 22 / 24),
		Gold18K:   round2(gold24k * 18 / 24),
		Silver:    round2(gold24k / 80),
		Timestamp: at,
		Source:    SourceLive,
	}
}

// DefaultQuote is served when neither the provider nor the history has a price.
func DefaultQuote(at time.Time) Quote {
	return Quote{
		Gold24K:   7500.00,
		Gold22K:   6875.00,
		Gold18K:   5625.00,
		Silver:    95.00,
		Timestamp: at,
		Source:    SourceDefault,
	}
}

// ManualQuote is an operator-supplied price set, stored verbatim. Any value,
// zero included, is accepted.
type ManualQuote struct {
	Gold24K float64 `json:"gold_24k"`
	Gold22K float64 `json:"gold_22k"`
	Gold18K float64 `json:"gold_18k"`
	Silver  float64 `json:"silver"`
}
