package catalogue

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Item is a catalogue entry. ItemID is the public code and is not unique;
// ID only fixes insertion order.
type Item struct {
	ID                uint64                      `gorm:"primaryKey;autoIncrement" json:"-"`
	ItemID            string                      `gorm:"type:varchar(64);index;not null" json:"item_id"`
	Name              string                      `gorm:"type:varchar(255);not null" json:"name"`
	Type              string                      `gorm:"type:varchar(32);index;not null" json:"type"`
	Occasion          string                      `gorm:"type:varchar(32);index" json:"occasion"`
	Gender            string                      `gorm:"type:varchar(16)" json:"gender"`
	Purity            string                      `gorm:"type:varchar(8);not null" json:"purity"`
	WeightMin         float64                     `gorm:"not null" json:"weight_min"`
	WeightMax         float64                     `gorm:"not null" json:"weight_max"`
	LabourCostPerGram float64                     `gorm:"not null" json:"labour_cost_per_gram"`
	MakingComplexity  string                      `gorm:"type:varchar(16)" json:"making_complexity"`
	Images            datatypes.JSONSlice[string] `json:"images"`
	Description       string                      `gorm:"type:text" json:"description"`
	IsFeatured        bool                        `gorm:"index" json:"is_featured"`
	CreatedAt         time.Time                   `json:"created_at"`
}

func (Item) TableName() string { return "jewellery_items" }

// Filter constrains List. A nil field places no constraint on that column.
type Filter struct {
	Type     *string
	Occasion *string
	Gender   *string
	Purity   *string
	Featured *bool

	// MinWeight keeps items whose weight_max >= MinWeight.
	MinWeight *float64
	// MaxWeight keeps items whose weight_min <= MaxWeight.
	MaxWeight *float64
}

// NewItem is the create payload.
type NewItem struct {
	ItemID            string   `json:"item_id"`
	Name              string   `json:"name" binding:"required"`
	Type              string   `json:"type" binding:"required"`
	Occasion          string   `json:"occasion" binding:"required"`
	Gender            string   `json:"gender" binding:"required"`
	Purity            string   `json:"purity" binding:"required"`
	WeightMin         float64  `json:"weight_min" binding:"gte=0"`
	WeightMax         float64  `json:"weight_max" binding:"gte=0"`
	LabourCostPerGram float64  `json:"labour_cost_per_gram" binding:"gte=0"`
	MakingComplexity  string   `json:"making_complexity" binding:"required"`
	Images            []string `json:"images"`
	Description       string   `json:"description" binding:"required"`
	IsFeatured        bool     `json:"is_featured"`
}

func (n NewItem) toItem() *Item {
	images := n.Images
	if images == nil {
		images = []string{}
	}
	return &Item{
		ItemID:            n.ItemID,
		Name:              n.Name,
		Type:              n.Type,
		Occasion:          n.Occasion,
		Gender:            n.Gender,
		Purity:            n.Purity,
		WeightMin:         n.WeightMin,
		WeightMax:         n.WeightMax,
		LabourCostPerGram: n.LabourCostPerGram,
		MakingComplexity:  n.MakingComplexity,
		Images:            datatypes.JSONSlice[string](images),
		Description:       n.Description,
		IsFeatured:        n.IsFeatured,
	}
}
