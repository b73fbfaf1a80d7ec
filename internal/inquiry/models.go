package inquiry

import (
	"time"

	"gorm.io/datatypes"
)

const StatusPending = "pending"

// LineItem is one catalogue reference inside an order intent.
type LineItem struct {
	Name     string  `json:"name"`
	ItemID   string  `json:"item_id"`
	Estimate float64 `json:"estimate"`
}

type OrderIntent struct {
	ID            uint64                        `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string                        `gorm:"type:varchar(16);index;not null" json:"order_id"`
	CustomerName  string                        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string                        `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string                        `gorm:"type:varchar(32);not null" json:"customer_phone"`
	Occasion      string                        `gorm:"type:varchar(64)" json:"occasion"`
	Timeline      string                        `gorm:"type:varchar(64)" json:"timeline"`
	Items         datatypes.JSONSlice[LineItem] `json:"items"`
	TotalEstimate float64                       `json:"total_estimate"`
	Message       string                        `gorm:"type:text" json:"message"`
	Status        string                        `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt     time.Time                     `json:"created_at"`
}

func (OrderIntent) TableName() string { return "order_intents" }

type ContactInquiry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	InquiryID string    `gorm:"type:varchar(16);index;not null" json:"inquiry_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	Subject   string    `gorm:"type:varchar(255)" json:"subject"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactInquiry) TableName() string { return "contact_inquiries" }

type OrderIntentInput struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerEmail string     `json:"customer_email" binding:"required,email"`
	CustomerPhone string     `json:"customer_phone" binding:"required"`
	Occasion      string     `json:"occasion" binding:"required"`
	Timeline      string     `json:"timeline" binding:"required"`
	Items         []LineItem `json:"items" binding:"required"`
	TotalEstimate *float64   `json:"total_estimate" binding:"required"`
	Message       string     `json:"message"`
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
