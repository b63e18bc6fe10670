package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID                 string         `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber        string         `json:"order_number" gorm:"uniqueIndex;not null"`
	Status             string         `json:"status" gorm:"default:'pending'"`
	TrackingCode       *string        `json:"tracking_code" gorm:"uniqueIndex"`
	CarrierName        *string        `json:"carrier_name"`
	CarrierTrackingURL *string        `json:"carrier_tracking_url"`
	ShippingAddress    datatypes.JSON `json:"shipping_address"`
	ShippedAt          *time.Time     `json:"shipped_at"`
	DeliveredAt        *time.Time     `json:"delivered_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	Items           []OrderItem            `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
	TrackingHistory []OrderTrackingHistory `json:"order_tracking_history,omitempty" gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type ShippingAddress struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// PostalCode returns the shipping postal code without whitespace, upper cased.
func (o *Order) PostalCode() string {
	var addr ShippingAddress
	if len(o.ShippingAddress) == 0 || json.Unmarshal(o.ShippingAddress, &addr) != nil {
		return ""
	}
	return NormalizePostalCode(addr.PostalCode)
}

func NormalizePostalCode(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

type OrderItem struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	OrderID         string  `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase" gorm:"type:numeric(10,2)"`
}

// OrderTrackingHistory rows are immutable once written.
type OrderTrackingHistory struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       string    `json:"order_id" gorm:"type:uuid;index;not null"`
	Status        string    `json:"status" gorm:"not null"`
	Location      *string   `json:"location"`
	Description   *string   `json:"description"`
	IsAutomated   bool      `json:"is_automated" gorm:"default:false"`
	CarrierStatus *string   `json:"carrier_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (OrderTrackingHistory) TableName() string {
	return "order_tracking_history"
}
