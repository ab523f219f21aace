package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentCard           PaymentMethod = "Card"
	PaymentMobileMoney    PaymentMethod = "Mobile Money"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCashOnDelivery, PaymentCard, PaymentMobileMoney:
		return true
	default:
		return false
	}
}

// Item is the snapshot taken from a cart line at placement time. Only the
// product reference and quantity are stored; the price enters the order as
// the aggregate total.
type Item struct {
	ProductID int64
	Quantity  int64
}

type Order struct {
	ID            string
	UserID        int64
	Items         []Item
	TotalPrice    decimal.Decimal
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
}

// DetailedItem carries current product data resolved for display. An empty
// ProductName means the product has since been deleted.
type DetailedItem struct {
	Item
	ProductName  string
	ProductPrice decimal.Decimal
}

type Detailed struct {
	Order
	DetailedItems []DetailedItem
}
