package cart

import "github.com/shopspring/decimal"

type Item struct {
	ProductID int64
	Quantity  int64
}

type DetailedItem struct {
	Item
	ProductName  string
	ProductPrice decimal.Decimal
}

type Cart struct {
	UserID int64
	Items  []DetailedItem
}
