package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Color string

const (
	ColorRed    Color = "Red"
	ColorBlue   Color = "Blue"
	ColorGreen  Color = "Green"
	ColorBlack  Color = "Black"
	ColorWhite  Color = "White"
	ColorYellow Color = "Yellow"
)

func (c Color) IsValid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorBlack, ColorWhite, ColorYellow:
		return true
	default:
		return false
	}
}

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func (s Size) IsValid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Color       Color
	Size        Size
	Price       decimal.Decimal
	Discount    int64
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListFilter struct {
	Category string
	Search   string
}
