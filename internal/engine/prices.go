package engine

import (
	"github.com/shopspring/decimal"
)

// PriceTable holds the four tariffs. Values are not validated.
type PriceTable struct {
	Base             decimal.Decimal
	PremiumSurcharge decimal.Decimal
	ThreeDSurcharge  decimal.Decimal
	ReducedBase      decimal.Decimal
}

// SeatPrice is the cost of one seat of the given category.
func (p PriceTable) SeatPrice(c Category, threeD bool) decimal.Decimal {
	var price decimal.Decimal
	switch c {
	case CategoryStandard:
		price = p.Base
	case CategoryAccessible:
		price = p.ReducedBase
	case CategoryPremium:
		price = p.Base.Add(p.PremiumSurcharge)
	}
	if threeD {
		price = price.Add(p.ThreeDSurcharge)
	}
	return price
}

// PriceSelection sums the seat prices; the 3D surcharge is charged per seat.
func PriceSelection(p PriceTable, threeD bool, seats []Seat) decimal.Decimal {
	total := decimal.Zero
	for _, s := range seats {
		total = total.Add(p.SeatPrice(s.Category, threeD))
	}
	return total
}

// CurrencySymbol is appended to formatted totals stored on reservations.
const CurrencySymbol = "€"

// FormatCost renders integral amounts without decimals ("23") and others with two ("8.50").
func FormatCost(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return amount.Truncate(0).String()
	}
	return amount.StringFixed(2)
}

// FormatTotal is FormatCost with the currency symbol, as printed on invoices.
func FormatTotal(amount decimal.Decimal) string {
	return FormatCost(amount) + CurrencySymbol
}
