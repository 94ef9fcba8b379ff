package cart

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/catalog"
	"goflare.io/storefront/models"
)

const displayPlaces = 2

var currencySymbols = map[stripe.Currency]string{
	stripe.CurrencyUSD: "$",
	stripe.CurrencyEUR: "€",
	stripe.CurrencyGBP: "£",
	stripe.CurrencyBRL: "R$",
}

// LineTotal is price × quantity rounded half away from zero to two places.
func LineTotal(price decimal.Decimal, quantity uint64) decimal.Decimal {
	return lineAmount(price, quantity).Round(displayPlaces)
}

// CartTotal sums the unrounded line amounts and rounds once at the end.
// Lines whose dessert is missing from the catalog contribute nothing.
func CartTotal(cat *catalog.Catalog, c models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		d, ok := cat.Lookup(line.DessertID)
		if !ok {
			continue
		}
		total = total.Add(lineAmount(d.Price, line.Quantity))
	}
	return total.Round(displayPlaces)
}

func lineAmount(price decimal.Decimal, quantity uint64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// FormatAmount renders amount with exactly two decimal places, e.g. "4.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(displayPlaces)
}

// FormatPrice renders amount as "$X.XX" style text for the given currency.
// Currencies without a symbol here, including zero-decimal ones such as JPY,
// fall back to their upper-case code.
func FormatPrice(currency stripe.Currency, amount decimal.Decimal) string {
	value := FormatAmount(amount)
	symbol, ok := currencySymbols[currency]
	if !ok {
		return strings.ToUpper(string(currency)) + " " + value
	}
	if amount.IsNegative() {
		return "-" + symbol + strings.TrimPrefix(value, "-")
	}
	return symbol + value
}

// Summarize builds the render model for c from scratch.
func Summarize(cat *catalog.Catalog, c models.Cart, currency stripe.Currency) *models.CartSummary {
	summary := &models.CartSummary{
		Currency: currency,
		Lines:    make([]models.LineSummary, 0, len(c.Lines)),
	}

	for _, line := range c.Lines {
		d, ok := cat.Lookup(line.DessertID)
		if !ok {
			continue
		}
		lineTotal := LineTotal(d.Price, line.Quantity)
		summary.Lines = append(summary.Lines, models.LineSummary{
			DessertID:          d.ID,
			Name:               d.Name,
			ImageSrc:           d.ImageSrc,
			Quantity:           line.Quantity,
			UnitPrice:          d.Price,
			LineTotal:          lineTotal,
			FormattedUnitPrice: FormatPrice(currency, d.Price),
			FormattedLineTotal: FormatPrice(currency, lineTotal),
		})
		summary.ItemCount += line.Quantity
	}

	summary.Total = CartTotal(cat, c)
	summary.FormattedTotal = FormatPrice(currency, summary.Total)
	summary.Empty = len(summary.Lines) == 0

	return summary
}
