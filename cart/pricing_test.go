package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/catalog"
	"goflare.io/storefront/models"
)

func embedded(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Embedded()
	require.NoError(t, err)
	return cat
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		price string
		qty   uint64
		want  string
	}{
		{"6.50", 1, "6.50"},
		{"6.50", 3, "19.50"},
		{"2.75", 2, "5.50"},
		{"0.335", 1, "0.34"},
		{"0.125", 3, "0.38"},
		{"4.50", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := LineTotal(decimal.RequireFromString(tt.price), tt.qty)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCartTotal(t *testing.T) {
	cat := embedded(t)

	t.Run("empty cart", func(t *testing.T) {
		assert.Equal(t, "0.00", CartTotal(cat, models.Cart{}).StringFixed(2))
	})

	t.Run("single tiramisu", func(t *testing.T) {
		c := Add(models.Cart{}, 4)
		assert.Equal(t, "4.50", CartTotal(cat, c).StringFixed(2))
	})

	t.Run("two tiramisu and a pie", func(t *testing.T) {
		c := Add(Add(Add(models.Cart{}, 4), 4), 6)
		assert.Equal(t, "11.75", CartTotal(cat, c).StringFixed(2))
	})

	t.Run("add then decrease", func(t *testing.T) {
		c := Decrease(Add(models.Cart{}, 6), 6)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, "0.00", CartTotal(cat, c).StringFixed(2))
	})

	t.Run("unknown dessert contributes nothing", func(t *testing.T) {
		c := lines(4, 1, 99, 5)
		assert.Equal(t, "4.50", CartTotal(cat, c).StringFixed(2))
	})
}

func TestCartTotalRoundsOnce(t *testing.T) {
	cat, err := catalog.New([]models.Dessert{
		{ID: 1, Name: "a", Price: decimal.RequireFromString("0.005")},
		{ID: 2, Name: "b", Price: decimal.RequireFromString("0.005")},
	})
	require.NoError(t, err)

	c := lines(1, 1, 2, 1)
	// rounding each line first would give 0.02
	assert.Equal(t, "0.01", CartTotal(cat, c).StringFixed(2))

	cat, err = catalog.New([]models.Dessert{
		{ID: 1, Name: "a", Price: decimal.RequireFromString("0.004")},
		{ID: 2, Name: "b", Price: decimal.RequireFromString("0.004")},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.01", CartTotal(cat, c).StringFixed(2))
	assert.Equal(t, "0.00", LineTotal(decimal.RequireFromString("0.004"), 1).StringFixed(2))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		currency stripe.Currency
		amount   string
		want     string
	}{
		{stripe.CurrencyUSD, "6.5", "$6.50"},
		{stripe.CurrencyUSD, "0", "$0.00"},
		{stripe.CurrencyUSD, "11.75", "$11.75"},
		{stripe.CurrencyUSD, "-2.5", "-$2.50"},
		{stripe.CurrencyEUR, "7", "€7.00"},
		{stripe.CurrencyBRL, "8", "R$8.00"},
		{stripe.CurrencyCHF, "4.5", "CHF 4.50"},
		{stripe.CurrencyJPY, "8", "JPY 8.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.currency, decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "4.50", FormatAmount(decimal.RequireFromString("4.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "11.75", FormatAmount(decimal.RequireFromString("11.750")))
}

func TestSummarize(t *testing.T) {
	cat := embedded(t)
	c := Add(Add(Add(models.Cart{}, 4), 4), 6)

	s := Summarize(cat, c, stripe.CurrencyUSD)

	assert.False(t, s.Empty)
	assert.Equal(t, uint64(3), s.ItemCount)
	assert.Equal(t, "$11.75", s.FormattedTotal)
	require.Len(t, s.Lines, 2)

	assert.Equal(t, uint64(4), s.Lines[0].DessertID)
	assert.Equal(t, "Classic Tiramisu", s.Lines[0].Name)
	assert.Equal(t, uint64(2), s.Lines[0].Quantity)
	assert.Equal(t, "$4.50", s.Lines[0].FormattedUnitPrice)
	assert.Equal(t, "$9.00", s.Lines[0].FormattedLineTotal)

	assert.Equal(t, uint64(6), s.Lines[1].DessertID)
	assert.Equal(t, "$2.75", s.Lines[1].FormattedLineTotal)

	assert.Equal(t, uint64(2), s.Quantity(4))
	assert.Equal(t, uint64(0), s.Quantity(1))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(embedded(t), models.Cart{}, stripe.CurrencyUSD)

	assert.True(t, s.Empty)
	assert.Empty(t, s.Lines)
	assert.NotNil(t, s.Lines)
	assert.Equal(t, "$0.00", s.FormattedTotal)
	assert.Equal(t, uint64(0), s.ItemCount)
}
