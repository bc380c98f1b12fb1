package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders_backend/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLineAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		quantity        int64
		price           string
		cost            string
		discountPercent string
		wantSale        string
		wantCost        string
	}{
		{name: "no discount", quantity: 10, price: "5", cost: "2", discountPercent: "0", wantSale: "50", wantCost: "20"},
		{name: "line discount", quantity: 4, price: "25", cost: "10", discountPercent: "50", wantSale: "50", wantCost: "40"},
		{name: "zero quantity", quantity: 0, price: "9.99", cost: "3.50", discountPercent: "10", wantSale: "0", wantCost: "0"},
		{name: "fractional price", quantity: 3, price: "1.5", cost: "0.5", discountPercent: "0", wantSale: "4.5", wantCost: "1.5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sale, cost := ComputeLineAmounts(tt.quantity, dec(tt.price), dec(tt.cost), dec(tt.discountPercent))
			assert.True(t, sale.Equal(dec(tt.wantSale)), "line_sale = %s, want %s", sale, tt.wantSale)
			assert.True(t, cost.Equal(dec(tt.wantCost)), "line_cost = %s, want %s", cost, tt.wantCost)
		})
	}
}

func TestCalculateOrderTotals_FillsLineAmounts(t *testing.T) {
	t.Parallel()

	items := []*models.OrderItem{
		{Quantity: 10, Price: dec("10"), Cost: dec("4")},
		{Quantity: 2, Price: dec("50"), Cost: dec("20"), DiscountPercent: dec("10")},
	}

	totals := CalculateOrderTotals(items, decimal.Zero, decimal.Zero)

	require.True(t, items[0].LineSale.Equal(dec("100")))
	require.True(t, items[0].LineCost.Equal(dec("40")))
	require.True(t, items[1].LineSale.Equal(dec("90")))
	require.True(t, items[1].LineCost.Equal(dec("40")))

	assert.True(t, totals.TotalSale.Equal(dec("190")), "total_sale = %s", totals.TotalSale)
	assert.True(t, totals.TotalCost.Equal(dec("80")), "total_cost = %s", totals.TotalCost)
	assert.True(t, totals.GrossProfit.Equal(dec("110")), "gross_profit = %s", totals.GrossProfit)
}

func TestCalculateOrderTotals_GrossProfitInvariantUnderExtraCosts(t *testing.T) {
	t.Parallel()

	// totalSale=100, totalCost=40: extra_costs is added to the sale side and
	// subtracted again in profit, so gross profit must stay 60 regardless.
	newItems := func() []*models.OrderItem {
		return []*models.OrderItem{{Quantity: 10, Price: dec("10"), Cost: dec("4")}}
	}

	noExtra := CalculateOrderTotals(newItems(), decimal.Zero, decimal.Zero)
	assert.True(t, noExtra.TotalSale.Equal(dec("100")))
	assert.True(t, noExtra.GrossProfit.Equal(dec("60")))

	withExtra := CalculateOrderTotals(newItems(), decimal.Zero, dec("50"))
	assert.True(t, withExtra.TotalSale.Equal(dec("150")), "extra costs inflate the sale side")
	assert.True(t, withExtra.GrossProfit.Equal(dec("60")), "gross profit must not move with extra costs")
}

func TestCalculateOrderTotals_OrderDiscountExcludesExtraCosts(t *testing.T) {
	t.Parallel()

	items := []*models.OrderItem{{Quantity: 10, Price: dec("10"), Cost: dec("4")}}

	totals := CalculateOrderTotals(items, dec("10"), decimal.Zero)
	assert.True(t, totals.TotalSale.Equal(dec("90")), "total_sale = %s", totals.TotalSale)
	assert.True(t, totals.GrossProfit.Equal(dec("50")), "gross_profit = %s", totals.GrossProfit)

	// The discount applies to the item total only; extra costs pass through whole.
	items2 := []*models.OrderItem{{Quantity: 10, Price: dec("10"), Cost: dec("4")}}
	withExtra := CalculateOrderTotals(items2, dec("10"), dec("20"))
	assert.True(t, withExtra.TotalSale.Equal(dec("110")), "total_sale = %s", withExtra.TotalSale)
	assert.True(t, withExtra.GrossProfit.Equal(dec("50")), "gross_profit = %s", withExtra.GrossProfit)
}

func TestCalculateOrderTotals_EmptyItems(t *testing.T) {
	t.Parallel()

	totals := CalculateOrderTotals(nil, dec("25"), dec("15"))
	assert.True(t, totals.TotalSale.Equal(dec("15")))
	assert.True(t, totals.TotalCost.Equal(decimal.Zero))
	assert.True(t, totals.GrossProfit.Equal(decimal.Zero))
}
