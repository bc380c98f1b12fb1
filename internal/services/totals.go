package services

import (
	"github.com/shopspring/decimal"

	"orders_backend/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// OrderTotals carries the order-level financial rollups computed from a line
// item set.
type OrderTotals struct {
	TotalSale   decimal.Decimal // Σ line_sale, after order-level discount, plus extra costs
	TotalCost   decimal.Decimal // Σ line_cost
	GrossProfit decimal.Decimal
}

// ComputeLineAmounts returns the derived sale and cost amounts for one line:
// line_sale = quantity × price × (1 − discount_percent/100),
// line_cost = quantity × cost.
func ComputeLineAmounts(quantity int64, price, cost, discountPercent decimal.Decimal) (lineSale, lineCost decimal.Decimal) {
	qty := decimal.NewFromInt(quantity)
	discountFactor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	lineSale = qty.Mul(price).Mul(discountFactor)
	lineCost = qty.Mul(cost)
	return lineSale, lineCost
}

// CalculateOrderTotals fills LineSale/LineCost on every item and returns the
// order rollups:
//
//	totalSale  = Σ line_sale × (1 − discount_percent/100) + extra_costs
//	totalCost  = Σ line_cost
//	grossProfit = totalSale − totalCost − extra_costs
//
// Business rule, preserved deliberately: extra_costs is added to the sale side
// and subtracted again in profit, so gross profit is invariant under
// extra_costs, and the order-level discount never applies to extra_costs.
func CalculateOrderTotals(items []*models.OrderItem, discountPercent, extraCosts decimal.Decimal) OrderTotals {
	totalSale := decimal.Zero
	totalCost := decimal.Zero

	for _, item := range items {
		item.LineSale, item.LineCost = ComputeLineAmounts(item.Quantity, item.Price, item.Cost, item.DiscountPercent)
		totalSale = totalSale.Add(item.LineSale)
		totalCost = totalCost.Add(item.LineCost)
	}

	discountFactor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	totalSaleAfterDisc := totalSale.Mul(discountFactor).Add(extraCosts)
	grossProfit := totalSaleAfterDisc.Sub(totalCost).Sub(extraCosts)

	return OrderTotals{
		TotalSale:   totalSaleAfterDisc,
		TotalCost:   totalCost,
		GrossProfit: grossProfit,
	}
}
