package finance

// Position is the cost-basis view of an open stock holding: quantity,
// total invested amount, and the weighted-average buy price.
type Position struct {
	Quantity            float64
	TotalInvestedAmount float64
	BuyPrice            float64
}

// ApplyBuy folds a buy lot into a position. For a fresh position the
// average buy price is the lot price; otherwise the average is
// re-weighted across the old quantity and the new lot.
func ApplyBuy(p Position, quantity, price float64) Position {
	newQuantity := p.Quantity + quantity
	newInvested := p.TotalInvestedAmount + price*quantity

	avg := price
	if p.Quantity > 0 {
		avg = (p.Quantity*p.BuyPrice + quantity*price) / newQuantity
	}

	return Position{
		Quantity:            newQuantity,
		TotalInvestedAmount: newInvested,
		BuyPrice:            avg,
	}
}

// SellResult describes the outcome of selling against a position.
type SellResult struct {
	Position   Position
	ProfitLoss float64 // realized against the current average cost
	SoldCost   float64 // cost basis released by the sale
	Closed     bool    // quantity reached exactly zero
}

// ApplySell reduces a position by a sold lot. The realized profit or loss
// is charged at the position's current weighted-average cost, not at
// per-lot FIFO cost; the approximation is a documented business rule.
// Callers must have verified quantity <= p.Quantity.
func ApplySell(p Position, quantity, price float64) SellResult {
	profitLoss := (price - p.BuyPrice) * quantity
	soldCost := p.BuyPrice * quantity

	next := Position{
		Quantity:            p.Quantity - quantity,
		TotalInvestedAmount: p.TotalInvestedAmount - soldCost,
		BuyPrice:            p.BuyPrice,
	}

	return SellResult{
		Position:   next,
		ProfitLoss: profitLoss,
		SoldCost:   soldCost,
		Closed:     next.Quantity == 0,
	}
}

// MarkToMarket revalues a held quantity at the current market price,
// returning the position's market value and unrealized P&L.
func MarkToMarket(quantity, avgBuyPrice, currentPrice float64) (totalReturn, unrealized float64) {
	totalReturn = quantity * currentPrice
	unrealized = totalReturn - avgBuyPrice*quantity
	return totalReturn, unrealized
}
