package finance

import "testing"

func TestApplyBuy(t *testing.T) {
	t.Run("first_buy", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 10, 100)

		if pos.Quantity != 10 {
			t.Errorf("expected quantity 10, got %v", pos.Quantity)
		}
		if pos.TotalInvestedAmount != 1000 {
			t.Errorf("expected invested 1000, got %v", pos.TotalInvestedAmount)
		}
		if pos.BuyPrice != 100 {
			t.Errorf("expected buy price 100, got %v", pos.BuyPrice)
		}
	})

	t.Run("weighted_average", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 10, 100)
		pos = ApplyBuy(pos, 10, 200)

		if pos.Quantity != 20 {
			t.Errorf("expected quantity 20, got %v", pos.Quantity)
		}
		if pos.BuyPrice != 150 {
			t.Errorf("expected average buy price 150, got %v", pos.BuyPrice)
		}
		if pos.TotalInvestedAmount != 3000 {
			t.Errorf("expected invested 3000, got %v", pos.TotalInvestedAmount)
		}
	})

	t.Run("uneven_lots", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 3, 120)
		pos = ApplyBuy(pos, 7, 80)

		// (3*120 + 7*80) / 10 = 92
		if pos.BuyPrice != 92 {
			t.Errorf("expected average buy price 92, got %v", pos.BuyPrice)
		}
	})
}

func TestApplySell(t *testing.T) {
	t.Run("partial_sell", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 10, 100)
		pos = ApplyBuy(pos, 10, 200)

		res := ApplySell(pos, 15, 180)

		// (180 - 150) * 15 = 450
		if res.ProfitLoss != 450 {
			t.Errorf("expected realized P&L 450, got %v", res.ProfitLoss)
		}
		if res.Position.Quantity != 5 {
			t.Errorf("expected quantity 5, got %v", res.Position.Quantity)
		}
		// 5 * 150 = 750
		if res.Position.TotalInvestedAmount != 750 {
			t.Errorf("expected invested 750, got %v", res.Position.TotalInvestedAmount)
		}
		if res.Position.BuyPrice != 150 {
			t.Errorf("expected average unchanged at 150, got %v", res.Position.BuyPrice)
		}
		if res.Closed {
			t.Error("expected position to remain open")
		}
	})

	t.Run("average_cost_not_fifo", func(t *testing.T) {
		// Realized P&L is charged at the running average cost, not at the
		// oldest lot's cost. Selling 10 after buying 10@100 and 10@200
		// realizes (180-150)*10, not (180-100)*10.
		pos := ApplyBuy(Position{}, 10, 100)
		pos = ApplyBuy(pos, 10, 200)

		res := ApplySell(pos, 10, 180)
		if res.ProfitLoss != 300 {
			t.Errorf("expected average-cost P&L 300, got %v", res.ProfitLoss)
		}
	})

	t.Run("closing_sell", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 10, 100)
		res := ApplySell(pos, 10, 90)

		if !res.Closed {
			t.Error("expected position closed at exactly zero quantity")
		}
		if res.Position.Quantity != 0 {
			t.Errorf("expected quantity 0, got %v", res.Position.Quantity)
		}
		if res.ProfitLoss != -100 {
			t.Errorf("expected realized loss -100, got %v", res.ProfitLoss)
		}
	})

	t.Run("realized_accumulates_across_sells", func(t *testing.T) {
		pos := ApplyBuy(Position{}, 20, 50)

		first := ApplySell(pos, 5, 60)
		second := ApplySell(first.Position, 5, 40)

		total := first.ProfitLoss + second.ProfitLoss
		if total != 0 {
			t.Errorf("expected cumulative P&L 0, got %v", total)
		}
		if second.Position.Quantity != 10 {
			t.Errorf("expected quantity 10, got %v", second.Position.Quantity)
		}
	})
}

func TestMarkToMarket(t *testing.T) {
	t.Run("gain", func(t *testing.T) {
		total, unrealized := MarkToMarket(5, 150, 180)

		if total != 900 {
			t.Errorf("expected market value 900, got %v", total)
		}
		if unrealized != 150 {
			t.Errorf("expected unrealized 150, got %v", unrealized)
		}
	})

	t.Run("loss", func(t *testing.T) {
		_, unrealized := MarkToMarket(10, 100, 80)

		if unrealized != -200 {
			t.Errorf("expected unrealized -200, got %v", unrealized)
		}
	})
}
