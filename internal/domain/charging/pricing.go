package charging

import "github.com/shopspring/decimal"

// Tier prices a capacity-bounded band of charging units. Capacity is the
// additional quantity chargeable at this tier, not a cumulative ceiling.
type Tier struct {
	Capacity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// StandardTiers returns the shared price curve applied by all three metering
// policies: 0-5 units at 2000, 6-20 at 1500, 21-50 at 1000, 51-100 at 500,
// then one unit at 10000.
func StandardTiers() []Tier {
	return []Tier{
		{Capacity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(2000)},
		{Capacity: decimal.NewFromInt(15), UnitPrice: decimal.NewFromInt(1500)},
		{Capacity: decimal.NewFromInt(30), UnitPrice: decimal.NewFromInt(1000)},
		{Capacity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(500)},
		{Capacity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
	}
}

// AllocatePrice converts a quantity of charging units into a price by walking
// the tier table in order, consuming min(capacity, remaining) units per tier
// at that tier's unit price, and returning as soon as nothing remains.
//
// When the table is exhausted with quantity still remaining, the price
// accumulated so far is returned: units beyond the total tier capacity carry
// no marginal charge. Whether that cap is intended is an open product
// question; the behavior is kept as observed.
func AllocatePrice(quantity decimal.Decimal, tiers []Tier) decimal.Decimal {
	price := decimal.Zero
	remaining := quantity
	if remaining.Sign() <= 0 {
		return price
	}

	for _, tier := range tiers {
		consumed := decimal.Min(tier.Capacity, remaining)
		price = price.Add(consumed.Mul(tier.UnitPrice))
		remaining = remaining.Sub(consumed)
		if remaining.Sign() <= 0 {
			return price
		}
	}
	return price
}
