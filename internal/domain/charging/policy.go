package charging

import "github.com/shopspring/decimal"

// Policy defines one pricing model: how a month of events becomes a charging
// unit tuple, what the no-usage tuple looks like, and how a tuple becomes a
// price. Implementations are pure and stateless; the same inputs always give
// the same outputs.
type Policy interface {
	// Name identifies the policy in reports.
	Name() string
	// ZeroUnits returns the tuple representing no usage, used to seed months
	// without matching events.
	ZeroUnits() Units
	// UnitsFor derives the charging unit tuple from one month's events.
	UnitsFor(events []UsageEvent) Units
	// PriceFor converts a unit tuple into a price via the tiered allocator.
	PriceFor(units Units) decimal.Decimal
}

// AllPolicies returns the three standard pricing models in report order.
func AllPolicies() []Policy {
	return []Policy{
		NewPerActiveUserPolicy(),
		NewPerReadVolumePolicy(),
		NewPerWriteVolumePolicy(),
	}
}

// PerActiveUserPolicy charges by the number of distinct users active in a
// month, regardless of what they did.
type PerActiveUserPolicy struct {
	tiers []Tier
}

// NewPerActiveUserPolicy creates the per-active-user policy with the
// standard price curve.
func NewPerActiveUserPolicy() *PerActiveUserPolicy {
	return &PerActiveUserPolicy{tiers: StandardTiers()}
}

func (p *PerActiveUserPolicy) Name() string { return "per-active-user" }

func (p *PerActiveUserPolicy) ZeroUnits() Units { return ZeroUnits(1) }

func (p *PerActiveUserPolicy) UnitsFor(events []UsageEvent) Units {
	users := make(map[string]struct{}, len(events))
	for _, e := range events {
		users[e.User] = struct{}{}
	}
	return Units{decimal.NewFromInt(int64(len(users)))}
}

func (p *PerActiveUserPolicy) PriceFor(units Units) decimal.Decimal {
	return AllocatePrice(units[0], p.tiers)
}

// PerReadVolumePolicy charges by the payload volume retrieved with GET
// requests. Writes are free under this model.
type PerReadVolumePolicy struct {
	tiers []Tier
}

// NewPerReadVolumePolicy creates the per-read-volume policy with the
// standard price curve.
func NewPerReadVolumePolicy() *PerReadVolumePolicy {
	return &PerReadVolumePolicy{tiers: StandardTiers()}
}

func (p *PerReadVolumePolicy) Name() string { return "per-read-volume" }

func (p *PerReadVolumePolicy) ZeroUnits() Units { return ZeroUnits(1) }

func (p *PerReadVolumePolicy) UnitsFor(events []UsageEvent) Units {
	var total int64
	for _, e := range events {
		if e.Method == MethodGet {
			total += e.PayloadSize
		}
	}
	return Units{decimal.NewFromInt(total)}
}

func (p *PerReadVolumePolicy) PriceFor(units Units) decimal.Decimal {
	return AllocatePrice(units[0], p.tiers)
}

// putWeight prices PUT volume at 1.5x POST volume: modifying stored data
// costs more than creating it.
var putWeight = decimal.New(15, -1)

// PerWriteVolumePolicy charges by stored payload volume, keeping POST and
// PUT volume as separate tuple components. Reads are free under this model.
type PerWriteVolumePolicy struct {
	tiers []Tier
}

// NewPerWriteVolumePolicy creates the per-write-volume policy with the
// standard price curve.
func NewPerWriteVolumePolicy() *PerWriteVolumePolicy {
	return &PerWriteVolumePolicy{tiers: StandardTiers()}
}

func (p *PerWriteVolumePolicy) Name() string { return "per-write-volume" }

func (p *PerWriteVolumePolicy) ZeroUnits() Units { return ZeroUnits(2) }

func (p *PerWriteVolumePolicy) UnitsFor(events []UsageEvent) Units {
	var post, put int64
	for _, e := range events {
		switch e.Method {
		case MethodPost:
			post += e.PayloadSize
		case MethodPut:
			put += e.PayloadSize
		}
	}
	return Units{decimal.NewFromInt(post), decimal.NewFromInt(put)}
}

func (p *PerWriteVolumePolicy) PriceFor(units Units) decimal.Decimal {
	combined := units[0].Add(units[1].Mul(putWeight))
	return AllocatePrice(combined, p.tiers)
}
