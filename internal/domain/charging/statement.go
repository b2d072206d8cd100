package charging

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Statement is the complete, read-only output of one charging run: the month
// timeline, per-subscription and per-tenant unit series, and per-tenant
// monthly charges. All series are aligned by index with Months.
type Statement struct {
	PolicyName string
	Months     []Month

	// SubscriptionUnits maps each subscription to its monthly unit tuples.
	SubscriptionUnits map[string][]Units
	// TenantUnits maps each tenant to the component-wise sum of its
	// subscriptions' monthly unit tuples.
	TenantUnits map[string][]Units
	// TenantCharges maps each tenant to its monthly prices.
	TenantCharges map[string][]decimal.Decimal

	owners map[string]string // subscription -> tenant
}

// RunStatement executes the aggregation engine for one ledger and policy.
// An empty ledger fails fast rather than producing an empty statement.
func RunStatement(ledger *Ledger, policy Policy) (*Statement, error) {
	start, stop, err := ledger.TimeSpan()
	if err != nil {
		return nil, err
	}

	months := MonthsBetween(start, stop)
	owners := ledger.SubscriptionTenants()

	statement := &Statement{
		PolicyName:        policy.Name(),
		Months:            months,
		SubscriptionUnits: make(map[string][]Units, len(owners)),
		TenantUnits:       make(map[string][]Units),
		TenantCharges:     make(map[string][]decimal.Decimal),
		owners:            owners,
	}

	subscriptions := make([]string, 0, len(owners))
	for subscription, tenant := range owners {
		subscriptions = append(subscriptions, subscription)
		statement.SubscriptionUnits[subscription] = zeroSeries(policy, len(months))
		if _, ok := statement.TenantUnits[tenant]; !ok {
			statement.TenantUnits[tenant] = zeroSeries(policy, len(months))
		}
	}
	sort.Strings(subscriptions)

	for i, month := range months {
		for _, subscription := range subscriptions {
			events := ledger.EventsForMonth(month.Year, month.Month, subscription)
			units := policy.UnitsFor(events)
			statement.SubscriptionUnits[subscription][i] = units

			tenant := owners[subscription]
			statement.TenantUnits[tenant][i] = statement.TenantUnits[tenant][i].Add(units)
		}
	}

	for tenant, series := range statement.TenantUnits {
		charges := make([]decimal.Decimal, len(series))
		for i, units := range series {
			charges[i] = policy.PriceFor(units)
		}
		statement.TenantCharges[tenant] = charges
	}

	return statement, nil
}

func zeroSeries(policy Policy, months int) []Units {
	series := make([]Units, months)
	for i := range series {
		series[i] = policy.ZeroUnits()
	}
	return series
}

// Tenants returns the distinct tenants of the statement in sorted order.
func (s *Statement) Tenants() []string {
	tenants := make([]string, 0, len(s.TenantUnits))
	for tenant := range s.TenantUnits {
		tenants = append(tenants, tenant)
	}
	sort.Strings(tenants)
	return tenants
}

// SubscriptionsOf returns the sorted subscriptions owned by one tenant.
func (s *Statement) SubscriptionsOf(tenant string) []string {
	var subscriptions []string
	for subscription, owner := range s.owners {
		if owner == tenant {
			subscriptions = append(subscriptions, subscription)
		}
	}
	sort.Strings(subscriptions)
	return subscriptions
}

// TotalCharge returns the sum of a tenant's monthly charges.
func (s *Statement) TotalCharge(tenant string) decimal.Decimal {
	total := decimal.Zero
	for _, charge := range s.TenantCharges[tenant] {
		total = total.Add(charge)
	}
	return total
}
