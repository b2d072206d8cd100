package charging

import (
	"encoding/json"

	"github.com/charging/backend/internal/domain/charging"
)

// Report is the JSON report document covering every pricing policy.
type Report struct {
	Results []PolicyResult `json:"results"`
}

// PolicyResult holds one policy's per-tenant results.
type PolicyResult struct {
	Model  string         `json:"model"`
	Result []TenantResult `json:"result"`
}

// TenantResult holds one tenant's monthly consumptions under one policy.
type TenantResult struct {
	Tenant                 string               `json:"tenant"`
	CalculatedConsumptions []MonthlyConsumption `json:"calculated_consumptions"`
}

// MonthlyConsumption is one month's charge with its per-subscription
// breakdown. Consumption is a json.Number so the decimal price survives
// marshalling without precision loss or quoting.
type MonthlyConsumption struct {
	Month       string                  `json:"month"`
	Consumption json.Number             `json:"consumption"`
	Breakdown   []SubscriptionBreakdown `json:"breakdown"`
}

// SubscriptionBreakdown is one subscription's unit tuple for the month,
// rendered in tuple notation, e.g. "(7)" or "(10, 4)".
type SubscriptionBreakdown struct {
	Subscription string `json:"subscription"`
	Consumed     string `json:"consumed"`
}

// BuildReport assembles the report document from the per-policy statements.
// Tenants and subscriptions appear in sorted order.
func BuildReport(statements []*charging.Statement) *Report {
	report := &Report{Results: make([]PolicyResult, 0, len(statements))}
	for _, statement := range statements {
		result := PolicyResult{
			Model:  statement.PolicyName,
			Result: make([]TenantResult, 0, len(statement.TenantCharges)),
		}
		for _, tenant := range statement.Tenants() {
			subscriptions := statement.SubscriptionsOf(tenant)
			consumptions := make([]MonthlyConsumption, 0, len(statement.Months))
			for i, month := range statement.Months {
				breakdown := make([]SubscriptionBreakdown, 0, len(subscriptions))
				for _, subscription := range subscriptions {
					breakdown = append(breakdown, SubscriptionBreakdown{
						Subscription: subscription,
						Consumed:     statement.SubscriptionUnits[subscription][i].String(),
					})
				}
				consumptions = append(consumptions, MonthlyConsumption{
					Month:       month.String(),
					Consumption: json.Number(statement.TenantCharges[tenant][i].String()),
					Breakdown:   breakdown,
				})
			}
			result.Result = append(result.Result, TenantResult{
				Tenant:                 tenant,
				CalculatedConsumptions: consumptions,
			})
		}
		report.Results = append(report.Results, result)
	}
	return report
}
