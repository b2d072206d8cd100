package charging

import (
	"fmt"
	"strings"

	"github.com/charging/backend/internal/domain/charging"
)

// RenderText produces the plain-text report: one banner-separated section
// per policy, and inside each a table per tenant with one row per month,
// the charge in the price column and the unit tuples per subscription.
func RenderText(statements []*charging.Statement) string {
	var b strings.Builder
	for _, statement := range statements {
		banner := fmt.Sprintf("*** %s ***", statement.PolicyName)
		b.WriteString("\n" + banner + "\n")
		b.WriteString(strings.Repeat("*", len(banner)) + "\n\n")
		renderStatement(&b, statement)
	}
	return b.String()
}

func renderStatement(b *strings.Builder, statement *charging.Statement) {
	for _, tenant := range statement.Tenants() {
		subscriptions := statement.SubscriptionsOf(tenant)

		fmt.Fprintf(b, "Tenant: %s\n", tenant)
		b.WriteString("=======================\n\n")
		b.WriteString("Month   Calculated consumption  Breakdown per subscription (units)\n")
		b.WriteString("        ($)                     ")
		for _, subscription := range subscriptions {
			fmt.Fprintf(b, "%-17s", subscription)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", 30+17*len(subscriptions)) + "\n")

		for i, month := range statement.Months {
			fmt.Fprintf(b, "%s   ", month)
			fmt.Fprintf(b, "%20s", statement.TenantCharges[tenant][i])
			b.WriteString("  ")
			for _, subscription := range subscriptions {
				fmt.Fprintf(b, "%-17s", statement.SubscriptionUnits[subscription][i])
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(b, "Total:    %20s", statement.TotalCharge(tenant))
		b.WriteString("\n\n")
	}
}
