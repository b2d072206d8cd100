package charging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charging/backend/internal/domain/charging"
)

func sampleStatements(t *testing.T) []*charging.Statement {
	t.Helper()
	service := NewStatementService(zap.NewNop())
	statements, err := service.GenerateStatements(context.Background(), sampleLedger(t))
	require.NoError(t, err)
	return statements
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(sampleStatements(t))
	require.Len(t, report.Results, 3)

	t.Run("policies appear in report order", func(t *testing.T) {
		assert.Equal(t, "per-active-user", report.Results[0].Model)
		assert.Equal(t, "per-read-volume", report.Results[1].Model)
		assert.Equal(t, "per-write-volume", report.Results[2].Model)
	})

	t.Run("tenants sorted with full month coverage", func(t *testing.T) {
		writes := report.Results[2]
		require.Len(t, writes.Result, 2)
		assert.Equal(t, "acme", writes.Result[0].Tenant)
		assert.Equal(t, "globex", writes.Result[1].Tenant)

		acme := writes.Result[0].CalculatedConsumptions
		require.Len(t, acme, 2)
		assert.Equal(t, "01/2024", acme[0].Month)
		assert.Equal(t, "02/2024", acme[1].Month)
	})

	t.Run("charges and breakdowns carried per month", func(t *testing.T) {
		acme := report.Results[2].Result[0].CalculatedConsumptions

		// 10 POST units + 4 PUT units * 1.5 price as 16 units.
		assert.Equal(t, json.Number("26500"), acme[0].Consumption)
		require.Len(t, acme[0].Breakdown, 1)
		assert.Equal(t, "sub-basic", acme[0].Breakdown[0].Subscription)
		assert.Equal(t, "(10, 4)", acme[0].Breakdown[0].Consumed)

		assert.Equal(t, json.Number("0"), acme[1].Consumption)
		assert.Equal(t, "(0, 0)", acme[1].Breakdown[0].Consumed)
	})

	t.Run("marshalled document preserves prices exactly", func(t *testing.T) {
		data, err := json.Marshal(report)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"consumption":26500`)
		assert.Contains(t, string(data), `"consumed":"(10, 4)"`)

		var decoded Report
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		require.NoError(t, decoder.Decode(&decoded))
		assert.Equal(t, report, &decoded)
	})
}

func TestRenderText(t *testing.T) {
	text := RenderText(sampleStatements(t))

	t.Run("one banner per policy", func(t *testing.T) {
		assert.Contains(t, text, "*** per-active-user ***")
		assert.Contains(t, text, "*** per-read-volume ***")
		assert.Contains(t, text, "*** per-write-volume ***")
	})

	t.Run("tenant tables with rows and totals", func(t *testing.T) {
		assert.Contains(t, text, "Tenant: acme")
		assert.Contains(t, text, "Tenant: globex")
		assert.Contains(t, text, "Month   Calculated consumption  Breakdown per subscription (units)")

		row := fmt.Sprintf("01/2024   %20s  %-17s\n", "26500", "(10, 4)")
		assert.Contains(t, text, row)
		assert.Contains(t, text, fmt.Sprintf("Total:    %20s", "26500"))
	})

	t.Run("tenant without usage still gets zero rows", func(t *testing.T) {
		// globex has no write events, so its per-write table is all zeros.
		assert.Contains(t, text, fmt.Sprintf("Total:    %20s", "0"))
	})

	t.Run("section order follows policy order", func(t *testing.T) {
		users := strings.Index(text, "*** per-active-user ***")
		reads := strings.Index(text, "*** per-read-volume ***")
		writes := strings.Index(text, "*** per-write-volume ***")
		assert.True(t, users < reads && reads < writes)
	})
}
