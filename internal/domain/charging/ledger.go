package charging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charging/backend/internal/domain/shared"
)

// TimestampLayout is the wire format of event timestamps (minute precision).
const TimestampLayout = "02.01.2006 15:04"

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldTimestamp
	fieldInteger
)

// ledgerField is one entry of the record schema consumed by the loader.
type ledgerField struct {
	name string
	kind fieldKind
}

// ledgerSchema is the exact field set of a ledger record. Every record must
// carry all of these fields and nothing else.
var ledgerSchema = []ledgerField{
	{"user", fieldString},
	{"tenant", fieldString},
	{"method", fieldString},
	{"url", fieldString},
	{"subscription", fieldString},
	{"timestamp", fieldTimestamp},
	{"x-api-key", fieldString},
	{"payloadSize", fieldInteger},
}

// Ledger is the validated, immutable collection of usage events for one
// billing run, together with the subscription ownership map derived from it.
// A Ledger is safe for concurrent reads; it is never mutated after load.
type Ledger struct {
	events []UsageEvent
	owners map[string]string // subscription -> tenant
}

// ParseLedger validates a serialized event collection and builds a Ledger.
// The input must be a JSON array of records carrying exactly the schema
// fields. Loading is all-or-nothing: any malformed record aborts the load
// with a MALFORMED_LEDGER error naming the record, and a subscription seen
// under two tenants aborts with INCONSISTENT_TENANT.
func ParseLedger(data []byte) (*Ledger, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, shared.NewMalformedLedgerError(-1, "input is not a JSON array of records")
	}
	// Decode leaves raw nil for a JSON null document, and stops at the end
	// of the first value. Both an explicit null and trailing data after the
	// array fail the load.
	if raw == nil {
		return nil, shared.NewMalformedLedgerError(-1, "input is not a JSON array of records")
	}
	if dec.More() {
		return nil, shared.NewMalformedLedgerError(-1, "unexpected data after the record array")
	}

	ledger := &Ledger{
		events: make([]UsageEvent, 0, len(raw)),
		owners: make(map[string]string),
	}

	for i, record := range raw {
		event, err := parseRecord(i, record)
		if err != nil {
			return nil, err
		}

		if owner, seen := ledger.owners[event.Subscription]; seen && owner != event.Tenant {
			return nil, shared.NewInconsistentTenantError(event.Subscription, owner, event.Tenant)
		}
		ledger.owners[event.Subscription] = event.Tenant
		ledger.events = append(ledger.events, event)
	}

	return ledger, nil
}

// parseRecord validates one raw record against the schema and converts it
// into a typed event.
func parseRecord(index int, record map[string]any) (UsageEvent, error) {
	if len(record) != len(ledgerSchema) {
		return UsageEvent{}, shared.NewMalformedLedgerError(index, describeFieldMismatch(record))
	}

	var event UsageEvent
	for _, field := range ledgerSchema {
		value, ok := record[field.name]
		if !ok {
			return UsageEvent{}, shared.NewMalformedLedgerError(index, fmt.Sprintf("missing field %q", field.name))
		}

		switch field.kind {
		case fieldString:
			s, ok := value.(string)
			if !ok {
				return UsageEvent{}, shared.NewMalformedLedgerError(index, fmt.Sprintf("field %q must be a string", field.name))
			}
			switch field.name {
			case "user":
				event.User = s
			case "tenant":
				event.Tenant = s
			case "method":
				event.Method = Method(s)
			case "url":
				event.URL = s
			case "subscription":
				event.Subscription = s
			case "x-api-key":
				event.APIKey = s
			}

		case fieldTimestamp:
			s, ok := value.(string)
			if !ok {
				return UsageEvent{}, shared.NewMalformedLedgerError(index, fmt.Sprintf("field %q must be a string", field.name))
			}
			ts, err := time.Parse(TimestampLayout, s)
			if err != nil {
				return UsageEvent{}, shared.NewMalformedLedgerError(index,
					fmt.Sprintf("timestamp %q does not match layout DD.MM.YYYY HH:MM", s))
			}
			event.Timestamp = ts

		case fieldInteger:
			size, err := toInteger(value)
			if err != nil {
				return UsageEvent{}, shared.NewMalformedLedgerError(index, fmt.Sprintf("field %q must be an integer", field.name))
			}
			if size < 0 {
				return UsageEvent{}, shared.NewMalformedLedgerError(index, fmt.Sprintf("field %q must not be negative", field.name))
			}
			event.PayloadSize = size
		}
	}

	return event, nil
}

// toInteger accepts JSON numbers and numeric strings, matching the loader
// contract of "integer-convertible" payload sizes.
func toInteger(value any) (int64, error) {
	switch v := value.(type) {
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("not an integer: %v", value)
	}
}

// describeFieldMismatch names the missing and unexpected fields of a record
// so the load error points at what to fix.
func describeFieldMismatch(record map[string]any) string {
	known := make(map[string]bool, len(ledgerSchema))
	var missing []string
	for _, field := range ledgerSchema {
		known[field.name] = true
		if _, ok := record[field.name]; !ok {
			missing = append(missing, field.name)
		}
	}

	var extra []string
	for name := range record {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	switch {
	case len(missing) > 0 && len(extra) > 0:
		return fmt.Sprintf("missing fields %v, unexpected fields %v", missing, extra)
	case len(missing) > 0:
		return fmt.Sprintf("missing fields %v", missing)
	default:
		return fmt.Sprintf("unexpected fields %v", extra)
	}
}

// Len returns the number of events in the ledger.
func (l *Ledger) Len() int {
	return len(l.events)
}

// EventsForMonth returns the events of one subscription whose timestamp falls
// in the given calendar month. Order follows the ledger, which callers must
// not rely on.
func (l *Ledger) EventsForMonth(year int, month time.Month, subscription string) []UsageEvent {
	var matched []UsageEvent
	for _, e := range l.events {
		if e.Subscription == subscription && e.Timestamp.Year() == year && e.Timestamp.Month() == month {
			matched = append(matched, e)
		}
	}
	return matched
}

// TimeSpan returns the earliest and latest event timestamps. It fails with
// EMPTY_LEDGER when the ledger holds no events, since a span is undefined.
func (l *Ledger) TimeSpan() (start, stop time.Time, err error) {
	if len(l.events) == 0 {
		return time.Time{}, time.Time{}, shared.ErrEmptyLedger
	}

	start, stop = l.events[0].Timestamp, l.events[0].Timestamp
	for _, e := range l.events[1:] {
		if e.Timestamp.Before(start) {
			start = e.Timestamp
		}
		if e.Timestamp.After(stop) {
			stop = e.Timestamp
		}
	}
	return start, stop, nil
}

// SubscriptionTenants returns the subscription-to-tenant ownership map. The
// returned map is a copy; mutating it does not affect the ledger.
func (l *Ledger) SubscriptionTenants() map[string]string {
	owners := make(map[string]string, len(l.owners))
	for subscription, tenant := range l.owners {
		owners[subscription] = tenant
	}
	return owners
}
