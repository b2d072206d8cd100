package charging

import "time"

// Method is the HTTP verb recorded on a usage event.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
	MethodPut  Method = "PUT"
)

// UsageEvent is one row of the raw usage ledger. Events are immutable once
// loaded. Pricing reads User, Method, Subscription, Timestamp and PayloadSize;
// URL and APIKey are validated and carried but never priced.
type UsageEvent struct {
	User         string
	Tenant       string
	Method       Method
	URL          string
	Subscription string
	Timestamp    time.Time
	APIKey       string
	PayloadSize  int64
}
