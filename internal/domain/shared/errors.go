package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for ledger validation and charging failures
const (
	CodeMalformedLedger    = "MALFORMED_LEDGER"
	CodeEmptyLedger        = "EMPTY_LEDGER"
	CodeInconsistentTenant = "INCONSISTENT_TENANT"
	CodeInvalidInput       = "INVALID_INPUT"
)

// Common domain errors
var (
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")

	// ErrEmptyLedger is returned when a time span is requested from a ledger
	// with no events. Callers must check before deriving billing months.
	ErrEmptyLedger = NewDomainError(CodeEmptyLedger, "Ledger contains no usage events")
)

// NewMalformedLedgerError builds a MALFORMED_LEDGER error pointing at the
// record that failed validation. A negative index means the failure concerns
// the document as a whole rather than a single record.
func NewMalformedLedgerError(record int, reason string) *DomainError {
	if record < 0 {
		return NewDomainError(CodeMalformedLedger, "Malformed ledger: "+reason)
	}
	return NewDomainError(CodeMalformedLedger, fmt.Sprintf("Malformed ledger: record %d: %s", record, reason))
}

// NewInconsistentTenantError reports a subscription observed under two
// different tenants. Subscription ownership is fixed for the life of a ledger.
func NewInconsistentTenantError(subscription, tenantA, tenantB string) *DomainError {
	return NewDomainError(CodeInconsistentTenant,
		fmt.Sprintf("Subscription %q is mapped to both tenant %q and tenant %q", subscription, tenantA, tenantB))
}
