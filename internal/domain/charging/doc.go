// Package charging implements the metering-and-pricing core for turning a raw
// ledger of API usage events into monthly billing statements per tenant.
//
// The pipeline is: validate and index the event ledger (Ledger), enumerate the
// calendar months the ledger spans (MonthsBetween), derive policy-specific
// charging units per subscription and month (Policy), roll subscription units
// up to tenant level, and convert tenant-month units into a price through a
// shared tiered allocator (AllocatePrice).
//
// Key types:
//   - Ledger: immutable, validated event table with month/subscription lookup
//   - Policy: one pricing model (per-active-user, per-read-volume, per-write-volume)
//   - Statement: the full per-subscription and per-tenant output of one run
//
// Everything in this package is deterministic for a fixed ledger and policy:
// no wall-clock reads, no dependence on input record order, sorted enumeration
// wherever output ordering is visible.
package charging
