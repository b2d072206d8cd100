package charging

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Units is a policy-specific tuple of charging units. Arity is fixed by the
// policy that produced the tuple: per-active-user and per-read-volume tuples
// have one component, per-write-volume tuples carry POST and PUT volume as
// separate components.
type Units []decimal.Decimal

// ZeroUnits returns a tuple of the given arity with every component zero.
func ZeroUnits(arity int) Units {
	units := make(Units, arity)
	for i := range units {
		units[i] = decimal.NewFromInt(0)
	}
	return units
}

// Add returns the component-wise sum of two tuples. Both tuples must come
// from the same policy; mismatched arity is a programming error.
func (u Units) Add(v Units) Units {
	if len(u) != len(v) {
		panic("charging: cannot add unit tuples of different arity")
	}
	sum := make(Units, len(u))
	for i := range u {
		sum[i] = u[i].Add(v[i])
	}
	return sum
}

// String renders the tuple as "(a)" or "(a, b)" for report breakdowns.
func (u Units) String() string {
	parts := make([]string, len(u))
	for i, component := range u {
		parts[i] = component.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
