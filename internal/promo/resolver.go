package promo

import "github.com/shopspring/decimal"

// State is the resolver's binding state.
type State string

const (
	StateNone    State = "NONE"
	StateApplied State = "APPLIED"
)

// ApplyKind classifies an Apply attempt.
type ApplyKind string

const (
	ApplyKindApplied     ApplyKind = "applied"
	ApplyKindInvalidCode ApplyKind = "invalid_code"
)

// ApplyResult reports the outcome of Apply. An invalid code is not an error.
type ApplyResult struct {
	Success bool      `json:"success"`
	Kind    ApplyKind `json:"kind"`
	Code    string    `json:"code"`
}

// Resolver binds at most one promo code. The discount is always derived from
// the bound rule and the subtotal passed in, never stored.
type Resolver struct {
	table   *Table
	applied *Rule
}

// NewResolver returns a resolver in StateNone.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Apply binds code when the table knows it. Otherwise any bound code is
// cleared and the result is ApplyKindInvalidCode.
func (r *Resolver) Apply(code string) ApplyResult {
	normalized := NormalizeCode(code)
	rule, ok := r.table.Lookup(normalized)
	if !ok {
		r.applied = nil
		return ApplyResult{Kind: ApplyKindInvalidCode, Code: normalized}
	}
	r.applied = &rule
	return ApplyResult{Success: true, Kind: ApplyKindApplied, Code: rule.Code}
}

// Restore rebinds a previously applied code without reporting an outcome.
// It returns false, leaving the resolver in StateNone, if the code is gone.
func (r *Resolver) Restore(code string) bool {
	if NormalizeCode(code) == "" {
		r.applied = nil
		return false
	}
	return r.Apply(code).Success
}

// Clear returns the resolver to StateNone.
func (r *Resolver) Clear() {
	r.applied = nil
}

// State reports whether a code is bound.
func (r *Resolver) State() State {
	if r.applied == nil {
		return StateNone
	}
	return StateApplied
}

// AppliedCode is the bound code, or "" in StateNone.
func (r *Resolver) AppliedCode() string {
	if r.applied == nil {
		return ""
	}
	return r.applied.Code
}

// AppliedRule returns the bound rule.
func (r *Resolver) AppliedRule() (Rule, bool) {
	if r.applied == nil {
		return Rule{}, false
	}
	return *r.applied, true
}

// Discount derives the discount for subtotal from the bound rule.
func (r *Resolver) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if r.applied == nil {
		return decimal.Zero
	}
	return r.applied.Discount(subtotal)
}
