package cart

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Outcome reports how a mutation was handled. None of them is a failure.
type Outcome string

const (
	// OutcomeApplied means the request was applied as given.
	OutcomeApplied Outcome = "applied"
	// OutcomeCorrected means the quantity was invalid or below the floor and
	// was corrected before being applied.
	OutcomeCorrected Outcome = "corrected"
	// OutcomeNoop means the line id was unknown and nothing changed.
	OutcomeNoop Outcome = "noop"
)

// MutationResult carries the line collection after a mutation.
type MutationResult struct {
	Lines   []Line  `json:"lines"`
	Outcome Outcome `json:"outcome"`
}

// Store is an ordered cart owned by one session. It is not safe for
// concurrent use.
type Store struct {
	lines       []Line
	deliveryFee decimal.Decimal
}

// NewStore builds a store charging deliveryFee whenever it holds lines.
func NewStore(deliveryFee decimal.Decimal, lines ...Line) (*Store, error) {
	if deliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}
	s := &Store{deliveryFee: deliveryFee, lines: make([]Line, 0, len(lines))}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[l.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate cart line").WithDetails(map[string]string{"id": l.ID})
		}
		seen[l.ID] = struct{}{}
		s.lines = append(s.lines, l)
	}
	return s, nil
}

// Lines returns a copy of the current lines in cart order.
func (s *Store) Lines() []Line {
	return append([]Line{}, s.lines...)
}

// Line looks up a single line by id.
func (s *Store) Line(lineID string) (Line, bool) {
	if i := s.indexOf(lineID); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

// AddLine appends line, or adds its quantity to an existing line with the
// same id. A quantity below 1 counts as 1; a merged total saturates at
// math.MaxInt.
func (s *Store) AddLine(line Line) (MutationResult, error) {
	qty, corrected := clampQuantity(line.Quantity)
	line.Quantity = qty
	if err := line.Validate(); err != nil {
		return MutationResult{}, err
	}

	outcome := OutcomeApplied
	if corrected {
		outcome = OutcomeCorrected
	}
	if i := s.indexOf(line.ID); i >= 0 {
		sum, saturated := addQuantity(s.lines[i].Quantity, line.Quantity)
		s.lines[i].Quantity = sum
		if saturated {
			outcome = OutcomeCorrected
		}
		return s.result(outcome), nil
	}
	s.lines = append(s.lines, line)
	return s.result(outcome), nil
}

// SetQuantity replaces the quantity of lineID, clamped to at least 1.
func (s *Store) SetQuantity(lineID string, requested int) MutationResult {
	i := s.indexOf(lineID)
	if i < 0 {
		return s.result(OutcomeNoop)
	}
	qty, corrected := clampQuantity(requested)
	s.lines[i].Quantity = qty
	if corrected {
		return s.result(OutcomeCorrected)
	}
	return s.result(OutcomeApplied)
}

// SetQuantityInput is SetQuantity for raw text input. Anything that is not a
// positive integer becomes 1.
func (s *Store) SetQuantityInput(lineID, raw string) MutationResult {
	i := s.indexOf(lineID)
	if i < 0 {
		return s.result(OutcomeNoop)
	}
	qty, ok := ParseQuantity(raw)
	s.lines[i].Quantity = qty
	if !ok {
		return s.result(OutcomeCorrected)
	}
	return s.result(OutcomeApplied)
}

// IncrementQuantity adds delta (which may be negative) to lineID's quantity.
// The line is kept at quantity 1 rather than removed, and the sum saturates
// instead of wrapping.
func (s *Store) IncrementQuantity(lineID string, delta int) MutationResult {
	i := s.indexOf(lineID)
	if i < 0 {
		return s.result(OutcomeNoop)
	}
	sum, saturated := addQuantity(s.lines[i].Quantity, delta)
	qty, clamped := clampQuantity(sum)
	s.lines[i].Quantity = qty
	if saturated || clamped {
		return s.result(OutcomeCorrected)
	}
	return s.result(OutcomeApplied)
}

// RemoveLine deletes lineID, keeping the order of the remaining lines.
func (s *Store) RemoveLine(lineID string) MutationResult {
	i := s.indexOf(lineID)
	if i < 0 {
		return s.result(OutcomeNoop)
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return s.result(OutcomeApplied)
}

// Subtotal sums unit price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

// DeliveryFee is the flat fee for a non-empty cart, otherwise zero.
func (s *Store) DeliveryFee() decimal.Decimal {
	if len(s.lines) == 0 {
		return decimal.Zero
	}
	return s.deliveryFee
}

// ItemCount sums quantities over all lines, saturating at math.MaxInt.
func (s *Store) ItemCount() int {
	count := 0
	for _, l := range s.lines {
		count, _ = addQuantity(count, l.Quantity)
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) indexOf(lineID string) int {
	for i, l := range s.lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) result(outcome Outcome) MutationResult {
	return MutationResult{Lines: s.Lines(), Outcome: outcome}
}
