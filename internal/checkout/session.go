package checkout

import (
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/listings"
	"github.com/angelmondragon/storefront/internal/promo"
	"github.com/shopspring/decimal"
)

// PricingSummary is the price breakdown shown next to the cart.
type PricingSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Session is one shopper's state: cart, promo binding and paging history.
// It is not safe for concurrent use; Service serializes access per id.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	cart    *cart.Store
	promo   *promo.Resolver
	browser *listings.Browser
}

// Cart exposes the session's cart store.
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Promo exposes the session's promo resolver.
func (s *Session) Promo() *promo.Resolver {
	return s.promo
}

// Browser exposes the session's listing paging state.
func (s *Session) Browser() *listings.Browser {
	return s.browser
}

// PricingSummary derives all four figures from the current cart and promo
// binding in one read. total = subtotal + deliveryFee - discount and may be
// negative when a fixed discount exceeds the order.
func (s *Session) PricingSummary() PricingSummary {
	subtotal := s.cart.Subtotal()
	fee := s.cart.DeliveryFee()
	discount := s.promo.Discount(subtotal)
	return PricingSummary{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       subtotal.Add(fee).Sub(discount),
	}
}

// Snapshot is the persisted form of a Session.
type Snapshot struct {
	ID           string                   `json:"id"`
	Lines        []cart.Line              `json:"lines"`
	PromoCode    string                   `json:"promo_code,omitempty"`
	LastCriteria *listings.FilterCriteria `json:"last_criteria,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// Snapshot captures the session for storage.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		Lines:     s.cart.Lines(),
		PromoCode: s.promo.AppliedCode(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if criteria, ok := s.browser.LastCriteria(); ok {
		snap.LastCriteria = &criteria
	}
	return snap
}

// Factory creates and rehydrates sessions with shared pricing configuration.
type Factory struct {
	DeliveryFee decimal.Decimal
	PromoTable  *promo.Table
	Engine      *listings.Engine
	Now         func() time.Time
}

func (f Factory) now() time.Time {
	if f.Now != nil {
		return f.Now().UTC()
	}
	return time.Now().UTC()
}

// New builds an empty session, optionally pre-filled with lines.
func (f Factory) New(id string, lines ...cart.Line) (*Session, error) {
	store, err := cart.NewStore(f.DeliveryFee, lines...)
	if err != nil {
		return nil, err
	}
	now := f.now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		cart:      store,
		promo:     promo.NewResolver(f.PromoTable),
		browser:   listings.NewBrowser(f.Engine),
	}, nil
}

// Restore rehydrates a snapshot. A promo code no longer in the table is
// dropped silently.
func (f Factory) Restore(snap Snapshot) (*Session, error) {
	store, err := cart.NewStore(f.DeliveryFee, snap.Lines...)
	if err != nil {
		return nil, err
	}
	resolver := promo.NewResolver(f.PromoTable)
	resolver.Restore(snap.PromoCode)
	return &Session{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
		cart:      store,
		promo:     resolver,
		browser:   listings.RestoreBrowser(f.Engine, snap.LastCriteria),
	}, nil
}
