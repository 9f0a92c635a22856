package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/listings"
	"github.com/angelmondragon/storefront/internal/promo"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/google/uuid"
)

const (
	opAddLine     = "add_line"
	opSetQuantity = "set_quantity"
	opIncrement   = "increment_quantity"
	opRemoveLine  = "remove_line"
)

// Service runs every cart, promo and browsing operation against a stored
// session.
type Service interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*View, error)
	GetCart(ctx context.Context, sessionID string) (*View, error)
	AddLine(ctx context.Context, sessionID string, line cart.Line) (*View, error)
	SetQuantity(ctx context.Context, sessionID, lineID, raw string) (*View, error)
	IncrementQuantity(ctx context.Context, sessionID, lineID string, delta int) (*View, error)
	RemoveLine(ctx context.Context, sessionID, lineID string) (*View, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*View, error)
	ClearPromo(ctx context.Context, sessionID string) (*View, error)
	// Browse queries listings; with a session id the paging history is kept
	// on the session.
	Browse(ctx context.Context, sessionID string, criteria listings.FilterCriteria) (listings.PagedResult, listings.PageOutcome, error)
	// ResetBrowse drops the session's paging history (reset filters).
	ResetBrowse(ctx context.Context, sessionID string) (*View, error)
}

// CreateSessionInput controls how a new session starts.
type CreateSessionInput struct {
	// SampleCart pre-fills the cart with the reference lines.
	SampleCart bool
}

// View is the cart state returned after every operation. Summary is derived
// in the same read as Lines.
type View struct {
	SessionID  string             `json:"session_id"`
	Lines      []cart.Line        `json:"lines"`
	ItemCount  int                `json:"item_count"`
	Summary    PricingSummary     `json:"summary"`
	PromoState promo.State        `json:"promo_state"`
	PromoCode  string             `json:"promo_code,omitempty"`
	Outcome    cart.Outcome       `json:"outcome,omitempty"`
	Promo      *promo.ApplyResult `json:"promo,omitempty"`
}

type service struct {
	store    SessionStore
	factory  Factory
	listings listings.Service
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
	locks    *sessionLocks
	newID    func() string
}

// NewService constructs the checkout service.
func NewService(store SessionStore, factory Factory, listingSvc listings.Service, m *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if factory.PromoTable == nil {
		return nil, fmt.Errorf("promo table required")
	}
	if factory.Engine == nil {
		return nil, fmt.Errorf("listing engine required")
	}
	if listingSvc == nil {
		return nil, fmt.Errorf("listings service required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:    store,
		factory:  factory,
		listings: listingSvc,
		metrics:  m,
		logg:     logg,
		locks:    newSessionLocks(),
		newID:    uuid.NewString,
	}, nil
}

func (s *service) CreateSession(ctx context.Context, input CreateSessionInput) (*View, error) {
	var lines []cart.Line
	if input.SampleCart {
		lines = cart.ReferenceLines()
	}
	session, err := s.factory.New(s.newID(), lines...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}
	if err := s.store.Save(ctx, session.Snapshot()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	s.metrics.IncSessionCreated()

	logCtx := s.logg.WithSessionID(ctx, session.ID)
	s.logg.Info(s.logg.WithField(logCtx, "sample_cart", input.SampleCart), "session.created")
	return viewOf(session), nil
}

func (s *service) GetCart(ctx context.Context, sessionID string) (*View, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(session), nil
}

func (s *service) AddLine(ctx context.Context, sessionID string, line cart.Line) (*View, error) {
	return s.mutateCart(ctx, sessionID, opAddLine, line.ID, func(store *cart.Store) (cart.MutationResult, error) {
		return store.AddLine(line)
	})
}

func (s *service) SetQuantity(ctx context.Context, sessionID, lineID, raw string) (*View, error) {
	return s.mutateCart(ctx, sessionID, opSetQuantity, lineID, func(store *cart.Store) (cart.MutationResult, error) {
		return store.SetQuantityInput(lineID, raw), nil
	})
}

func (s *service) IncrementQuantity(ctx context.Context, sessionID, lineID string, delta int) (*View, error) {
	return s.mutateCart(ctx, sessionID, opIncrement, lineID, func(store *cart.Store) (cart.MutationResult, error) {
		return store.IncrementQuantity(lineID, delta), nil
	})
}

func (s *service) RemoveLine(ctx context.Context, sessionID, lineID string) (*View, error) {
	return s.mutateCart(ctx, sessionID, opRemoveLine, lineID, func(store *cart.Store) (cart.MutationResult, error) {
		return store.RemoveLine(lineID), nil
	})
}

func (s *service) ApplyPromo(ctx context.Context, sessionID, code string) (*View, error) {
	var result promo.ApplyResult
	view, err := s.withSession(ctx, sessionID, func(session *Session) error {
		result = session.Promo().Apply(code)
		return nil
	})
	if err != nil {
		return nil, err
	}
	view.Promo = &result
	s.metrics.IncPromoApply(string(result.Kind))

	logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
		"promo_code": result.Code,
		"outcome":    string(result.Kind),
	})
	if !result.Success {
		s.logg.Warn(logCtx, "promo.invalid_code")
	} else {
		s.logg.Info(logCtx, "promo.applied")
	}
	return view, nil
}

func (s *service) ClearPromo(ctx context.Context, sessionID string) (*View, error) {
	view, err := s.withSession(ctx, sessionID, func(session *Session) error {
		session.Promo().Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "promo.cleared")
	return view, nil
}

func (s *service) Browse(ctx context.Context, sessionID string, criteria listings.FilterCriteria) (listings.PagedResult, listings.PageOutcome, error) {
	if strings.TrimSpace(sessionID) == "" {
		return s.listings.Browse(ctx, nil, criteria)
	}

	var (
		result  listings.PagedResult
		outcome listings.PageOutcome
	)
	_, err := s.withSession(ctx, sessionID, func(session *Session) error {
		var browseErr error
		result, outcome, browseErr = s.listings.Browse(ctx, session.Browser(), criteria)
		return browseErr
	})
	if err != nil {
		return listings.PagedResult{}, "", err
	}
	return result, outcome, nil
}

func (s *service) ResetBrowse(ctx context.Context, sessionID string) (*View, error) {
	view, err := s.withSession(ctx, sessionID, func(session *Session) error {
		session.Browser().Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "browse.reset")
	return view, nil
}

func (s *service) mutateCart(ctx context.Context, sessionID, op, lineID string, fn func(*cart.Store) (cart.MutationResult, error)) (*View, error) {
	var outcome cart.Outcome
	view, err := s.withSession(ctx, sessionID, func(session *Session) error {
		res, err := fn(session.Cart())
		if err != nil {
			return err
		}
		outcome = res.Outcome
		return nil
	})
	if err != nil {
		return nil, err
	}
	view.Outcome = outcome
	s.metrics.IncCartMutation(op, string(outcome))

	logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
		"op":      op,
		"line_id": lineID,
		"outcome": string(outcome),
	})
	if outcome == cart.OutcomeApplied {
		s.logg.Info(logCtx, "cart.mutation")
	} else {
		s.logg.Warn(logCtx, "cart.mutation.adjusted")
	}
	return view, nil
}

// withSession loads, mutates and saves one session under its lock. The view
// is derived before the lock is released.
func (s *service) withSession(ctx context.Context, sessionID string, fn func(*Session) error) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.factory.now()
	if err := s.store.Save(ctx, session.Snapshot()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return viewOf(session), nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").WithDetails(map[string]string{"session_id": "must be a UUID"})
	}
	snap, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	session, err := s.factory.Restore(snap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore session")
	}
	return session, nil
}

func viewOf(session *Session) *View {
	return &View{
		SessionID:  session.ID,
		Lines:      session.Cart().Lines(),
		ItemCount:  session.Cart().ItemCount(),
		Summary:    session.PricingSummary(),
		PromoState: session.Promo().State(),
		PromoCode:  session.Promo().AppliedCode(),
	}
}
