package cart

import (
	"context"
	"sync"

	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/metrics"
	"github.com/lyvest/lyvest-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// StorageSlot is the persistence surface the engine writes through.
// Writes are fire-and-forget: the slot never surfaces errors.
type StorageSlot interface {
	Load(ctx context.Context) []LineItem
	Save(ctx context.Context, items []LineItem)
}

// Service exposes the cart engine. All mutations are synchronous against
// in-memory state; persistence happens after the state transition and can
// never fail the caller.
type Service interface {
	Add(ctx context.Context, item LineItem, quantity int)
	Remove(ctx context.Context, id types.ProductID)
	UpdateQuantity(ctx context.Context, id types.ProductID, quantity int)
	Clear(ctx context.Context)
	ApplyCoupon(ctx context.Context, code string) CouponResult
	RemoveCoupon(ctx context.Context)
	Items() []LineItem
	Totals() Totals
}

// ServiceParams groups dependencies for the cart engine.
type ServiceParams struct {
	Slot    StorageSlot
	Logger  *logger.Logger
	Metrics *metrics.EngineMetrics
}

type service struct {
	mu           sync.Mutex
	items        []LineItem
	couponCode   string
	discountRate decimal.Decimal

	slot    StorageSlot
	logg    *logger.Logger
	metrics *metrics.EngineMetrics
}

// NewService builds the cart engine and rehydrates state from storage.
// Corrupt or invalid stored entries are dropped by the slot on load.
func NewService(ctx context.Context, params ServiceParams) Service {
	s := &service{
		slot:    params.Slot,
		logg:    params.Logger,
		metrics: params.Metrics,
	}
	if s.slot != nil {
		s.items = s.slot.Load(ctx)
	}
	return s
}

func (s *service) Add(ctx context.Context, item LineItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	candidate := SanitizeLineItem(item)
	candidate.Quantity = ClampQuantity(quantity)
	if !ValidLineItem(candidate) {
		s.count("add_rejected")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == candidate.ID {
			s.items[i].Quantity = ClampQuantity(existing.Quantity + candidate.Quantity)
			s.persist(ctx)
			s.count("add")
			return
		}
	}

	if len(s.items) >= MaxDistinctItems {
		s.count("add_rejected")
		return
	}

	s.items = append(s.items, candidate)
	s.persist(ctx)
	s.count("add")
}

func (s *service) Remove(ctx context.Context, id types.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			s.count("remove")
			return
		}
	}
}

func (s *service) UpdateQuantity(ctx context.Context, id types.ProductID, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items[i].Quantity = ClampQuantity(quantity)
			s.persist(ctx)
			s.count("update_quantity")
			return
		}
	}
}

// Clear empties the cart and resets discount state: a cleared cart never
// keeps a coupon applied.
func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.couponCode = ""
	s.discountRate = decimal.Zero
	s.persist(ctx)
	s.count("clear")
}

func (s *service) ApplyCoupon(_ context.Context, code string) CouponResult {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return CouponResult{Applied: false, Message: "enter a valid coupon code"}
	}

	rate, ok := LookupCoupon(normalized)
	if !ok {
		return CouponResult{Applied: false, Message: "invalid coupon code"}
	}

	s.mu.Lock()
	s.couponCode = normalized
	s.discountRate = rate
	s.mu.Unlock()

	s.count("apply_coupon")
	return CouponResult{Applied: true, Message: couponAppliedMessage(rate)}
}

func (s *service) RemoveCoupon(_ context.Context) {
	s.mu.Lock()
	s.couponCode = ""
	s.discountRate = decimal.Zero
	s.mu.Unlock()
	s.count("remove_coupon")
}

func (s *service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	count := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}

	discount := subtotal.Mul(s.discountRate)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		Count:          count,
		CouponCode:     s.couponCode,
		DiscountRate:   s.discountRate,
		DiscountAmount: discount,
		Total:          total,
		FreeShipping:   subtotal.GreaterThanOrEqual(FreeShippingThreshold),
	}
}

// persist must be called with the lock held.
func (s *service) persist(ctx context.Context) {
	if s.slot == nil {
		return
	}
	snapshot := make([]LineItem, len(s.items))
	copy(snapshot, s.items)
	s.slot.Save(ctx, snapshot)
}

func (s *service) count(op string) {
	s.metrics.IncOperation("cart", op)
}
