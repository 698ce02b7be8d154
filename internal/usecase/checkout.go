package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/domain/repository"
	"github.com/polkiloo/storefront-checkout/internal/metrics"
	"github.com/polkiloo/storefront-checkout/internal/pricing"
)

// CartProvider returns the cart a checkout starts from.
type CartProvider interface {
	Cart(ctx context.Context, userID int64) (*model.CartSnapshot, error)
}

// ShippingProvider lists the shipping options on offer.
type ShippingProvider interface {
	ShippingMethods(ctx context.Context) ([]model.ShippingMethod, error)
}

// OrderSubmitter creates orders in the order service.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error)
}

// OrderEventQueue accepts order placed events for asynchronous delivery.
type OrderEventQueue interface {
	Enqueue(event model.OrderPlacedEvent) bool
}

// CheckoutMetrics records checkout outcomes.
type CheckoutMetrics interface {
	PromoApplied(result string)
	CheckoutSubmitted(result string)
	PricingClamped()
}

// CheckoutLimits bounds free text and session lifetime.
type CheckoutLimits struct {
	GiftMessage int
	Notes       int
	DraftTTL    time.Duration
}

// SubmitRequest carries the contact details entered at the final step.
type SubmitRequest struct {
	Billing  model.ContactInfo
	Shipping model.ContactInfo
}

// CheckoutDeps lists CheckoutUseCase collaborators.
type CheckoutDeps struct {
	Drafts   repository.DraftRepository
	Points   repository.PointsRepository
	Catalog  *DiscountCatalog
	Calc     *pricing.Calculator
	Cart     CartProvider
	Shipping ShippingProvider
	Orders   OrderSubmitter
	Events   OrderEventQueue
	Metrics  CheckoutMetrics
	Logger   *slog.Logger
	Limits   CheckoutLimits
	Now      func() time.Time
	NewID    func() uuid.UUID
}

const (
	warnShippingUnavailable = "shipping methods are unavailable"
	warnPointsUnavailable   = "reward points are unavailable"
)

// CheckoutUseCase drives a checkout session from cart snapshot to placed order.
type CheckoutUseCase struct {
	drafts   repository.DraftRepository
	points   repository.PointsRepository
	catalog  *DiscountCatalog
	calc     *pricing.Calculator
	cart     CartProvider
	shipping ShippingProvider
	orders   OrderSubmitter
	events   OrderEventQueue
	metrics  CheckoutMetrics
	logger   *slog.Logger
	limits   CheckoutLimits
	now      func() time.Time
	newID    func() uuid.UUID
	locks    *draftLocks
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(d CheckoutDeps) *CheckoutUseCase {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.New
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Limits.GiftMessage <= 0 {
		d.Limits.GiftMessage = 200
	}
	if d.Limits.Notes <= 0 {
		d.Limits.Notes = 500
	}
	if d.Limits.DraftTTL <= 0 {
		d.Limits.DraftTTL = 30 * time.Minute
	}
	return &CheckoutUseCase{
		drafts:   d.Drafts,
		points:   d.Points,
		catalog:  d.Catalog,
		calc:     d.Calc,
		cart:     d.Cart,
		shipping: d.Shipping,
		orders:   d.Orders,
		events:   d.Events,
		metrics:  d.Metrics,
		logger:   d.Logger,
		limits:   d.Limits,
		now:      d.Now,
		newID:    d.NewID,
		locks:    newDraftLocks(),
	}
}

// Start opens a checkout session seeded from the user's cart. Shipping methods
// and the points balance are fetched alongside the cart and only degrade the
// session when they fail.
func (u *CheckoutUseCase) Start(ctx context.Context, userID int64) (*model.OrderDraft, error) {
	var (
		cart       *model.CartSnapshot
		methods    []model.ShippingMethod
		account    *model.PointsAccount
		methodsErr error
		pointsErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cart, err = u.cart.Cart(gctx, userID); err != nil {
			return fmt.Errorf("fetch cart: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		methods, methodsErr = u.shipping.ShippingMethods(gctx)
		return nil
	})
	g.Go(func() error {
		account, pointsErr = u.points.GetAccount(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	draft := &model.OrderDraft{
		ID:        u.newID(),
		UserID:    userID,
		Items:     append([]model.LineItem(nil), cart.Items...),
		Subtotal:  model.SubtotalOf(cart.Items),
		Status:    model.DraftStatusDraft,
		CreatedAt: u.now(),
	}

	if methodsErr != nil {
		u.logger.Warn("shipping methods fetch failed", slog.Int64("user_id", userID), slog.String("error", methodsErr.Error()))
		draft.Warnings = append(draft.Warnings, warnShippingUnavailable)
	} else {
		draft.ShippingMethods = methods
		if len(methods) > 0 {
			selectShipping(draft, methods[0])
		}
	}

	if pointsErr != nil {
		u.logger.Warn("points account fetch failed", slog.Int64("user_id", userID), slog.String("error", pointsErr.Error()))
		draft.Warnings = append(draft.Warnings, warnPointsUnavailable)
	} else if account != nil {
		draft.AvailablePoints = account.AvailablePoints
	}

	u.reprice(draft)
	if err := u.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get returns the session owned by userID.
func (u *CheckoutUseCase) Get(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return u.load(ctx, userID, draftID)
}

// SetShippingMethod selects one of the offered methods. A draft started
// without methods fetches them again first.
func (u *CheckoutUseCase) SetShippingMethod(ctx context.Context, userID int64, draftID uuid.UUID, methodID string) (*model.OrderDraft, error) {
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		if len(d.ShippingMethods) == 0 {
			if err := u.refreshShipping(ctx, d); err != nil {
				return err
			}
		}
		method, ok := model.FindShippingMethod(d.ShippingMethods, methodID)
		if !ok {
			return domainErrors.ErrUnknownShippingMethod
		}
		selectShipping(d, method)
		return nil
	})
}

// ToggleRewardPoints flips point redemption, refreshing the balance first.
func (u *CheckoutUseCase) ToggleRewardPoints(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		if account, err := u.points.GetAccount(ctx, d.UserID); err != nil {
			u.logger.Warn("points refresh failed, keeping snapshot",
				slog.String("draft_id", d.ID.String()),
				slog.Int64("user_id", d.UserID),
				slog.String("error", err.Error()),
			)
		} else {
			d.AvailablePoints = account.AvailablePoints
		}
		d.UseRewardPoints = !d.UseRewardPoints
		return nil
	})
}

// ApplyPromoCode validates code and attaches it to the draft.
func (u *CheckoutUseCase) ApplyPromoCode(ctx context.Context, userID int64, draftID uuid.UUID, code string) (*model.OrderDraft, error) {
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		promo, err := u.catalog.Validate(ctx, code)
		if err != nil {
			if errors.Is(err, domainErrors.ErrInvalidPromoCode) {
				u.recordPromo(metrics.ResultInvalid)
			}
			return err
		}
		if !u.calc.ApplyDiscountCode(*promo, d.Subtotal).Applied {
			u.recordPromo(metrics.ResultMinNotMet)
			return domainErrors.ErrMinOrderNotMet
		}
		d.AppliedPromo = promo
		u.recordPromo(metrics.ResultApplied)
		return nil
	})
}

// RemovePromoCode detaches any applied promo code.
func (u *CheckoutUseCase) RemovePromoCode(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		d.AppliedPromo = nil
		d.PromoDiscountAmount = decimal.Zero
		return nil
	})
}

// SetGiftWrap turns gift wrapping on or off.
func (u *CheckoutUseCase) SetGiftWrap(ctx context.Context, userID int64, draftID uuid.UUID, enabled bool) (*model.OrderDraft, error) {
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		d.GiftWrap = enabled
		return nil
	})
}

// SetGiftMessage stores the gift message.
func (u *CheckoutUseCase) SetGiftMessage(ctx context.Context, userID int64, draftID uuid.UUID, message string) (*model.OrderDraft, error) {
	if utf8.RuneCountInString(message) > u.limits.GiftMessage {
		return nil, domainErrors.ErrGiftMessageTooLong
	}
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		d.GiftMessage = message
		return nil
	})
}

// SetNotes stores order notes.
func (u *CheckoutUseCase) SetNotes(ctx context.Context, userID int64, draftID uuid.UUID, notes string) (*model.OrderDraft, error) {
	if utf8.RuneCountInString(notes) > u.limits.Notes {
		return nil, domainErrors.ErrNotesTooLong
	}
	return u.mutate(ctx, userID, draftID, func(d *model.OrderDraft) error {
		d.Notes = notes
		return nil
	})
}

// Submit places the order. Only one submission per draft may be in flight.
// A failed submission leaves the draft editable with LastError set.
func (u *CheckoutUseCase) Submit(ctx context.Context, userID int64, draftID uuid.UUID, req SubmitRequest) (*model.OrderConfirmation, error) {
	draft, err := u.beginSubmit(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	orderReq := u.buildOrderRequest(draft, req)
	// The order call survives a client disconnect and is bounded by the HTTP client timeout.
	confirmation, submitErr := u.orders.SubmitOrder(context.WithoutCancel(ctx), orderReq)

	unlock := u.locks.lock(draftID)
	defer unlock()

	// Persist the outcome even when the request context is already done.
	persistCtx := context.WithoutCancel(ctx)
	if submitErr != nil {
		u.failSubmit(persistCtx, draft, submitErr)
		return nil, submitErr
	}

	u.completeSubmit(persistCtx, draft, orderReq, confirmation)
	return confirmation, nil
}

// Abandon discards the session.
func (u *CheckoutUseCase) Abandon(ctx context.Context, userID int64, draftID uuid.UUID) error {
	unlock := u.locks.lock(draftID)
	defer unlock()

	draft, err := u.load(ctx, userID, draftID)
	if err != nil {
		return err
	}
	if draft.IsProcessing() {
		return domainErrors.ErrCheckoutInProgress
	}
	return u.drafts.Delete(ctx, draftID)
}

func (u *CheckoutUseCase) beginSubmit(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	unlock := u.locks.lock(draftID)
	defer unlock()

	draft, err := u.load(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	switch draft.Status {
	case model.DraftStatusSubmitting:
		u.recordSubmit(metrics.ResultInProgress)
		return nil, domainErrors.ErrCheckoutInProgress
	case model.DraftStatusCompleted:
		return nil, domainErrors.ErrSessionClosed
	}
	if len(draft.Items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	previousTotal := draft.Pricing.Total
	if err := u.resolveShipping(ctx, draft); err != nil {
		return nil, u.rejectSubmit(ctx, draft, err)
	}
	if err := u.revalidatePromo(ctx, draft); err != nil {
		return nil, u.rejectSubmit(ctx, draft, err)
	}

	u.reprice(draft)
	if !draft.Pricing.Total.Equal(previousTotal) {
		draft.IdempotencyKey = ""
	}
	if draft.IdempotencyKey == "" {
		draft.IdempotencyKey = u.newID().String()
	}
	draft.Status = model.DraftStatusSubmitting
	draft.LastError = ""
	if err := u.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// resolveShipping retries the method fetch for drafts started without one.
// An upstream that is still down leaves shipping at zero.
func (u *CheckoutUseCase) resolveShipping(ctx context.Context, d *model.OrderDraft) error {
	if len(d.ShippingMethods) == 0 {
		if err := u.refreshShipping(ctx, d); err != nil {
			u.logger.Warn("shipping methods still unavailable at submit",
				slog.String("draft_id", d.ID.String()),
				slog.String("error", err.Error()),
			)
			return nil
		}
	}
	if len(d.ShippingMethods) > 0 && d.ShippingMethodID == "" {
		return domainErrors.ErrShippingRequired
	}
	return nil
}

// revalidatePromo checks the applied code against the catalog again. A code
// that expired or was withdrawn since it was applied is dropped.
func (u *CheckoutUseCase) revalidatePromo(ctx context.Context, d *model.OrderDraft) error {
	if d.AppliedPromo == nil {
		return nil
	}
	promo, err := u.catalog.Validate(ctx, d.AppliedPromo.Code)
	if err == nil && !u.calc.ApplyDiscountCode(*promo, d.Subtotal).Applied {
		err = domainErrors.ErrMinOrderNotMet
	}
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPromoCode) || errors.Is(err, domainErrors.ErrMinOrderNotMet) {
			d.AppliedPromo = nil
			d.PromoDiscountAmount = decimal.Zero
		}
		return err
	}
	d.AppliedPromo = promo
	return nil
}

// rejectSubmit stores the corrections made while preparing a submission and
// returns cause. The draft stays editable.
func (u *CheckoutUseCase) rejectSubmit(ctx context.Context, d *model.OrderDraft, cause error) error {
	d.LastError = cause.Error()
	d.IdempotencyKey = ""
	u.reprice(d)
	if err := u.save(ctx, d); err != nil {
		return err
	}
	return cause
}

func (u *CheckoutUseCase) refreshShipping(ctx context.Context, d *model.OrderDraft) error {
	methods, err := u.shipping.ShippingMethods(ctx)
	if err != nil {
		return fmt.Errorf("fetch shipping methods: %w", err)
	}
	d.ShippingMethods = methods
	d.Warnings = removeWarning(d.Warnings, warnShippingUnavailable)
	return nil
}

func (u *CheckoutUseCase) failSubmit(ctx context.Context, draft *model.OrderDraft, submitErr error) {
	result := metrics.ResultError
	if errors.Is(submitErr, domainErrors.ErrOrderRejected) {
		result = metrics.ResultRejected
	}
	u.recordSubmit(result)
	u.logger.Error("order submission failed",
		slog.String("draft_id", draft.ID.String()),
		slog.Int64("user_id", draft.UserID),
		slog.String("status", result),
		slog.String("error", submitErr.Error()),
	)

	draft.Status = model.DraftStatusDraft
	draft.LastError = submitErr.Error()
	if result == metrics.ResultRejected {
		draft.IdempotencyKey = ""
	}
	if err := u.save(ctx, draft); err != nil {
		u.logger.Error("restore draft after failed submission", slog.String("draft_id", draft.ID.String()), slog.String("error", err.Error()))
	}
}

func (u *CheckoutUseCase) completeSubmit(ctx context.Context, draft *model.OrderDraft, req model.OrderRequest, confirmation *model.OrderConfirmation) {
	u.recordSubmit(metrics.ResultSuccess)

	orderID := ""
	if confirmation != nil {
		orderID = confirmation.OrderID
	}
	tombstone := &model.OrderDraft{
		ID:        draft.ID,
		UserID:    draft.UserID,
		Status:    model.DraftStatusCompleted,
		OrderID:   orderID,
		Pricing:   draft.Pricing,
		CreatedAt: draft.CreatedAt,
	}
	if err := u.save(ctx, tombstone); err != nil {
		u.logger.Warn("close completed draft", slog.String("draft_id", draft.ID.String()), slog.String("error", err.Error()))
		if err := u.drafts.Delete(ctx, draft.ID); err != nil {
			u.logger.Error("delete completed draft", slog.String("draft_id", draft.ID.String()), slog.String("error", err.Error()))
		}
	}

	event := model.OrderPlacedEvent{
		OrderID:        orderID,
		UserID:         draft.UserID,
		Total:          req.TotalAmount,
		PointsEarned:   u.calc.Points().PointsEarned(draft.Pricing.Subtotal),
		PointsRedeemed: req.PointsRedeemed,
		CouponCode:     req.CouponCode,
		PlacedAt:       u.now(),
	}
	if u.events != nil && !u.events.Enqueue(event) {
		u.logger.Warn("order event dropped", slog.String("order_id", orderID), slog.Int64("user_id", draft.UserID))
	}
}

func (u *CheckoutUseCase) buildOrderRequest(draft *model.OrderDraft, req SubmitRequest) model.OrderRequest {
	items := make([]model.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, model.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   model.RoundMoney(item.Total()),
		})
	}

	p := draft.Pricing
	order := model.OrderRequest{
		IdempotencyKey:   draft.IdempotencyKey,
		UserID:           draft.UserID,
		Billing:          req.Billing,
		Shipping:         req.Shipping,
		ShippingMethodID: draft.ShippingMethodID,
		Items:            items,
		Subtotal:         p.Subtotal,
		ShippingAmount:   p.Shipping,
		DiscountAmount:   p.DiscountTotal(),
		AdditionalFees:   p.AdditionalFees,
		TotalAmount:      p.Total,
		PointsRedeemed:   u.calc.Points().PointsRedeemed(p.PointsDiscount),
		GiftWrap:         draft.GiftWrap,
		GiftMessage:      draft.GiftMessage,
		Notes:            draft.Notes,
	}
	if draft.AppliedPromo != nil && p.PromoDiscount.IsPositive() {
		id := draft.AppliedPromo.ID
		order.CouponID = &id
		order.CouponCode = draft.AppliedPromo.Code
	}
	return order
}

func (u *CheckoutUseCase) mutate(ctx context.Context, userID int64, draftID uuid.UUID, fn func(*model.OrderDraft) error) (*model.OrderDraft, error) {
	unlock := u.locks.lock(draftID)
	defer unlock()

	draft, err := u.load(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	switch draft.Status {
	case model.DraftStatusSubmitting:
		return nil, domainErrors.ErrCheckoutInProgress
	case model.DraftStatusCompleted:
		return nil, domainErrors.ErrSessionClosed
	}

	working := draft.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.LastError = ""
	working.IdempotencyKey = ""
	u.reprice(working)
	if err := u.save(ctx, working); err != nil {
		return nil, err
	}
	return working, nil
}

func (u *CheckoutUseCase) load(ctx context.Context, userID int64, draftID uuid.UUID) (*model.OrderDraft, error) {
	draft, err := u.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return draft, nil
}

func (u *CheckoutUseCase) save(ctx context.Context, draft *model.OrderDraft) error {
	now := u.now()
	draft.UpdatedAt = now
	draft.ExpiresAt = now.Add(u.limits.DraftTTL)
	if err := u.drafts.Save(ctx, draft, u.limits.DraftTTL); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (u *CheckoutUseCase) reprice(d *model.OrderDraft) {
	result := u.calc.Price(pricing.PricingInput{
		Subtotal:        d.Subtotal,
		Shipping:        d.ShippingCost,
		UseRewardPoints: d.UseRewardPoints,
		AvailablePoints: d.AvailablePoints,
		Promo:           d.AppliedPromo,
		GiftWrap:        d.GiftWrap,
	})
	d.Pricing = result
	d.PromoDiscountAmount = result.PromoDiscount

	if result.Clamped {
		u.logger.Warn("order total clamped to zero",
			slog.String("draft_id", d.ID.String()),
			slog.Int64("user_id", d.UserID),
			slog.String("subtotal", result.Subtotal.String()),
			slog.String("discount", result.DiscountTotal().String()),
		)
		if u.metrics != nil {
			u.metrics.PricingClamped()
		}
	}
}

func (u *CheckoutUseCase) recordPromo(result string) {
	if u.metrics != nil {
		u.metrics.PromoApplied(result)
	}
}

func (u *CheckoutUseCase) recordSubmit(result string) {
	if u.metrics != nil {
		u.metrics.CheckoutSubmitted(result)
	}
}

func selectShipping(d *model.OrderDraft, method model.ShippingMethod) {
	d.ShippingMethodID = method.ID
	d.ShippingCost = model.RoundMoney(model.NonNegative(method.BaseCost))
}

func removeWarning(warnings []string, warning string) []string {
	out := warnings[:0]
	for _, w := range warnings {
		if w != warning {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type draftLock struct {
	mu   sync.Mutex
	refs int
}

// draftLocks hands out one mutex per draft id and forgets it once unused.
type draftLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*draftLock
}

func newDraftLocks() *draftLocks {
	return &draftLocks{locks: make(map[uuid.UUID]*draftLock)}
}

func (l *draftLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &draftLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *draftLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
