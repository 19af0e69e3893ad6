package order

import (
	"context"
	"database/sql"

	"artesanos-be/internal/cart"
	"artesanos-be/internal/inventory"
	"artesanos-be/internal/logger"
	"artesanos-be/internal/metrics"
	"artesanos-be/internal/utils"

	"go.uber.org/zap"
)

const (
	saleMovementNote     = "sale generated from cart"
	reversalMovementNote = "reversal of cancelled order"
)

// Emitter publishes the order-created integration event after a successful
// placement. It must never fail its caller: delivery problems are logged and
// dropped inside the implementation.
type Emitter interface {
	PublishOrderCreated(ctx context.Context, d *Details)
}

// Service converts carts into orders and reverses that conversion. It is the
// only component that spans carts, stock, movements and orders inside a
// single transaction; the collaborating repositories receive that
// transaction and never manage boundaries themselves.
type Service interface {
	PlaceOrder(ctx context.Context, cartID int64, params PlaceOrderParams) (*Details, error)
	CancelOrder(ctx context.Context, orderID int64) error
	GetOrderDetails(ctx context.Context, orderID int64) (*Details, error)
	ListOrders(ctx context.Context, limit, page int32) ([]*Summary, error)
}

type service struct {
	db        *sql.DB
	carts     cart.Repository
	cartRules cart.Service
	ledger    inventory.Repository
	orders    Repository
	emitter   Emitter
	engine    *metrics.Engine
}

func NewService(
	db *sql.DB,
	carts cart.Repository,
	cartRules cart.Service,
	ledger inventory.Repository,
	orders Repository,
	emitter Emitter,
	engine *metrics.Engine,
) Service {
	return &service{
		db:        db,
		carts:     carts,
		cartRules: cartRules,
		ledger:    ledger,
		orders:    orders,
		emitter:   emitter,
		engine:    engine,
	}
}

// PlaceOrder converts an open cart into a persisted order.
//
// Everything from validation through closing the cart runs in one
// transaction: stock reservations, the order header and its lines, the sale
// movements and the cart status flip all commit or roll back together. The
// notification is published after commit and is strictly best-effort.
func (s *service) PlaceOrder(ctx context.Context, cartID int64, params PlaceOrderParams) (*Details, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int64("cart_id", cartID),
	)
	timer := metrics.StartTimer()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderID, err := s.placeOrderTx(ctx, tx, cartID, params)
	if err != nil {
		// Roll back in full and surface the original error: no partial
		// stock reservation, no orphan order rows, cart stays open.
		_ = tx.Rollback()
		s.engine.PlacementFailures.Inc()
		log.Warn("order placement failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.engine.PlacementFailures.Inc()
		log.Error("failed to commit placement", zap.Error(err))
		return nil, err
	}

	details, err := s.orders.GetOrderDetails(ctx, orderID)
	if err != nil {
		// The order is committed; only the read-back failed.
		log.Error("failed to re-read placed order", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}

	s.engine.OrdersPlaced.Inc()

	// Best-effort: the sale already happened, a broker failure must not
	// reach the caller. The emitter logs and drops its own errors.
	s.emitter.PublishOrderCreated(ctx, details)

	log.Info("order placed",
		zap.Int64("order_id", details.ID),
		zap.String("order_number", details.OrderNumber),
		zap.Float64("total", details.Total),
		zap.Duration("duration", timer.Duration()),
	)

	return details, nil
}

func (s *service) placeOrderTx(ctx context.Context, tx *sql.Tx, cartID int64, params PlaceOrderParams) (int64, error) {
	// 1. Snapshot the cart and validate it for checkout.
	c, err := s.carts.GetCart(ctx, tx, cartID)
	if err != nil {
		return 0, err
	}
	lines, err := s.carts.GetCartLines(ctx, tx, cartID)
	if err != nil {
		return 0, err
	}
	if err := s.cartRules.ValidateForCheckout(c, lines); err != nil {
		return 0, err
	}

	// 2. Reserve stock line by line, in cart insertion order. The row lock
	// taken per product serializes concurrent checkouts; the first failure
	// aborts the whole transaction so no partial reservation survives.
	subtotal := 0.0
	for _, l := range lines {
		if err := s.ledger.CheckAndReserve(ctx, tx, l.ProductID, l.Quantity, l.Name); err != nil {
			return 0, err
		}
		subtotal += l.LineTotal
	}
	subtotal = utils.Round2(subtotal)

	// 3. Freeze the monetary breakdown.
	total := utils.Round2(subtotal + params.Tax + params.ShippingCost)

	// 4. Generate the order number and persist the header.
	number, err := s.orders.NextOrderNumber(ctx, tx)
	if err != nil {
		return 0, err
	}

	header := &Header{
		CustomerID:    *c.CustomerID,
		CartID:        &cartID,
		OrderNumber:   number,
		Status:        defaultString(params.Status, StatusPending),
		PaymentStatus: defaultString(params.PaymentStatus, PaymentStatusPending),
		Subtotal:      subtotal,
		Tax:           params.Tax,
		ShippingCost:  params.ShippingCost,
		Total:         total,
		Currency:      defaultString(params.Currency, DefaultCurrency),
		Notes:         params.Notes,
	}

	orderID, err := s.orders.CreateOrder(ctx, tx, header)
	if err != nil {
		return 0, err
	}

	// 5. Persist lines and sale movements, same items in the same order as
	// the reservation loop. Prices were captured in step 1, not re-read.
	for _, l := range lines {
		if err := s.orders.AddLine(ctx, tx, orderID, Line{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		}); err != nil {
			return 0, err
		}

		if err := s.ledger.LogMovement(ctx, tx, l.ProductID, -l.Quantity, inventory.MovementSale, number, saleMovementNote); err != nil {
			return 0, err
		}
	}

	// 6. The cart is spent: open -> converted.
	if err := s.carts.CloseCart(ctx, tx, cartID); err != nil {
		return 0, err
	}

	return orderID, nil
}

// CancelOrder fully reverses a placement: stock is restored with adjustment
// movements, the order and its lines are deleted, and the originating cart
// (when still referenced) is reopened for a fresh checkout.
func (s *service) CancelOrder(ctx context.Context, orderID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.Int64("order_id", orderID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := s.cancelOrderTx(ctx, tx, orderID); err != nil {
		_ = tx.Rollback()
		log.Warn("order cancellation failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancellation", zap.Error(err))
		return err
	}

	s.engine.OrdersCancelled.Inc()
	log.Info("order cancelled")
	return nil
}

func (s *service) cancelOrderTx(ctx context.Context, tx *sql.Tx, orderID int64) error {
	// 1. Lock the order row so concurrent reversals serialize.
	target, err := s.orders.GetOrderForCancel(ctx, tx, orderID)
	if err != nil {
		return err
	}

	lines, err := s.orders.GetOrderLines(ctx, tx, orderID)
	if err != nil {
		return err
	}

	// 2. Return stock and record the compensation in the movement log.
	for _, l := range lines {
		if err := s.ledger.Restock(ctx, tx, l.ProductID, l.Quantity); err != nil {
			return err
		}
		if err := s.ledger.LogMovement(ctx, tx, l.ProductID, l.Quantity, inventory.MovementAdjustment, target.OrderNumber, reversalMovementNote); err != nil {
			return err
		}
	}

	// 3. Delete the order; items cascade with it.
	if err := s.orders.DeleteOrder(ctx, tx, orderID); err != nil {
		return err
	}

	// 4. Give the customer their cart back.
	if target.CartID != nil {
		if err := s.carts.ReopenCart(ctx, tx, *target.CartID); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) GetOrderDetails(ctx context.Context, orderID int64) (*Details, error) {
	return s.orders.GetOrderDetails(ctx, orderID)
}

func (s *service) ListOrders(ctx context.Context, limit, page int32) ([]*Summary, error) {
	return s.orders.ListOrders(ctx, limit, page)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
