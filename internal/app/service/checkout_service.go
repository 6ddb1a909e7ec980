package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/jangheelee880707/wooahhan/pkg/metrics"
	"github.com/jangheelee880707/wooahhan/pkg/payment/simpay"
	"github.com/jangheelee880707/wooahhan/pkg/util"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutNotOpen    = errors.New("checkout is not open")
	ErrCheckoutInProgress = model.ErrCheckoutLocked
)

// stalePayment is how long a processing checkout blocks Open and Close. A
// payment still pending after that is assumed lost with its server.
const stalePayment = requestLease

// OrderCompletedMessage is the toast shown when a completed checkout is closed.
const OrderCompletedMessage = "주문이 성공적으로 완료되었습니다!"

// PaymentProcessor approves a payment. simpay.Client satisfies it.
type PaymentProcessor interface {
	Approve(ctx context.Context, req simpay.ApproveRequest) (*simpay.ApproveResponse, error)
}

// CheckoutSummary is what the checkout modal renders at any step.
type CheckoutSummary struct {
	Step               model.CheckoutStep  `json:"step"`
	PaymentMethod      model.PaymentMethod `json:"payment_method"`
	PaymentMethodLabel string              `json:"payment_method_label"`
	Shipping           model.ShippingInfo  `json:"shipping"`
	Lines              []model.CartLine    `json:"lines"`
	ItemCount          int                 `json:"item_count"`
	Subtotal           int64               `json:"subtotal"`
	ShippingFee        int64               `json:"shipping_fee"`
	Total              int64               `json:"total"`
	SubtotalDisplay    string              `json:"subtotal_display"`
	ShippingFeeDisplay string              `json:"shipping_fee_display"`
	TotalDisplay       string              `json:"total_display"`
	OrderNumber        string              `json:"order_number,omitempty"`
	TransactionID      string              `json:"transaction_id,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
}

type CheckoutService interface {
	Open(ctx context.Context, sessionID string) (*CheckoutSummary, error)
	Summary(ctx context.Context, sessionID string) (*CheckoutSummary, error)
	SubmitShipping(ctx context.Context, sessionID string, info model.ShippingInfo) (*CheckoutSummary, error)
	SelectPaymentMethod(ctx context.Context, sessionID string, method model.PaymentMethod) (*CheckoutSummary, error)
	Pay(ctx context.Context, sessionID string) (*CheckoutSummary, error)
	Close(ctx context.Context, sessionID string) (*model.ViewState, *model.Notice, error)
	ListOrders(sessionID string) ([]model.Order, error)
}

type checkoutService struct {
	sessions    SessionService
	orderRepo   repository.OrderRepository
	payments    PaymentProcessor
	notifier    Notifier
	shippingFee int64
	now         func() time.Time
}

func NewCheckoutService(
	sessions SessionService,
	orderRepo repository.OrderRepository,
	payments PaymentProcessor,
	notifier Notifier,
	shippingFee int64,
) CheckoutService {
	if shippingFee < 0 {
		shippingFee = model.DefaultShippingFee
	}
	return &checkoutService{
		sessions:    sessions,
		orderRepo:   orderRepo,
		payments:    payments,
		notifier:    notifierOrNoop(notifier),
		shippingFee: shippingFee,
		now:         time.Now,
	}
}

func payKey(sessionID string) string {
	return "pay:" + sessionID
}

// paymentPending reports a live approval on co. Stale ones no longer count.
func (s *checkoutService) paymentPending(co *model.Checkout) bool {
	if co == nil || !co.Processing {
		return false
	}
	return co.ProcessingSince == nil || s.now().Sub(*co.ProcessingSince) < stalePayment
}

// summarize reports the frozen lines once a payment has started.
func (s *checkoutService) summarize(session *model.Session) *CheckoutSummary {
	co := session.Checkout
	cart := summarizeCart(session.Cart)
	if co.Processing || co.IsComplete() {
		cart = summarizeCart(model.Cart{Lines: co.Lines})
	}
	subtotal := cart.Total
	total := subtotal + s.shippingFee

	return &CheckoutSummary{
		Step:               co.Step,
		PaymentMethod:      co.PaymentMethod,
		PaymentMethodLabel: co.PaymentMethod.Label(),
		Shipping:           co.Shipping,
		Lines:              cart.Lines,
		ItemCount:          cart.ItemCount,
		Subtotal:           subtotal,
		ShippingFee:        s.shippingFee,
		Total:              total,
		SubtotalDisplay:    model.FormatWon(subtotal),
		ShippingFeeDisplay: model.FormatWon(s.shippingFee),
		TotalDisplay:       model.FormatWon(total),
		OrderNumber:        co.OrderNumber,
		TransactionID:      co.TransactionID,
		CompletedAt:        co.CompletedAt,
	}
}

// Open starts a fresh wizard at draft, discarding any previous one.
func (s *checkoutService) Open(ctx context.Context, sessionID string) (*CheckoutSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if s.paymentPending(session.Checkout) {
			return ErrCheckoutInProgress
		}
		if session.Cart.IsEmpty() {
			return ErrEmptyCart
		}
		session.Checkout = model.NewCheckout()
		view, err := model.Reduce(session.View, model.ViewEvent{Type: model.EventStartCheckout})
		if err != nil {
			return err
		}
		session.View = view
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Checkout opened", map[string]interface{}{
		"session_id": sessionID,
		"items":      session.Cart.TotalItemCount(),
	})
	return s.summarize(session), nil
}

func (s *checkoutService) Summary(ctx context.Context, sessionID string) (*CheckoutSummary, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Checkout == nil {
		return nil, ErrCheckoutNotOpen
	}
	return s.summarize(session), nil
}

func (s *checkoutService) SubmitShipping(ctx context.Context, sessionID string, info model.ShippingInfo) (*CheckoutSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout == nil {
			return ErrCheckoutNotOpen
		}
		return session.Checkout.SubmitShipping(info)
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(session), nil
}

func (s *checkoutService) SelectPaymentMethod(ctx context.Context, sessionID string, method model.PaymentMethod) (*CheckoutSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout == nil {
			return ErrCheckoutNotOpen
		}
		if session.Checkout.Locked() {
			return ErrCheckoutInProgress
		}
		return session.Checkout.SelectPaymentMethod(method)
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(session), nil
}

// Pay approves the payment and moves the wizard to complete. Cart and payment
// method are frozen before the processor is called, and the order records
// exactly what was charged. The session lock is not held while the processor
// waits, and the caller going away does not abort an approval already started.
func (s *checkoutService) Pay(ctx context.Context, sessionID string) (*CheckoutSummary, error) {
	release, err := s.sessions.Acquire(ctx, payKey(sessionID))
	if errors.Is(err, ErrRequestInFlight) {
		return nil, ErrCheckoutInProgress
	}
	if err != nil {
		return nil, err
	}
	defer release()

	orderNumber := util.GenerateOrderNumber(s.now())
	snapshot, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout == nil {
			return ErrCheckoutNotOpen
		}
		return session.Checkout.BeginPayment(session.Cart, orderNumber, s.now())
	})
	if err != nil {
		return nil, err
	}

	co := snapshot.Checkout
	amount := co.Subtotal() + s.shippingFee

	logger.Info("Payment started", map[string]interface{}{
		"session_id":   sessionID,
		"order_number": orderNumber,
		"method":       co.PaymentMethod,
		"amount":       amount,
	})

	approval, err := s.payments.Approve(context.WithoutCancel(ctx), simpay.ApproveRequest{
		OrderNumber: orderNumber,
		Method:      string(co.PaymentMethod),
		Amount:      amount,
	})
	if err != nil {
		logger.Error("Payment approval failed", err, map[string]interface{}{
			"session_id":   sessionID,
			"order_number": orderNumber,
		})
		s.abortPayment(ctx, sessionID, orderNumber)
		return nil, fmt.Errorf("payment approval failed: %w", err)
	}

	order := s.buildOrder(snapshot, approval)
	session, err := s.sessions.Update(context.WithoutCancel(ctx), sessionID, func(session *model.Session) error {
		if session.Checkout == nil || session.Checkout.OrderNumber != orderNumber {
			return ErrCheckoutNotOpen
		}
		return session.Checkout.Complete(approval.TID, approval.ApprovedAt)
	})
	if err != nil {
		// the money is taken either way
		logger.Error("Payment approved but checkout could not be completed", err, map[string]interface{}{
			"session_id":     sessionID,
			"order_number":   orderNumber,
			"transaction_id": approval.TID,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to record completed order", err, map[string]interface{}{
			"session_id":   sessionID,
			"order_number": orderNumber,
		})
	}
	metrics.RecordCheckout(string(co.PaymentMethod))
	if session == nil {
		return nil, err
	}

	logger.Info("Payment completed", map[string]interface{}{
		"session_id":     sessionID,
		"order_number":   orderNumber,
		"transaction_id": approval.TID,
	})
	return s.summarize(session), nil
}

// abortPayment unfreezes a checkout whose approval was declined.
func (s *checkoutService) abortPayment(ctx context.Context, sessionID, orderNumber string) {
	_, err := s.sessions.Update(context.WithoutCancel(ctx), sessionID, func(session *model.Session) error {
		if session.Checkout != nil && session.Checkout.OrderNumber == orderNumber {
			session.Checkout.AbortPayment()
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to release declined checkout", err, map[string]interface{}{
			"session_id":   sessionID,
			"order_number": orderNumber,
		})
	}
}

// buildOrder records the frozen lines and method of snapshot.
func (s *checkoutService) buildOrder(snapshot *model.Session, approval *simpay.ApproveResponse) *model.Order {
	co := snapshot.Checkout
	subtotal := co.Subtotal()
	return &model.Order{
		ID:            uuid.NewString(),
		OrderNumber:   co.OrderNumber,
		SessionID:     snapshot.ID,
		Subtotal:      subtotal,
		ShippingFee:   s.shippingFee,
		Total:         subtotal + s.shippingFee,
		PaymentMethod: co.PaymentMethod,
		PaymentStatus: model.PaymentStatusCompleted,
		TransactionID: approval.TID,
		RecipientName: co.Shipping.Name,
		Phone:         co.Shipping.Phone,
		Address:       co.Shipping.Address,
		AddressDetail: co.Shipping.AddressDetail,
		DeliveryNote:  co.Shipping.DeliveryNote,
		CompletedAt:   approval.ApprovedAt,
		OrderItems:    model.OrderItemsFromCart(model.Cart{Lines: co.Lines}),
	}
}

// Close discards the wizard. A completed checkout also empties the cart and
// posts the order-complete notice.
func (s *checkoutService) Close(ctx context.Context, sessionID string) (*model.ViewState, *model.Notice, error) {
	var notice *model.Notice
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if s.paymentPending(session.Checkout) {
			return ErrCheckoutInProgress
		}
		event := model.ViewEvent{Type: model.EventCloseCheckout}
		if session.Checkout.IsComplete() {
			session.Cart.Clear()
			notice = postNotice(session, OrderCompletedMessage, s.now())
			event = model.ViewEvent{Type: model.EventCheckoutSucceeded}
		}
		view, err := model.Reduce(session.View, event)
		if err != nil {
			return err
		}
		session.View = view
		session.Checkout = nil
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if notice != nil {
		metrics.RecordCartOperation("clear")
		s.notifier.Notify(sessionID, *notice)
	}
	return &session.View, notice, nil
}

func (s *checkoutService) ListOrders(sessionID string) ([]model.Order, error) {
	orders, err := s.orderRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}
