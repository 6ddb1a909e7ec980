package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/jangheelee880707/wooahhan/pkg/metrics"
)

// CartSummary is the cart drawer: lines plus totals.
type CartSummary struct {
	Lines        []model.CartLine `json:"lines"`
	ItemCount    int              `json:"item_count"`
	Total        int64            `json:"total"`
	TotalDisplay string           `json:"total_display"`
}

func summarizeCart(cart model.Cart) *CartSummary {
	lines := cart.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	return &CartSummary{
		Lines:        lines,
		ItemCount:    cart.TotalItemCount(),
		Total:        cart.TotalPrice(),
		TotalDisplay: model.FormatWon(cart.TotalPrice()),
	}
}

// CartService edits the cart. Mutations fail with ErrCheckoutInProgress from
// the moment a payment starts until its checkout is closed.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*CartSummary, error)
	AddToCart(ctx context.Context, sessionID, productID string) (*CartSummary, *model.Notice, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (*CartSummary, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string) (*CartSummary, error)
	ClearCart(ctx context.Context, sessionID string) (*CartSummary, error)
}

type cartService struct {
	sessions       SessionService
	productService ProductService
	notifier       Notifier
	now            func() time.Time
}

func NewCartService(sessions SessionService, productService ProductService, notifier Notifier) CartService {
	return &cartService{
		sessions:       sessions,
		productService: productService,
		notifier:       notifierOrNoop(notifier),
		now:            time.Now,
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*CartSummary, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return summarizeCart(session.Cart), nil
}

// AddToCart adds one unit of a catalog product and posts the
// "'<name>' 장바구니에 담겼습니다." notice.
func (s *cartService) AddToCart(ctx context.Context, sessionID, productID string) (*CartSummary, *model.Notice, error) {
	product, err := s.productService.GetProductByID(productID)
	if err != nil {
		return nil, nil, err
	}

	var notice *model.Notice
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout.Locked() {
			return ErrCheckoutInProgress
		}
		line := session.Cart.Add(*product)
		notice = postNotice(session, fmt.Sprintf("'%s' 장바구니에 담겼습니다.", product.Name), s.now())
		logger.Info("Item added to cart", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
			"quantity":   line.Quantity,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordCartOperation("add")
	s.notifier.Notify(sessionID, *notice)
	return summarizeCart(session.Cart), notice, nil
}

// UpdateQuantity is a no-op for a product that is not in the cart.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (*CartSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout.Locked() {
			return ErrCheckoutInProgress
		}
		if !session.Cart.UpdateQuantity(productID, delta) {
			logger.Debug("Quantity update ignored: line not in cart", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordCartOperation("update")
	return summarizeCart(session.Cart), nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, sessionID, productID string) (*CartSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout.Locked() {
			return ErrCheckoutInProgress
		}
		if session.Cart.Remove(productID) {
			logger.Info("Item removed from cart", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordCartOperation("remove")
	return summarizeCart(session.Cart), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*CartSummary, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(session *model.Session) error {
		if session.Checkout.Locked() {
			return ErrCheckoutInProgress
		}
		session.Cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordCartOperation("clear")
	return summarizeCart(session.Cart), nil
}
